package dto

import (
	"time"

	"github.com/GuiEstevamCorrea/AxFisco/internal/application/usecase"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
)

// ItemEmissaoRequest representa um item solicitado na emissão
type ItemEmissaoRequest struct {
	ProdutoID     string  `json:"produto_id" binding:"required"`
	Quantidade    float64 `json:"quantidade" binding:"required"`
	ValorUnitario float64 `json:"valor_unitario"`
	ValorDesconto float64 `json:"valor_desconto"`
	CodigoServico string  `json:"codigo_servico"`
}

// EmitirNotaFiscalRequest representa a requisição de emissão de nota
type EmitirNotaFiscalRequest struct {
	EmpresaID   string               `json:"empresa_id" binding:"required"`
	ClienteID   string               `json:"cliente_id" binding:"required"`
	Tipo        string               `json:"tipo" binding:"required"`
	Itens       []ItemEmissaoRequest `json:"itens" binding:"required,min=1"`
	Observacoes string               `json:"observacoes"`
}

// ValidarDadosRequest representa a requisição de validação prévia
type ValidarDadosRequest struct {
	EmpresaID string               `json:"empresa_id" binding:"required"`
	ClienteID string               `json:"cliente_id" binding:"required"`
	Tipo      string               `json:"tipo" binding:"required"`
	Itens     []ItemEmissaoRequest `json:"itens" binding:"required,min=1"`
}

// CancelarNotaFiscalRequest representa a requisição de cancelamento
type CancelarNotaFiscalRequest struct {
	Motivo string `json:"motivo" binding:"required"`
}

// NotaFiscalResponse representa a resposta de nota fiscal
type NotaFiscalResponse struct {
	ID                   string     `json:"id"`
	Numero               int64      `json:"numero"`
	Serie                int        `json:"serie"`
	Tipo                 string     `json:"tipo"`
	Status               string     `json:"status"`
	ChaveAcesso          string     `json:"chave_acesso,omitempty"`
	ProtocoloAutorizacao string     `json:"protocolo_autorizacao,omitempty"`
	DataEmissao          time.Time  `json:"data_emissao"`
	DataVencimento       *time.Time `json:"data_vencimento,omitempty"`
	EmpresaID            string     `json:"empresa_id"`
	ClienteID            string     `json:"cliente_id"`
	ValorTotal           float64    `json:"valor_total"`
	ValorTributos        float64    `json:"valor_tributos"`
	Observacoes          string     `json:"observacoes,omitempty"`
	MotivoRejeicao       string     `json:"motivo_rejeicao,omitempty"`
	QuantidadeItens      int        `json:"quantidade_itens"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ItemNotaFiscalResponse representa a resposta de um item da nota
type ItemNotaFiscalResponse struct {
	ID               string                  `json:"id"`
	NumeroItem       int                     `json:"numero_item"`
	ProdutoID        string                  `json:"produto_id"`
	CodigoProduto    string                  `json:"codigo_produto"`
	Descricao        string                  `json:"descricao"`
	NCM              string                  `json:"ncm"`
	CFOP             string                  `json:"cfop"`
	UnidadeComercial string                  `json:"unidade_comercial"`
	Quantidade       float64                 `json:"quantidade"`
	ValorUnitario    float64                 `json:"valor_unitario"`
	ValorTotal       float64                 `json:"valor_total"`
	ValorDesconto    float64                 `json:"valor_desconto"`
	Tributos         notafiscal.TributosItem `json:"tributos"`
}

// NotaFiscalDetalheResponse agrega a nota e seus itens
type NotaFiscalDetalheResponse struct {
	NotaFiscalResponse
	Itens []ItemNotaFiscalResponse `json:"itens"`
}

// NotaFiscalListResponse representa a resposta de lista de notas
type NotaFiscalListResponse struct {
	Items      []NotaFiscalResponse `json:"items"`
	Total      int                  `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}

// ToEmitirInput converte a requisição para a entrada do caso de uso
func (r EmitirNotaFiscalRequest) ToEmitirInput() usecase.EmitirNotaFiscalInput {
	return usecase.EmitirNotaFiscalInput{
		EmpresaID:   r.EmpresaID,
		ClienteID:   r.ClienteID,
		Tipo:        notafiscal.TipoNotaFiscal(r.Tipo),
		Itens:       toItensEmissao(r.Itens),
		Observacoes: r.Observacoes,
	}
}

// ToValidarInput converte a requisição para a entrada do caso de uso
func (r ValidarDadosRequest) ToValidarInput() usecase.ValidarDadosInput {
	return usecase.ValidarDadosInput{
		EmpresaID: r.EmpresaID,
		ClienteID: r.ClienteID,
		Tipo:      notafiscal.TipoNotaFiscal(r.Tipo),
		Itens:     toItensEmissao(r.Itens),
	}
}

func toItensEmissao(itens []ItemEmissaoRequest) []usecase.ItemEmissao {
	out := make([]usecase.ItemEmissao, len(itens))
	for i, item := range itens {
		out[i] = usecase.ItemEmissao{
			ProdutoID:     item.ProdutoID,
			Quantidade:    item.Quantidade,
			ValorUnitario: item.ValorUnitario,
			ValorDesconto: item.ValorDesconto,
			CodigoServico: item.CodigoServico,
		}
	}
	return out
}

// ToNotaFiscalResponse converte uma nota do domínio para DTO
func ToNotaFiscalResponse(n *notafiscal.NotaFiscal) *NotaFiscalResponse {
	return &NotaFiscalResponse{
		ID:                   n.ID,
		Numero:               n.Numero,
		Serie:                n.Serie,
		Tipo:                 string(n.Tipo),
		Status:               string(n.Status),
		ChaveAcesso:          n.ChaveAcesso,
		ProtocoloAutorizacao: n.ProtocoloAutorizacao,
		DataEmissao:          n.DataEmissao,
		DataVencimento:       n.DataVencimento,
		EmpresaID:            n.EmpresaID,
		ClienteID:            n.ClienteID,
		ValorTotal:           n.ValorTotal,
		ValorTributos:        n.ValorTributos,
		Observacoes:          n.Observacoes,
		MotivoRejeicao:       n.MotivoRejeicao,
		QuantidadeItens:      len(n.Itens),
		CreatedAt:            n.CreatedAt,
		UpdatedAt:            n.UpdatedAt,
	}
}

// ToItemNotaFiscalResponse converte um item do domínio para DTO
func ToItemNotaFiscalResponse(item *notafiscal.ItemNotaFiscal) ItemNotaFiscalResponse {
	return ItemNotaFiscalResponse{
		ID:               item.ID,
		NumeroItem:       item.NumeroItem,
		ProdutoID:        item.ProdutoID,
		CodigoProduto:    item.CodigoProduto,
		Descricao:        item.Descricao,
		NCM:              item.NCM,
		CFOP:             item.CFOP,
		UnidadeComercial: item.UnidadeComercial,
		Quantidade:       item.Quantidade,
		ValorUnitario:    item.ValorUnitario,
		ValorTotal:       item.ValorTotal,
		ValorDesconto:    item.ValorDesconto,
		Tributos:         item.Tributos,
	}
}

// ToNotaFiscalDetalheResponse converte a nota e seus itens para DTO
func ToNotaFiscalDetalheResponse(n *notafiscal.NotaFiscal, itens []*notafiscal.ItemNotaFiscal) *NotaFiscalDetalheResponse {
	out := make([]ItemNotaFiscalResponse, len(itens))
	for i, item := range itens {
		out[i] = ToItemNotaFiscalResponse(item)
	}

	return &NotaFiscalDetalheResponse{
		NotaFiscalResponse: *ToNotaFiscalResponse(n),
		Itens:              out,
	}
}

// ToNotaFiscalListResponse converte o resultado da listagem para DTO
func ToNotaFiscalListResponse(listagem *usecase.ListagemNotas) *NotaFiscalListResponse {
	items := make([]NotaFiscalResponse, len(listagem.Notas))
	for i, n := range listagem.Notas {
		items[i] = *ToNotaFiscalResponse(n)
	}

	return &NotaFiscalListResponse{
		Items:      items,
		Total:      listagem.Total,
		Page:       listagem.Page,
		PageSize:   listagem.PageSize,
		TotalPages: calculateTotalPages(listagem.Total, listagem.PageSize),
	}
}
