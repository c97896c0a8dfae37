package notafiscal

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/entity"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
)

var (
	ErrNumeroInvalido             = errors.New("número da nota fiscal deve ser maior que zero")
	ErrSerieInvalida              = errors.New("série da nota fiscal deve ser maior que zero")
	ErrEmpresaIDObrigatorio       = errors.New("ID da empresa é obrigatório")
	ErrClienteIDObrigatorio       = errors.New("ID do cliente é obrigatório")
	ErrValorTotalNegativo         = errors.New("valor total não pode ser negativo")
	ErrValorTributosNegativo      = errors.New("valor dos tributos não pode ser negativo")
	ErrTributosMaiorQueTotal      = errors.New("valor dos tributos não pode ser maior que o valor total")
	ErrNotaNaoEstaEmRascunho      = errors.New("nota fiscal deve estar em rascunho")
	ErrChaveAcessoJaGerada        = errors.New("chave de acesso já foi gerada")
	ErrChaveAcessoNaoGerada       = errors.New("chave de acesso deve ser gerada antes do envio")
	ErrNotaSemItens               = errors.New("nota fiscal deve ter pelo menos um item")
	ErrItemIDObrigatorio          = errors.New("ID do item é obrigatório")
	ErrItemJaAdicionado           = errors.New("item já adicionado à nota fiscal")
	ErrItemNaoEncontrado          = errors.New("item não encontrado na nota fiscal")
	ErrNotaNaoAguardandoEnvio     = errors.New("nota fiscal deve estar aguardando envio")
	ErrNotaNaoEnviada             = errors.New("nota fiscal deve estar enviada")
	ErrNotaNaoAutorizada          = errors.New("apenas notas autorizadas podem ser canceladas")
	ErrProtocoloObrigatorio       = errors.New("protocolo de autorização é obrigatório")
	ErrXMLObrigatorio             = errors.New("XML é obrigatório")
	ErrMotivoObrigatorio          = errors.New("motivo é obrigatório")
	ErrDataVencimentoInvalida     = errors.New("data de vencimento deve ser posterior à data de emissão")
)

// TipoNotaFiscal distingue nota de mercadoria (NF-e) e de serviço (NFS-e)
type TipoNotaFiscal string

const (
	TipoNFe  TipoNotaFiscal = "NFE"
	TipoNFSe TipoNotaFiscal = "NFSE"
)

// StatusNotaFiscal representa o estado da nota no ciclo de emissão
type StatusNotaFiscal string

const (
	StatusRascunho        StatusNotaFiscal = "RASCUNHO"
	StatusAguardandoEnvio StatusNotaFiscal = "AGUARDANDO_ENVIO"
	StatusEnviada         StatusNotaFiscal = "ENVIADA"
	StatusAutorizada      StatusNotaFiscal = "AUTORIZADA"
	StatusRejeitada       StatusNotaFiscal = "REJEITADA"
	StatusCancelada       StatusNotaFiscal = "CANCELADA"
	StatusInutilizada     StatusNotaFiscal = "INUTILIZADA"
)

// FinalidadeNF indica a finalidade de emissão da nota
type FinalidadeNF int

const (
	FinalidadeNormal       FinalidadeNF = 1
	FinalidadeComplementar FinalidadeNF = 2
	FinalidadeAjuste       FinalidadeNF = 3
	FinalidadeDevolucao    FinalidadeNF = 4
)

// FonteCodigoNumerico fornece o código numérico (cNF) de oito dígitos
// usado na composição da chave de acesso. Uma implementação
// determinística torna a geração da chave reproduzível em testes.
type FonteCodigoNumerico interface {
	CodigoNumerico() int
}

// FonteAleatoria gera o código numérico com math/rand
type FonteAleatoria struct{}

// CodigoNumerico retorna um número pseudoaleatório entre 0 e 99999999
func (FonteAleatoria) CodigoNumerico() int {
	return rand.Intn(100000000)
}

// NotaFiscal é a raiz do agregado de emissão de documentos fiscais
type NotaFiscal struct {
	entity.Base
	Numero                int64            `json:"numero"`
	Serie                 int              `json:"serie"`
	Tipo                  TipoNotaFiscal   `json:"tipo"`
	Status                StatusNotaFiscal `json:"status"`
	Finalidade            FinalidadeNF     `json:"finalidade"`
	ChaveAcesso           string           `json:"chave_acesso,omitempty"`
	ProtocoloAutorizacao  string           `json:"protocolo_autorizacao,omitempty"`
	DataEmissao           time.Time        `json:"data_emissao"`
	DataVencimento        *time.Time       `json:"data_vencimento,omitempty"`
	EmpresaID             string           `json:"empresa_id"`
	ClienteID             string           `json:"cliente_id"`
	ValorTotal            float64          `json:"valor_total"`
	ValorTributos         float64          `json:"valor_tributos"`
	Observacoes           string           `json:"observacoes,omitempty"`
	InformacoesAdicionais string           `json:"informacoes_adicionais,omitempty"`
	XMLOriginal           string           `json:"-"`
	XMLAssinado           string           `json:"-"`
	MotivoRejeicao        string           `json:"motivo_rejeicao,omitempty"`
	Itens                 []string         `json:"itens"`
}

// NewNotaFiscal cria uma nota fiscal em rascunho com data de emissão
// corrente
func NewNotaFiscal(
	numero int64,
	serie int,
	tipo TipoNotaFiscal,
	empresaID string,
	clienteID string,
	valorTotal float64,
	valorTributos float64,
	finalidade FinalidadeNF,
) (*NotaFiscal, error) {
	if numero <= 0 {
		return nil, ErrNumeroInvalido
	}
	if serie <= 0 {
		return nil, ErrSerieInvalida
	}
	if strings.TrimSpace(empresaID) == "" {
		return nil, ErrEmpresaIDObrigatorio
	}
	if strings.TrimSpace(clienteID) == "" {
		return nil, ErrClienteIDObrigatorio
	}
	if valorTotal < 0 {
		return nil, ErrValorTotalNegativo
	}
	if valorTributos < 0 {
		return nil, ErrValorTributosNegativo
	}
	if valorTributos > valorTotal {
		return nil, ErrTributosMaiorQueTotal
	}

	if finalidade == 0 {
		finalidade = FinalidadeNormal
	}

	return &NotaFiscal{
		Base:          entity.NewBase("nota_fiscal"),
		Numero:        numero,
		Serie:         serie,
		Tipo:          tipo,
		Status:        StatusRascunho,
		Finalidade:    finalidade,
		DataEmissao:   time.Now(),
		EmpresaID:     empresaID,
		ClienteID:     clienteID,
		ValorTotal:    valorTotal,
		ValorTributos: valorTributos,
		Itens:         []string{},
	}, nil
}

// GerarChaveAcesso monta a chave de acesso de 44 dígitos:
// cUF(2) + AAMM(4) + CNPJ(14) + modelo(2) + série(3) + número(9) +
// tpEmis(1) + cNF(8) + DV(1). Só pode ser gerada uma vez, com a nota
// em rascunho.
func (n *NotaFiscal) GerarChaveAcesso(uf string, cnpjEmpresa string, fonte FonteCodigoNumerico) (string, error) {
	if n.Status != StatusRascunho {
		return "", ErrNotaNaoEstaEmRascunho
	}
	if n.ChaveAcesso != "" {
		return "", ErrChaveAcessoJaGerada
	}

	codigoUF, err := valueobject.CodigoUF(uf)
	if err != nil {
		return "", err
	}

	if fonte == nil {
		fonte = FonteAleatoria{}
	}

	aamm := n.DataEmissao.Format("0601")
	cnpj := somenteDigitos(cnpjEmpresa)
	modelo := "55"
	if n.Tipo == TipoNFSe {
		modelo = "56"
	}

	chaveBase := fmt.Sprintf("%s%s%s%s%03d%09d%s%08d",
		codigoUF, aamm, cnpj, modelo, n.Serie, n.Numero, "1",
		fonte.CodigoNumerico()%100000000)

	n.ChaveAcesso = chaveBase + calcularDVChave(chaveBase)
	n.Touch()
	return n.ChaveAcesso, nil
}

// calcularDVChave calcula o dígito verificador da chave de acesso:
// pesos cíclicos de 2 a 9 a partir do dígito mais à direita, módulo 11;
// resto menor que 2 resulta em dígito 0
func calcularDVChave(chave string) string {
	soma := 0
	peso := 2
	for i := len(chave) - 1; i >= 0; i-- {
		soma += int(chave[i]-'0') * peso
		peso++
		if peso > 9 {
			peso = 2
		}
	}

	resto := soma % 11
	if resto < 2 {
		return "0"
	}
	return fmt.Sprintf("%d", 11-resto)
}

// AdicionarItem inclui o ID de um item na nota em rascunho
func (n *NotaFiscal) AdicionarItem(itemID string) error {
	if strings.TrimSpace(itemID) == "" {
		return ErrItemIDObrigatorio
	}
	if n.Status != StatusRascunho {
		return ErrNotaNaoEstaEmRascunho
	}
	for _, id := range n.Itens {
		if id == itemID {
			return ErrItemJaAdicionado
		}
	}

	n.Itens = append(n.Itens, itemID)
	n.Touch()
	return nil
}

// RemoverItem retira o ID de um item da nota em rascunho
func (n *NotaFiscal) RemoverItem(itemID string) error {
	if n.Status != StatusRascunho {
		return ErrNotaNaoEstaEmRascunho
	}
	for i, id := range n.Itens {
		if id == itemID {
			n.Itens = append(n.Itens[:i], n.Itens[i+1:]...)
			n.Touch()
			return nil
		}
	}
	return ErrItemNaoEncontrado
}

// PrepararParaEnvio transiciona a nota de rascunho para aguardando
// envio. Exige ao menos um item e chave de acesso gerada.
func (n *NotaFiscal) PrepararParaEnvio() error {
	if n.Status != StatusRascunho {
		return ErrNotaNaoEstaEmRascunho
	}
	if len(n.Itens) == 0 {
		return ErrNotaSemItens
	}
	if n.ChaveAcesso == "" {
		return ErrChaveAcessoNaoGerada
	}

	n.Status = StatusAguardandoEnvio
	n.Touch()
	return nil
}

// MarcarComoEnviada registra a transmissão da nota para a SEFAZ
func (n *NotaFiscal) MarcarComoEnviada() error {
	if n.Status != StatusAguardandoEnvio {
		return ErrNotaNaoAguardandoEnvio
	}

	n.Status = StatusEnviada
	n.Touch()
	return nil
}

// Autorizar registra a autorização da nota pela SEFAZ
func (n *NotaFiscal) Autorizar(protocoloAutorizacao, xmlAssinado string) error {
	if n.Status != StatusEnviada {
		return ErrNotaNaoEnviada
	}
	if strings.TrimSpace(protocoloAutorizacao) == "" {
		return ErrProtocoloObrigatorio
	}
	if strings.TrimSpace(xmlAssinado) == "" {
		return ErrXMLObrigatorio
	}

	n.ProtocoloAutorizacao = protocoloAutorizacao
	n.XMLAssinado = xmlAssinado
	n.Status = StatusAutorizada
	n.Touch()
	return nil
}

// Rejeitar registra a rejeição da nota pela SEFAZ
func (n *NotaFiscal) Rejeitar(motivo string) error {
	if n.Status != StatusEnviada {
		return ErrNotaNaoEnviada
	}
	if strings.TrimSpace(motivo) == "" {
		return ErrMotivoObrigatorio
	}

	n.MotivoRejeicao = motivo
	n.Status = StatusRejeitada
	n.Touch()
	return nil
}

// Cancelar cancela uma nota já autorizada
func (n *NotaFiscal) Cancelar(motivo string) error {
	if n.Status != StatusAutorizada {
		return ErrNotaNaoAutorizada
	}
	if strings.TrimSpace(motivo) == "" {
		return ErrMotivoObrigatorio
	}

	n.MotivoRejeicao = motivo
	n.Status = StatusCancelada
	n.Touch()
	return nil
}

// DefinirXMLOriginal guarda o XML gerado antes da assinatura
func (n *NotaFiscal) DefinirXMLOriginal(xml string) error {
	if strings.TrimSpace(xml) == "" {
		return ErrXMLObrigatorio
	}

	n.XMLOriginal = xml
	return nil
}

// DefinirDataVencimento define a data de vencimento da nota
func (n *NotaFiscal) DefinirDataVencimento(data time.Time) error {
	if !data.After(n.DataEmissao) {
		return ErrDataVencimentoInvalida
	}

	n.DataVencimento = &data
	return nil
}

// AtualizarObservacoes altera as observações de uma nota em rascunho
func (n *NotaFiscal) AtualizarObservacoes(observacoes string) error {
	if n.Status != StatusRascunho {
		return ErrNotaNaoEstaEmRascunho
	}

	n.Observacoes = observacoes
	n.Touch()
	return nil
}

// AtualizarInformacoesAdicionais altera o texto livre de uma nota em
// rascunho
func (n *NotaFiscal) AtualizarInformacoesAdicionais(informacoes string) error {
	if n.Status != StatusRascunho {
		return ErrNotaNaoEstaEmRascunho
	}

	n.InformacoesAdicionais = informacoes
	n.Touch()
	return nil
}

// PodeSerEditada indica se a nota ainda aceita alterações
func (n *NotaFiscal) PodeSerEditada() bool {
	return n.Status == StatusRascunho
}

// EstaAutorizada indica se a nota foi autorizada pela SEFAZ
func (n *NotaFiscal) EstaAutorizada() bool {
	return n.Status == StatusAutorizada
}

// EstaCancelada indica se a nota foi cancelada
func (n *NotaFiscal) EstaCancelada() bool {
	return n.Status == StatusCancelada
}
