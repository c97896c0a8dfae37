package notafiscal

import (
	"errors"
	"regexp"
	"strings"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/entity"
)

var (
	ErrItemNotaFiscalIDObrigatorio = errors.New("ID da nota fiscal é obrigatório")
	ErrItemProdutoIDObrigatorio    = errors.New("ID do produto é obrigatório")
	ErrItemNumeroInvalido          = errors.New("número do item deve ser maior que zero")
	ErrItemCodigoObrigatorio       = errors.New("código do produto é obrigatório")
	ErrItemDescricaoObrigatoria    = errors.New("descrição do produto é obrigatória")
	ErrItemNCMInvalido             = errors.New("NCM inválido - deve ter 8 dígitos")
	ErrItemCFOPInvalido            = errors.New("CFOP inválido - deve ter 4 dígitos")
	ErrItemUnidadeObrigatoria      = errors.New("unidade comercial é obrigatória")
	ErrItemQuantidadeInvalida      = errors.New("quantidade deve ser maior que zero")
	ErrItemValorUnitarioNegativo   = errors.New("valor unitário não pode ser negativo")
	ErrItemDescontoNegativo        = errors.New("valor do desconto não pode ser negativo")
	ErrItemDescontoMaiorQueBruto   = errors.New("desconto não pode ser maior que o valor bruto do item")
	ErrItemValorOutrosNegativo     = errors.New("valor outros não pode ser negativo")
	ErrItemEANInvalido             = errors.New("código EAN inválido")
	ErrItemCESTInvalido            = errors.New("CEST inválido - deve ter 7 dígitos")
	ErrTributoCSTObrigatorio       = errors.New("CST do tributo é obrigatório")
	ErrTributoAliquotaInvalida     = errors.New("alíquota deve estar entre 0 e 100")
	ErrTributoBaseNegativa         = errors.New("valor base do tributo não pode ser negativo")
	ErrTributoValorNegativo        = errors.New("valor do tributo não pode ser negativo")
)

// TipoItem define se o item da nota é produto ou serviço
type TipoItem string

const (
	TipoItemProduto TipoItem = "PRODUTO"
	TipoItemServico TipoItem = "SERVICO"
)

// OrigemMercadoria segue a tabela de origem da mercadoria do ICMS (0 a 7)
type OrigemMercadoria int

const (
	OrigemNacional                        OrigemMercadoria = 0
	OrigemEstrangeiraImportacaoDireta     OrigemMercadoria = 1
	OrigemEstrangeiraMercadoInterno       OrigemMercadoria = 2
	OrigemNacionalConteudoImportSuperior  OrigemMercadoria = 3
	OrigemNacionalProducaoConformidade    OrigemMercadoria = 4
	OrigemNacionalConteudoImportInferior  OrigemMercadoria = 5
	OrigemEstrangeiraDiretaSemNacional    OrigemMercadoria = 6
	OrigemEstrangeiraInternoSemNacional   OrigemMercadoria = 7
)

var (
	itemNCMRegexp  = regexp.MustCompile(`^\d{8}$`)
	itemCFOPRegexp = regexp.MustCompile(`^\d{4}$`)
	cestRegexp     = regexp.MustCompile(`^\d{7}$`)
	digitosRegexp  = regexp.MustCompile(`\D`)
)

// TributoItem descreve a incidência de um tributo sobre o item
type TributoItem struct {
	CST          string  `json:"cst"`
	Aliquota     float64 `json:"aliquota"`
	ValorBase    float64 `json:"valor_base"`
	ValorTributo float64 `json:"valor_tributo"`
}

// TributosItem agrupa os tributos que podem incidir sobre um item;
// um ponteiro nil indica que o tributo não incide
type TributosItem struct {
	ICMS   *TributoItem `json:"icms,omitempty"`
	IPI    *TributoItem `json:"ipi,omitempty"`
	PIS    *TributoItem `json:"pis,omitempty"`
	COFINS *TributoItem `json:"cofins,omitempty"`
	ISSQN  *TributoItem `json:"issqn,omitempty"`
}

// ItemNotaFiscal representa uma linha da nota fiscal
type ItemNotaFiscal struct {
	entity.Base
	NotaFiscalID          string           `json:"nota_fiscal_id"`
	ProdutoID             string           `json:"produto_id"`
	NumeroItem            int              `json:"numero_item"`
	Tipo                  TipoItem         `json:"tipo"`
	CodigoProduto         string           `json:"codigo_produto"`
	CodigoEAN             string           `json:"codigo_ean,omitempty"`
	Descricao             string           `json:"descricao"`
	NCM                   string           `json:"ncm"`
	CEST                  string           `json:"cest,omitempty"`
	CFOP                  string           `json:"cfop"`
	CodigoServico         string           `json:"codigo_servico,omitempty"`
	UnidadeComercial      string           `json:"unidade_comercial"`
	Quantidade            float64          `json:"quantidade"`
	ValorUnitario         float64          `json:"valor_unitario"`
	ValorTotal            float64          `json:"valor_total"`
	ValorDesconto         float64          `json:"valor_desconto"`
	ValorOutros           float64          `json:"valor_outros"`
	Origem                OrigemMercadoria `json:"origem"`
	Tributos              TributosItem     `json:"tributos"`
	InformacoesAdicionais string           `json:"informacoes_adicionais,omitempty"`
}

// NewItemNotaFiscal cria um novo item de nota fiscal já com o valor
// total calculado
func NewItemNotaFiscal(
	notaFiscalID string,
	produtoID string,
	numeroItem int,
	tipo TipoItem,
	codigoProduto string,
	descricao string,
	ncm string,
	cfop string,
	unidadeComercial string,
	quantidade float64,
	valorUnitario float64,
) (*ItemNotaFiscal, error) {
	if strings.TrimSpace(notaFiscalID) == "" {
		return nil, ErrItemNotaFiscalIDObrigatorio
	}
	if strings.TrimSpace(produtoID) == "" {
		return nil, ErrItemProdutoIDObrigatorio
	}
	if numeroItem <= 0 {
		return nil, ErrItemNumeroInvalido
	}
	if strings.TrimSpace(codigoProduto) == "" {
		return nil, ErrItemCodigoObrigatorio
	}
	if strings.TrimSpace(descricao) == "" {
		return nil, ErrItemDescricaoObrigatoria
	}
	if !itemNCMRegexp.MatchString(somenteDigitos(ncm)) {
		return nil, ErrItemNCMInvalido
	}
	if !itemCFOPRegexp.MatchString(somenteDigitos(cfop)) {
		return nil, ErrItemCFOPInvalido
	}
	if strings.TrimSpace(unidadeComercial) == "" {
		return nil, ErrItemUnidadeObrigatoria
	}
	if quantidade <= 0 {
		return nil, ErrItemQuantidadeInvalida
	}
	if valorUnitario < 0 {
		return nil, ErrItemValorUnitarioNegativo
	}

	item := &ItemNotaFiscal{
		Base:             entity.NewBase("item_nota_fiscal"),
		NotaFiscalID:     notaFiscalID,
		ProdutoID:        produtoID,
		NumeroItem:       numeroItem,
		Tipo:             tipo,
		CodigoProduto:    codigoProduto,
		Descricao:        descricao,
		NCM:              somenteDigitos(ncm),
		CFOP:             somenteDigitos(cfop),
		UnidadeComercial: unidadeComercial,
		Quantidade:       quantidade,
		ValorUnitario:    valorUnitario,
		Origem:           OrigemNacional,
	}
	item.recalcularValorTotal()
	return item, nil
}

func (i *ItemNotaFiscal) recalcularValorTotal() {
	valorBruto := i.Quantidade * i.ValorUnitario
	i.ValorTotal = valorBruto - i.ValorDesconto + i.ValorOutros
}

// ValorBruto retorna quantidade x valor unitário, antes de descontos
func (i *ItemNotaFiscal) ValorBruto() float64 {
	return i.Quantidade * i.ValorUnitario
}

// AplicarDesconto define o desconto do item e recalcula o total
func (i *ItemNotaFiscal) AplicarDesconto(valorDesconto float64) error {
	if valorDesconto < 0 {
		return ErrItemDescontoNegativo
	}
	if valorDesconto > i.ValorBruto() {
		return ErrItemDescontoMaiorQueBruto
	}

	i.ValorDesconto = valorDesconto
	i.recalcularValorTotal()
	i.Touch()
	return nil
}

// AdicionarValorOutros define despesas acessórias do item
func (i *ItemNotaFiscal) AdicionarValorOutros(valor float64) error {
	if valor < 0 {
		return ErrItemValorOutrosNegativo
	}

	i.ValorOutros = valor
	i.recalcularValorTotal()
	i.Touch()
	return nil
}

// AtualizarQuantidade altera a quantidade e recalcula o total
func (i *ItemNotaFiscal) AtualizarQuantidade(quantidade float64) error {
	if quantidade <= 0 {
		return ErrItemQuantidadeInvalida
	}

	i.Quantidade = quantidade
	i.recalcularValorTotal()
	i.Touch()
	return nil
}

// AtualizarValorUnitario altera o valor unitário e recalcula o total
func (i *ItemNotaFiscal) AtualizarValorUnitario(valor float64) error {
	if valor < 0 {
		return ErrItemValorUnitarioNegativo
	}

	i.ValorUnitario = valor
	i.recalcularValorTotal()
	i.Touch()
	return nil
}

// DefinirTributoICMS define o ICMS incidente sobre o item
func (i *ItemNotaFiscal) DefinirTributoICMS(tributo TributoItem) error {
	if err := validarTributo(tributo); err != nil {
		return err
	}
	i.Tributos.ICMS = &tributo
	return nil
}

// DefinirTributoIPI define o IPI incidente sobre o item
func (i *ItemNotaFiscal) DefinirTributoIPI(tributo TributoItem) error {
	if err := validarTributo(tributo); err != nil {
		return err
	}
	i.Tributos.IPI = &tributo
	return nil
}

// DefinirTributoPIS define o PIS incidente sobre o item
func (i *ItemNotaFiscal) DefinirTributoPIS(tributo TributoItem) error {
	if err := validarTributo(tributo); err != nil {
		return err
	}
	i.Tributos.PIS = &tributo
	return nil
}

// DefinirTributoCOFINS define a COFINS incidente sobre o item
func (i *ItemNotaFiscal) DefinirTributoCOFINS(tributo TributoItem) error {
	if err := validarTributo(tributo); err != nil {
		return err
	}
	i.Tributos.COFINS = &tributo
	return nil
}

// DefinirTributoISSQN define o ISSQN incidente sobre o item de serviço
func (i *ItemNotaFiscal) DefinirTributoISSQN(tributo TributoItem) error {
	if err := validarTributo(tributo); err != nil {
		return err
	}
	i.Tributos.ISSQN = &tributo
	return nil
}

// CalcularTotalTributos soma os valores dos tributos incidentes
func (i *ItemNotaFiscal) CalcularTotalTributos() float64 {
	total := 0.0
	for _, t := range i.tributosIncidentes() {
		total += t.ValorTributo
	}
	return total
}

// AliquotaTotalTributos soma as alíquotas dos tributos incidentes
func (i *ItemNotaFiscal) AliquotaTotalTributos() float64 {
	total := 0.0
	for _, t := range i.tributosIncidentes() {
		total += t.Aliquota
	}
	return total
}

func (i *ItemNotaFiscal) tributosIncidentes() []*TributoItem {
	candidatos := []*TributoItem{
		i.Tributos.ICMS, i.Tributos.IPI, i.Tributos.PIS,
		i.Tributos.COFINS, i.Tributos.ISSQN,
	}
	presentes := make([]*TributoItem, 0, len(candidatos))
	for _, t := range candidatos {
		if t != nil {
			presentes = append(presentes, t)
		}
	}
	return presentes
}

// EhProduto indica se o item é uma mercadoria
func (i *ItemNotaFiscal) EhProduto() bool {
	return i.Tipo == TipoItemProduto
}

// EhServico indica se o item é um serviço
func (i *ItemNotaFiscal) EhServico() bool {
	return i.Tipo == TipoItemServico
}

// DefinirCodigoEAN define o código de barras do item. Aceita GTIN de
// 8, 12, 13 ou 14 dígitos
func (i *ItemNotaFiscal) DefinirCodigoEAN(codigo string) error {
	limpo := somenteDigitos(codigo)
	switch len(limpo) {
	case 8, 12, 13, 14:
		i.CodigoEAN = limpo
		return nil
	}
	return ErrItemEANInvalido
}

// DefinirCEST define o código especificador da substituição tributária
func (i *ItemNotaFiscal) DefinirCEST(cest string) error {
	limpo := somenteDigitos(cest)
	if !cestRegexp.MatchString(limpo) {
		return ErrItemCESTInvalido
	}
	i.CEST = limpo
	return nil
}

// DefinirCodigoServico define o código de serviço da LC 116/2003,
// usado na validação de NFS-e
func (i *ItemNotaFiscal) DefinirCodigoServico(codigo string) {
	i.CodigoServico = codigo
}

// DefinirOrigem define a origem da mercadoria
func (i *ItemNotaFiscal) DefinirOrigem(origem OrigemMercadoria) {
	i.Origem = origem
}

// AtualizarInformacoesAdicionais define o texto livre do item
func (i *ItemNotaFiscal) AtualizarInformacoesAdicionais(informacoes string) {
	i.InformacoesAdicionais = informacoes
}

func validarTributo(t TributoItem) error {
	if strings.TrimSpace(t.CST) == "" {
		return ErrTributoCSTObrigatorio
	}
	if t.Aliquota < 0 || t.Aliquota > 100 {
		return ErrTributoAliquotaInvalida
	}
	if t.ValorBase < 0 {
		return ErrTributoBaseNegativa
	}
	if t.ValorTributo < 0 {
		return ErrTributoValorNegativo
	}
	return nil
}

func somenteDigitos(s string) string {
	return digitosRegexp.ReplaceAllString(s, "")
}
