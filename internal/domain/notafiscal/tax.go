package notafiscal

import (
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/product"
)

// CalculoTributos agrupa os valores apurados por tributo para um item
type CalculoTributos struct {
	ICMS   float64 `json:"icms"`
	IPI    float64 `json:"ipi"`
	PIS    float64 `json:"pis"`
	COFINS float64 `json:"cofins"`
	ISS    float64 `json:"iss"`
}

// Total soma os valores apurados de todos os tributos
func (c CalculoTributos) Total() float64 {
	return c.ICMS + c.IPI + c.PIS + c.COFINS + c.ISS
}

// CalculadoraTributos apura os tributos de um item a partir do perfil
// tributário do produto. O cálculo é puro: mesma entrada, mesmo resultado.
type CalculadoraTributos struct{}

// NewCalculadoraTributos cria uma calculadora de tributos
func NewCalculadoraTributos() *CalculadoraTributos {
	return &CalculadoraTributos{}
}

// CalcularTributosProduto apura cada tributo como
// valorTotal x alíquota / 100. Se valorUnitario for zero ou negativo,
// usa o preço de tabela do produto.
func (c *CalculadoraTributos) CalcularTributosProduto(p *product.Product, quantidade, valorUnitario float64) CalculoTributos {
	preco := valorUnitario
	if preco <= 0 {
		preco = p.UnitPrice
	}
	valorTotal := preco * quantidade
	info := p.TaxInfo

	calculo := CalculoTributos{
		ICMS:   valorTotal * info.ICMSRate / 100,
		IPI:    valorTotal * info.IPIRate / 100,
		PIS:    valorTotal * info.PISRate / 100,
		COFINS: valorTotal * info.COFINSRate / 100,
	}
	if p.IsService() {
		calculo.ISS = valorTotal * info.ISSRate / 100
	}
	return calculo
}

// MontarItem cria o item da nota a partir do produto, já com os
// tributos apurados e registrados
func (c *CalculadoraTributos) MontarItem(
	notaFiscalID string,
	numeroItem int,
	p *product.Product,
	quantidade float64,
	valorUnitario float64,
) (*ItemNotaFiscal, error) {
	preco := valorUnitario
	if preco <= 0 {
		preco = p.UnitPrice
	}

	tipo := TipoItemProduto
	if p.IsService() {
		tipo = TipoItemServico
	}

	item, err := NewItemNotaFiscal(
		notaFiscalID, p.ID, numeroItem, tipo,
		p.Code, p.Name, p.NCM, p.CFOP, p.UnitOfMeasure,
		quantidade, preco,
	)
	if err != nil {
		return nil, err
	}

	valorTotal := preco * quantidade
	info := p.TaxInfo
	calculo := c.CalcularTributosProduto(p, quantidade, preco)

	tributos := []struct {
		definir  func(TributoItem) error
		cst      string
		aliquota float64
		valor    float64
	}{
		{item.DefinirTributoICMS, info.CSTICMS, info.ICMSRate, calculo.ICMS},
		{item.DefinirTributoIPI, info.CSTIPI, info.IPIRate, calculo.IPI},
		{item.DefinirTributoPIS, info.CSTPIS, info.PISRate, calculo.PIS},
		{item.DefinirTributoCOFINS, info.CSTCOFINS, info.COFINSRate, calculo.COFINS},
	}
	for _, t := range tributos {
		if t.cst == "" {
			continue
		}
		if err := t.definir(TributoItem{
			CST:          t.cst,
			Aliquota:     t.aliquota,
			ValorBase:    valorTotal,
			ValorTributo: t.valor,
		}); err != nil {
			return nil, err
		}
	}

	if p.IsService() && info.ISSRate > 0 {
		if err := item.DefinirTributoISSQN(TributoItem{
			CST:          "00",
			Aliquota:     info.ISSRate,
			ValorBase:    valorTotal,
			ValorTributo: calculo.ISS,
		}); err != nil {
			return nil, err
		}
	}

	return item, nil
}
