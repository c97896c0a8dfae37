package notafiscal_test

import (
	"testing"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoItem(t *testing.T, numero int, quantidade, valorUnitario float64) *notafiscal.ItemNotaFiscal {
	t.Helper()
	item, err := notafiscal.NewItemNotaFiscal(
		"nota-1", "produto-1", numero, notafiscal.TipoItemProduto,
		"ARZ-001", "Arroz Tipo 1 5kg", "10063021", "5102", "UN",
		quantidade, valorUnitario,
	)
	require.NoError(t, err)
	return item
}

func TestNewItemNotaFiscal(t *testing.T) {
	item := novoItem(t, 1, 10, 50.00)

	assert.Equal(t, notafiscal.OrigemNacional, item.Origem)
	assert.InDelta(t, 500.00, item.ValorTotal, 0.001)
	assert.True(t, item.EhProduto())
	assert.False(t, item.EhServico())
}

func TestNewItemNotaFiscal_Validacoes(t *testing.T) {
	tests := []struct {
		nome    string
		criar   func() (*notafiscal.ItemNotaFiscal, error)
		wantErr error
	}{
		{"sem nota", func() (*notafiscal.ItemNotaFiscal, error) {
			return notafiscal.NewItemNotaFiscal("", "p", 1, notafiscal.TipoItemProduto, "C", "D", "10063021", "5102", "UN", 1, 1)
		}, notafiscal.ErrItemNotaFiscalIDObrigatorio},
		{"sem produto", func() (*notafiscal.ItemNotaFiscal, error) {
			return notafiscal.NewItemNotaFiscal("n", " ", 1, notafiscal.TipoItemProduto, "C", "D", "10063021", "5102", "UN", 1, 1)
		}, notafiscal.ErrItemProdutoIDObrigatorio},
		{"número zero", func() (*notafiscal.ItemNotaFiscal, error) {
			return notafiscal.NewItemNotaFiscal("n", "p", 0, notafiscal.TipoItemProduto, "C", "D", "10063021", "5102", "UN", 1, 1)
		}, notafiscal.ErrItemNumeroInvalido},
		{"NCM curto", func() (*notafiscal.ItemNotaFiscal, error) {
			return notafiscal.NewItemNotaFiscal("n", "p", 1, notafiscal.TipoItemProduto, "C", "D", "1006302", "5102", "UN", 1, 1)
		}, notafiscal.ErrItemNCMInvalido},
		{"CFOP longo", func() (*notafiscal.ItemNotaFiscal, error) {
			return notafiscal.NewItemNotaFiscal("n", "p", 1, notafiscal.TipoItemProduto, "C", "D", "10063021", "51020", "UN", 1, 1)
		}, notafiscal.ErrItemCFOPInvalido},
		{"quantidade zero", func() (*notafiscal.ItemNotaFiscal, error) {
			return notafiscal.NewItemNotaFiscal("n", "p", 1, notafiscal.TipoItemProduto, "C", "D", "10063021", "5102", "UN", 0, 1)
		}, notafiscal.ErrItemQuantidadeInvalida},
		{"valor unitário negativo", func() (*notafiscal.ItemNotaFiscal, error) {
			return notafiscal.NewItemNotaFiscal("n", "p", 1, notafiscal.TipoItemProduto, "C", "D", "10063021", "5102", "UN", 1, -0.01)
		}, notafiscal.ErrItemValorUnitarioNegativo},
	}

	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			_, err := tt.criar()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestItem_Desconto(t *testing.T) {
	item := novoItem(t, 1, 10, 50.00)

	assert.ErrorIs(t, item.AplicarDesconto(-1), notafiscal.ErrItemDescontoNegativo)

	// desconto maior que o valor bruto é barrado antes de qualquer validação
	assert.ErrorIs(t, item.AplicarDesconto(600.00), notafiscal.ErrItemDescontoMaiorQueBruto)
	assert.InDelta(t, 500.00, item.ValorTotal, 0.001)

	require.NoError(t, item.AplicarDesconto(50.00))
	assert.InDelta(t, 450.00, item.ValorTotal, 0.001)
}

func TestItem_RecalculoDoTotal(t *testing.T) {
	item := novoItem(t, 1, 2, 100.00)

	require.NoError(t, item.AplicarDesconto(20.00))
	require.NoError(t, item.AdicionarValorOutros(5.00))
	assert.InDelta(t, 185.00, item.ValorTotal, 0.001)

	require.NoError(t, item.AtualizarQuantidade(3))
	assert.InDelta(t, 285.00, item.ValorTotal, 0.001)

	require.NoError(t, item.AtualizarValorUnitario(50.00))
	assert.InDelta(t, 135.00, item.ValorTotal, 0.001)

	assert.ErrorIs(t, item.AtualizarQuantidade(0), notafiscal.ErrItemQuantidadeInvalida)
	assert.ErrorIs(t, item.AtualizarValorUnitario(-1), notafiscal.ErrItemValorUnitarioNegativo)
	assert.ErrorIs(t, item.AdicionarValorOutros(-1), notafiscal.ErrItemValorOutrosNegativo)
}

func TestItem_Tributos(t *testing.T) {
	item := novoItem(t, 1, 10, 50.00)

	require.NoError(t, item.DefinirTributoICMS(notafiscal.TributoItem{
		CST: "00", Aliquota: 18, ValorBase: 500, ValorTributo: 90,
	}))
	require.NoError(t, item.DefinirTributoPIS(notafiscal.TributoItem{
		CST: "01", Aliquota: 1.65, ValorBase: 500, ValorTributo: 8.25,
	}))
	require.NoError(t, item.DefinirTributoCOFINS(notafiscal.TributoItem{
		CST: "01", Aliquota: 7.6, ValorBase: 500, ValorTributo: 38,
	}))

	assert.InDelta(t, 136.25, item.CalcularTotalTributos(), 0.001)
	assert.InDelta(t, 27.25, item.AliquotaTotalTributos(), 0.001)
}

func TestItem_TributosInvalidos(t *testing.T) {
	item := novoItem(t, 1, 1, 10)

	assert.ErrorIs(t, item.DefinirTributoICMS(notafiscal.TributoItem{
		CST: "", Aliquota: 18,
	}), notafiscal.ErrTributoCSTObrigatorio)

	assert.ErrorIs(t, item.DefinirTributoIPI(notafiscal.TributoItem{
		CST: "50", Aliquota: 101,
	}), notafiscal.ErrTributoAliquotaInvalida)

	assert.ErrorIs(t, item.DefinirTributoPIS(notafiscal.TributoItem{
		CST: "01", Aliquota: 1.65, ValorBase: -1,
	}), notafiscal.ErrTributoBaseNegativa)

	assert.ErrorIs(t, item.DefinirTributoCOFINS(notafiscal.TributoItem{
		CST: "01", Aliquota: 7.6, ValorTributo: -1,
	}), notafiscal.ErrTributoValorNegativo)
}

func TestItem_CodigosAuxiliares(t *testing.T) {
	item := novoItem(t, 1, 1, 10)

	assert.ErrorIs(t, item.DefinirCodigoEAN("123"), notafiscal.ErrItemEANInvalido)
	require.NoError(t, item.DefinirCodigoEAN("7891000100103"))
	assert.Equal(t, "7891000100103", item.CodigoEAN)

	assert.ErrorIs(t, item.DefinirCEST("123"), notafiscal.ErrItemCESTInvalido)
	require.NoError(t, item.DefinirCEST("17.096.00"))
	assert.Equal(t, "1709600", item.CEST)
}
