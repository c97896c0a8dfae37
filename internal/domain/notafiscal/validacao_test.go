package notafiscal_test

import (
	"testing"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/company"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/customer"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func empresaEmitente(t *testing.T) *company.Company {
	t.Helper()
	cnpj, err := valueobject.NewCNPJ("11444777000161")
	require.NoError(t, err)
	addr, err := valueobject.NewAddress(
		"Avenida Paulista", "1578", "", "Bela Vista",
		"São Paulo", "SP", "01310200", "Brasil", "3550308")
	require.NoError(t, err)

	c, err := company.NewCompany(
		"ACME Comércio Ltda", "ACME", cnpj, "110042490114",
		addr, "fiscal@acme.com.br", "11 4002-8922",
		company.TaxRegimeLucroPresumido, "12345")
	require.NoError(t, err)
	return c
}

func clienteDestinatario(t *testing.T) *customer.Customer {
	t.Helper()
	cnpj, err := valueobject.NewCNPJ("11444777000161")
	require.NoError(t, err)
	addr, err := valueobject.NewAddress(
		"Rua das Laranjeiras", "100", "", "Centro",
		"São Paulo", "SP", "01310100", "", "3550308")
	require.NoError(t, err)

	c, err := customer.NewCustomer(
		"Distribuidora Alfa Ltda", "fiscal@alfa.com.br",
		customer.NewDocumentoCNPJ(cnpj), customer.IndicadorContribuinte,
		"", addr, "110042490114",
	)
	require.NoError(t, err)
	return c
}

// notaComUmItem monta o cenário base: nota em rascunho com um item de
// 10 x 50,00, total declarado 500,00, sem tributos
func notaComUmItem(t *testing.T) (*notafiscal.NotaFiscal, []*notafiscal.ItemNotaFiscal) {
	t.Helper()
	nota, err := notafiscal.NewNotaFiscal(
		1, 1, notafiscal.TipoNFe, "empresa-1", "cliente-1", 500.00, 0,
		notafiscal.FinalidadeNormal,
	)
	require.NoError(t, err)

	item, err := notafiscal.NewItemNotaFiscal(
		nota.ID, "produto-1", 1, notafiscal.TipoItemProduto,
		"ARZ-001", "Arroz Tipo 1 5kg", "10063021", "5102", "UN", 10, 50.00,
	)
	require.NoError(t, err)

	require.NoError(t, nota.AdicionarItem(item.ID))
	_, err = nota.GerarChaveAcesso("SP", "11444777000161", fonteFixa{codigo: 42})
	require.NoError(t, err)

	return nota, []*notafiscal.ItemNotaFiscal{item}
}

func TestValidarParaEnvio_NotaValida(t *testing.T) {
	v := notafiscal.NewValidadorNFe()
	nota, itens := notaComUmItem(t)

	resultado := v.ValidarParaEnvio(nota, empresaEmitente(t), clienteDestinatario(t), itens)

	assert.True(t, resultado.Valida)
	assert.Empty(t, resultado.Erros)
}

func TestValidarDadosObrigatorios(t *testing.T) {
	v := notafiscal.NewValidadorNFe()
	nota, _ := notaComUmItem(t)

	t.Run("empresa inativa", func(t *testing.T) {
		empresa := empresaEmitente(t)
		empresa.Deactivate()

		resultado := v.ValidarDadosObrigatorios(nota, empresa, clienteDestinatario(t))
		assert.False(t, resultado.Valida)
		assert.Contains(t, resultado.Erros, "Empresa deve estar ativa para emissão de NF-e")
		assert.Contains(t, resultado.Erros, "Empresa não está configurada para emitir NF-e")
	})

	t.Run("cliente inativo gera apenas aviso", func(t *testing.T) {
		cliente := clienteDestinatario(t)
		cliente.Deactivate()

		resultado := v.ValidarDadosObrigatorios(nota, empresaEmitente(t), cliente)
		assert.True(t, resultado.Valida)
		assert.Contains(t, resultado.Avisos, "Cliente está inativo")
	})

	t.Run("cliente sem endereço", func(t *testing.T) {
		cliente := clienteDestinatario(t)
		cliente.UpdateAddress(valueobject.Address{})

		resultado := v.ValidarDadosObrigatorios(nota, empresaEmitente(t), cliente)
		assert.Contains(t, resultado.Erros, "Cliente deve ter endereço cadastrado")
	})

	t.Run("contribuinte sem inscrição estadual", func(t *testing.T) {
		cliente := clienteDestinatario(t)
		cliente.StateRegistration = ""

		resultado := v.ValidarDadosObrigatorios(nota, empresaEmitente(t), cliente)
		assert.Contains(t, resultado.Erros,
			"Cliente pessoa jurídica contribuinte deve ter inscrição estadual")
	})

	t.Run("nota fora do rascunho", func(t *testing.T) {
		nota2, _ := notaComUmItem(t)
		require.NoError(t, nota2.PrepararParaEnvio())

		resultado := v.ValidarDadosObrigatorios(nota2, empresaEmitente(t), clienteDestinatario(t))
		assert.Contains(t, resultado.Erros, "Nota fiscal deve estar em rascunho para validação")
	})
}

func TestValidarItens_Numeracao(t *testing.T) {
	v := notafiscal.NewValidadorNFe()

	item1 := novoItem(t, 1, 1, 10)
	item3 := novoItem(t, 3, 1, 10)

	resultado := v.ValidarItens([]*notafiscal.ItemNotaFiscal{item1, item3})
	assert.False(t, resultado.Valida)
	assert.Contains(t, resultado.Erros,
		"Numeração dos itens deve ser sequencial. Item 2 esperado, mas encontrado 3")
}

func TestValidarItens_SemItens(t *testing.T) {
	v := notafiscal.NewValidadorNFe()

	resultado := v.ValidarItens(nil)
	assert.False(t, resultado.Valida)
	assert.Contains(t, resultado.Erros, "Nota fiscal deve ter pelo menos um item")
}

func TestValidarItem_AvisosDeFaixa(t *testing.T) {
	v := notafiscal.NewValidadorNFe()

	servico, err := notafiscal.NewItemNotaFiscal(
		"nota-1", "produto-2", 1, notafiscal.TipoItemServico,
		"SRV-001", "Consultoria", "00000000", "5933", "HR", 2, 180,
	)
	require.NoError(t, err)
	require.NoError(t, servico.DefinirTributoISSQN(notafiscal.TributoItem{
		CST: "00", Aliquota: 7, ValorBase: 360, ValorTributo: 25.20,
	}))

	resultado := v.ValidarItem(servico, 1)
	assert.True(t, resultado.Valida)
	assert.Contains(t, resultado.Avisos, "Item 1: Alíquota de ISSQN fora da faixa normal (0-5%)")
}

func TestValidarLimites(t *testing.T) {
	v := notafiscal.NewValidadorNFe()

	t.Run("teto da NF-e", func(t *testing.T) {
		nota, err := notafiscal.NewNotaFiscal(
			1, 1, notafiscal.TipoNFe, "e", "c", 1000000000.00, 0, notafiscal.FinalidadeNormal)
		require.NoError(t, err)

		resultado := v.ValidarLimites(nota)
		assert.False(t, resultado.Valida)
	})

	t.Run("teto menor para NFS-e", func(t *testing.T) {
		nota, err := notafiscal.NewNotaFiscal(
			1, 1, notafiscal.TipoNFSe, "e", "c", 100000000.00, 0, notafiscal.FinalidadeNormal)
		require.NoError(t, err)

		resultado := v.ValidarLimites(nota)
		assert.False(t, resultado.Valida)
	})

	t.Run("valor alto gera aviso", func(t *testing.T) {
		nota, err := notafiscal.NewNotaFiscal(
			1, 1, notafiscal.TipoNFe, "e", "c", 150000.00, 0, notafiscal.FinalidadeNormal)
		require.NoError(t, err)

		resultado := v.ValidarLimites(nota)
		assert.True(t, resultado.Valida)
		assert.Contains(t, resultado.Avisos, "Nota fiscal com valor alto - verificar se está correto")
	})

	t.Run("textos longos", func(t *testing.T) {
		nota, err := notafiscal.NewNotaFiscal(
			1, 1, notafiscal.TipoNFe, "e", "c", 100.00, 0, notafiscal.FinalidadeNormal)
		require.NoError(t, err)

		longo := make([]byte, 5001)
		for i := range longo {
			longo[i] = 'x'
		}
		require.NoError(t, nota.AtualizarObservacoes(string(longo)))

		resultado := v.ValidarLimites(nota)
		assert.False(t, resultado.Valida)
	})
}

func TestValidarCoerencia_Tolerancia(t *testing.T) {
	v := notafiscal.NewValidadorNFe()

	t.Run("diferença dentro da tolerância", func(t *testing.T) {
		nota, err := notafiscal.NewNotaFiscal(
			1, 1, notafiscal.TipoNFe, "e", "c", 500.02, 0, notafiscal.FinalidadeNormal)
		require.NoError(t, err)

		item, err := notafiscal.NewItemNotaFiscal(
			nota.ID, "p", 1, notafiscal.TipoItemProduto,
			"C", "D", "10063021", "5102", "UN", 10, 50.00)
		require.NoError(t, err)

		resultado := v.ValidarCoerencia(nota, []*notafiscal.ItemNotaFiscal{item})
		assert.True(t, resultado.Valida)
	})

	t.Run("diferença acima da tolerância", func(t *testing.T) {
		nota, err := notafiscal.NewNotaFiscal(
			1, 1, notafiscal.TipoNFe, "e", "c", 500.05, 0, notafiscal.FinalidadeNormal)
		require.NoError(t, err)

		item, err := notafiscal.NewItemNotaFiscal(
			nota.ID, "p", 1, notafiscal.TipoItemProduto,
			"C", "D", "10063021", "5102", "UN", 10, 50.00)
		require.NoError(t, err)

		resultado := v.ValidarCoerencia(nota, []*notafiscal.ItemNotaFiscal{item})
		assert.False(t, resultado.Valida)
	})

	t.Run("item de outra nota", func(t *testing.T) {
		nota, err := notafiscal.NewNotaFiscal(
			1, 1, notafiscal.TipoNFe, "e", "c", 500.00, 0, notafiscal.FinalidadeNormal)
		require.NoError(t, err)

		item, err := notafiscal.NewItemNotaFiscal(
			"outra-nota", "p", 1, notafiscal.TipoItemProduto,
			"C", "D", "10063021", "5102", "UN", 10, 50.00)
		require.NoError(t, err)

		resultado := v.ValidarCoerencia(nota, []*notafiscal.ItemNotaFiscal{item})
		assert.False(t, resultado.Valida)
		assert.Contains(t, resultado.Erros, "1 item(ns) não pertencem a esta nota fiscal")
	})
}

func TestValidarParaEnvio_AgregaTodosOsGrupos(t *testing.T) {
	v := notafiscal.NewValidadorNFe()

	// nota inconsistente em vários grupos ao mesmo tempo
	nota, err := notafiscal.NewNotaFiscal(
		1, 1, notafiscal.TipoNFe, "e", "c", 500.05, 0, notafiscal.FinalidadeNormal)
	require.NoError(t, err)

	empresa := empresaEmitente(t)
	empresa.Deactivate()

	item, err := notafiscal.NewItemNotaFiscal(
		"outra-nota", "p", 2, notafiscal.TipoItemProduto,
		"C", "D", "10063021", "5102", "UN", 10, 50.00)
	require.NoError(t, err)
	require.NoError(t, nota.AdicionarItem(item.ID))

	resultado := v.ValidarParaEnvio(nota, empresa, clienteDestinatario(t), []*notafiscal.ItemNotaFiscal{item})

	assert.False(t, resultado.Valida)
	// um grupo não encerra os demais: erros de empresa, numeração e coerência aparecem juntos
	assert.Contains(t, resultado.Erros, "Empresa deve estar ativa para emissão de NF-e")
	assert.Contains(t, resultado.Erros,
		"Numeração dos itens deve ser sequencial. Item 1 esperado, mas encontrado 2")
	assert.Contains(t, resultado.Erros, "1 item(ns) não pertencem a esta nota fiscal")
}
