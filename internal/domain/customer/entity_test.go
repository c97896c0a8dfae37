package customer_test

import (
	"testing"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/customer"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enderecoValido(t *testing.T) valueobject.Address {
	t.Helper()
	addr, err := valueobject.NewAddress(
		"Rua das Laranjeiras", "100", "", "Centro",
		"São Paulo", "SP", "01310100", "", "3550308",
	)
	require.NoError(t, err)
	return addr
}

func documentoPJ(t *testing.T) customer.Documento {
	t.Helper()
	cnpj, err := valueobject.NewCNPJ("11444777000161")
	require.NoError(t, err)
	return customer.NewDocumentoCNPJ(cnpj)
}

func documentoPF(t *testing.T) customer.Documento {
	t.Helper()
	cpf, err := valueobject.NewCPF("52998224725")
	require.NoError(t, err)
	return customer.NewDocumentoCPF(cpf)
}

func TestNewCustomer_PessoaJuridicaContribuinte(t *testing.T) {
	c, err := customer.NewCustomer(
		"Distribuidora Alfa Ltda",
		"fiscal@alfa.com.br",
		documentoPJ(t),
		customer.IndicadorContribuinte,
		"11999990000",
		enderecoValido(t),
		"110042490114",
	)
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.True(t, c.IsActive)
	assert.True(t, c.IsLegalEntity())
	assert.False(t, c.IsIndividual())
	assert.True(t, c.NecessitaIE())
	assert.True(t, c.PodeSerDestinatarioNFe())
	assert.Equal(t, "11444777000161", c.Document.Value())
}

func TestNewCustomer_PessoaFisica(t *testing.T) {
	c, err := customer.NewCustomer(
		"Maria da Silva",
		"maria@exemplo.com",
		documentoPF(t),
		customer.IndicadorNaoContribuinte,
		"",
		valueobject.Address{},
		"",
	)
	require.NoError(t, err)

	assert.True(t, c.IsIndividual())
	assert.False(t, c.NecessitaIE())
	// sem endereço não pode ser destinatário de NF-e
	assert.False(t, c.PodeSerDestinatarioNFe())
}

func TestNewCustomer_Validacoes(t *testing.T) {
	tests := []struct {
		nome        string
		name        string
		email       string
		documento   customer.Documento
		indicador   customer.IndicadorIE
		inscricaoIE string
		wantErr     error
	}{
		{
			nome:      "nome vazio",
			name:      "  ",
			email:     "a@b.com",
			documento: documentoPF(t),
			indicador: customer.IndicadorNaoContribuinte,
			wantErr:   customer.ErrNomeObrigatorio,
		},
		{
			nome:      "email inválido",
			name:      "Cliente",
			email:     "sem-arroba",
			documento: documentoPF(t),
			indicador: customer.IndicadorNaoContribuinte,
			wantErr:   customer.ErrEmailInvalido,
		},
		{
			nome:      "documento ausente",
			name:      "Cliente",
			email:     "a@b.com",
			documento: customer.Documento{},
			indicador: customer.IndicadorNaoContribuinte,
			wantErr:   customer.ErrDocumentoObrigatorio,
		},
		{
			nome:      "indicador inválido",
			name:      "Cliente",
			email:     "a@b.com",
			documento: documentoPF(t),
			indicador: customer.IndicadorIE("QUALQUER"),
			wantErr:   customer.ErrIndicadorIEInvalido,
		},
		{
			nome:      "PJ contribuinte sem inscrição estadual",
			name:      "Empresa Beta",
			email:     "beta@exemplo.com",
			documento: documentoPJ(t),
			indicador: customer.IndicadorContribuinte,
			wantErr:   customer.ErrContribuinteSemIE,
		},
	}

	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			_, err := customer.NewCustomer(
				tt.name, tt.email, tt.documento, tt.indicador,
				"", valueobject.Address{}, tt.inscricaoIE,
			)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCustomer_DefinirInscricaoEstadual(t *testing.T) {
	c, err := customer.NewCustomer(
		"Empresa Gama", "gama@exemplo.com", documentoPJ(t),
		customer.IndicadorNaoContribuinte, "", enderecoValido(t), "",
	)
	require.NoError(t, err)

	err = c.DefinirInscricaoEstadual("  ")
	assert.ErrorIs(t, err, customer.ErrInscricaoEstadualObrigatoria)

	// informar inscrição estadual promove o cliente a contribuinte
	require.NoError(t, c.DefinirInscricaoEstadual("110042490114"))
	assert.Equal(t, customer.IndicadorContribuinte, c.IndicadorIE)
	assert.True(t, c.NecessitaIE())
}

func TestCustomer_MarcarIsento(t *testing.T) {
	c, err := customer.NewCustomer(
		"Empresa Delta", "delta@exemplo.com", documentoPJ(t),
		customer.IndicadorContribuinte, "", enderecoValido(t), "110042490114",
	)
	require.NoError(t, err)

	c.MarcarIsento()
	assert.Equal(t, customer.IndicadorIsento, c.IndicadorIE)
	assert.Empty(t, c.StateRegistration)
	assert.False(t, c.NecessitaIE())
}

func TestCustomer_AtivacaoDesativacao(t *testing.T) {
	c, err := customer.NewCustomer(
		"Cliente PF", "pf@exemplo.com", documentoPF(t),
		customer.IndicadorNaoContribuinte, "", valueobject.Address{}, "",
	)
	require.NoError(t, err)

	c.Deactivate()
	assert.False(t, c.IsActive)

	c.Activate()
	assert.True(t, c.IsActive)
}

func TestDocumento_Formatted(t *testing.T) {
	assert.Equal(t, "11.444.777/0001-61", documentoPJ(t).Formatted())
	assert.Equal(t, "529.982.247-25", documentoPF(t).Formatted())
}
