package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
)

func novoEnderecoValido(t *testing.T) valueobject.Address {
	t.Helper()
	addr, err := valueobject.NewAddress(
		"Avenida Paulista", "1578", "Conjunto 402", "Bela Vista",
		"São Paulo", "SP", "01310-200", "Brasil", "3550308")
	require.NoError(t, err)
	return addr
}

func TestNewAddress_Valido(t *testing.T) {
	addr := novoEnderecoValido(t)

	assert.Equal(t, "01310200", addr.ZipCode())
	assert.Equal(t, "01310-200", addr.FormattedZipCode())
	assert.Equal(t, "SP", addr.State())
	assert.Equal(t, "3550308", addr.CodigoIbge())
	assert.Equal(t,
		"Avenida Paulista, 1578, Conjunto 402, Bela Vista, São Paulo/SP, 01310-200",
		addr.FullAddress())
}

func TestNewAddress_PaisPadrao(t *testing.T) {
	addr, err := valueobject.NewAddress(
		"Rua das Flores", "10", "", "Centro", "Curitiba", "PR", "80010000", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Brasil", addr.Country())
}

func TestNewAddress_CamposObrigatorios(t *testing.T) {
	casos := []struct {
		nome    string
		montar  func() (valueobject.Address, error)
		esperar error
	}{
		{"sem logradouro", func() (valueobject.Address, error) {
			return valueobject.NewAddress("", "10", "", "Centro", "Curitiba", "PR", "80010000", "", "")
		}, valueobject.ErrLogradouroObrigatorio},
		{"sem numero", func() (valueobject.Address, error) {
			return valueobject.NewAddress("Rua A", "", "", "Centro", "Curitiba", "PR", "80010000", "", "")
		}, valueobject.ErrNumeroObrigatorio},
		{"sem bairro", func() (valueobject.Address, error) {
			return valueobject.NewAddress("Rua A", "10", "", "", "Curitiba", "PR", "80010000", "", "")
		}, valueobject.ErrBairroObrigatorio},
		{"sem cidade", func() (valueobject.Address, error) {
			return valueobject.NewAddress("Rua A", "10", "", "Centro", "", "PR", "80010000", "", "")
		}, valueobject.ErrCidadeObrigatoria},
		{"UF inexistente", func() (valueobject.Address, error) {
			return valueobject.NewAddress("Rua A", "10", "", "Centro", "Curitiba", "XX", "80010000", "", "")
		}, valueobject.ErrUFInvalida},
		{"CEP curto", func() (valueobject.Address, error) {
			return valueobject.NewAddress("Rua A", "10", "", "Centro", "Curitiba", "PR", "8001000", "", "")
		}, valueobject.ErrCEPInvalido},
		{"codigo IBGE curto", func() (valueobject.Address, error) {
			return valueobject.NewAddress("Rua A", "10", "", "Centro", "Curitiba", "PR", "80010000", "", "41069")
		}, valueobject.ErrCodigoIbgeInvalido},
	}

	for _, caso := range casos {
		t.Run(caso.nome, func(t *testing.T) {
			_, err := caso.montar()
			assert.ErrorIs(t, err, caso.esperar)
		})
	}
}

func TestAddress_Equals(t *testing.T) {
	a := novoEnderecoValido(t)
	b := novoEnderecoValido(t)
	assert.True(t, a.Equals(b))

	c, err := valueobject.NewAddress(
		"Avenida Paulista", "1578", "Conjunto 402", "Bela Vista",
		"São Paulo", "SP", "01310-200", "Brasil", "")
	require.NoError(t, err)
	assert.False(t, a.Equals(c), "endereços com código IBGE diferente não são iguais")
}

func TestUF_Codigos(t *testing.T) {
	codigo, err := valueobject.CodigoUF("sp")
	require.NoError(t, err)
	assert.Equal(t, "35", codigo)

	_, err = valueobject.CodigoUF("ZZ")
	assert.Error(t, err)

	assert.True(t, valueobject.UFValida("RJ"))
	assert.False(t, valueobject.UFValida(""))
}
