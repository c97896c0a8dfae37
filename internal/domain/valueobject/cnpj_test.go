package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
)

// gerarDVsCNPJ calcula os dois dígitos verificadores para uma base de 12
// dígitos, usando o mesmo algoritmo oficial (módulo 11 com pesos cíclicos).
func gerarDVsCNPJ(base string) string {
	digito := func(digitos string, pesoInicial int) byte {
		soma := 0
		peso := pesoInicial
		for i := 0; i < len(digitos); i++ {
			soma += int(digitos[i]-'0') * peso
			peso--
			if peso < 2 {
				peso = 9
			}
		}
		resto := soma % 11
		if resto < 2 {
			return '0'
		}
		return byte('0' + 11 - resto)
	}

	com13 := base + string(digito(base, 5))
	return com13 + string(digito(com13, 6))
}

func TestNewCNPJ_Valido(t *testing.T) {
	cnpj, err := valueobject.NewCNPJ("11.444.777/0001-61")
	require.NoError(t, err)
	assert.Equal(t, "11444777000161", cnpj.Value())
	assert.Equal(t, "11.444.777/0001-61", cnpj.Formatted())
}

func TestNewCNPJ_DigitosGerados(t *testing.T) {
	// Para qualquer base com dígitos verificadores corretos a construção
	// deve funcionar e a formatação deve normalizar para os mesmos dígitos.
	bases := []string{
		"112223330001",
		"456789120001",
		"990001112223",
		"080542120001",
	}

	for _, base := range bases {
		completo := gerarDVsCNPJ(base)
		cnpj, err := valueobject.NewCNPJ(completo)
		require.NoError(t, err, "CNPJ %s deveria ser válido", completo)

		renormalizado, err := valueobject.NewCNPJ(cnpj.Formatted())
		require.NoError(t, err)
		assert.True(t, cnpj.Equals(renormalizado))
	}
}

func TestNewCNPJ_Invalido(t *testing.T) {
	casos := []struct {
		nome string
		raw  string
	}{
		{"vazio", ""},
		{"curto", "1144477700016"},
		{"longo", "114447770001611"},
		{"digito verificador errado", "11444777000162"},
		{"todos os digitos iguais", "11111111111111"},
		{"letras", "ab.cde.fgh/ijkl-mn"},
	}

	for _, caso := range casos {
		t.Run(caso.nome, func(t *testing.T) {
			_, err := valueobject.NewCNPJ(caso.raw)
			assert.ErrorIs(t, err, valueobject.ErrCNPJInvalido)
		})
	}
}

func TestCNPJ_Equals(t *testing.T) {
	a, err := valueobject.NewCNPJ("11444777000161")
	require.NoError(t, err)
	b, err := valueobject.NewCNPJ("11.444.777/0001-61")
	require.NoError(t, err)

	assert.True(t, a.Equals(b), "mesmos dígitos com formatações diferentes devem ser iguais")
}
