package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
)

// gerarDVsCPF calcula os dois dígitos verificadores para uma base de 9
// dígitos, com os pesos decrescentes 10..2 e 11..2.
func gerarDVsCPF(base string) string {
	digito := func(digitos string, pesoInicial int) byte {
		soma := 0
		for i := 0; i < len(digitos); i++ {
			soma += int(digitos[i]-'0') * (pesoInicial - i)
		}
		resto := (soma * 10) % 11
		if resto == 10 || resto == 11 {
			resto = 0
		}
		return byte('0' + resto)
	}

	com10 := base + string(digito(base, 10))
	return com10 + string(digito(com10, 11))
}

func TestNewCPF_Valido(t *testing.T) {
	cpf, err := valueobject.NewCPF("529.982.247-25")
	require.NoError(t, err)
	assert.Equal(t, "52998224725", cpf.Value())
	assert.Equal(t, "529.982.247-25", cpf.Formatted())
}

func TestNewCPF_DigitosGerados(t *testing.T) {
	bases := []string{
		"123456789",
		"908765432",
		"004563217",
		"876509123",
	}

	for _, base := range bases {
		completo := gerarDVsCPF(base)
		cpf, err := valueobject.NewCPF(completo)
		require.NoError(t, err, "CPF %s deveria ser válido", completo)

		renormalizado, err := valueobject.NewCPF(cpf.Formatted())
		require.NoError(t, err)
		assert.True(t, cpf.Equals(renormalizado))
	}
}

func TestNewCPF_Invalido(t *testing.T) {
	casos := []struct {
		nome string
		raw  string
	}{
		{"vazio", ""},
		{"curto", "5299822472"},
		{"longo", "529982247255"},
		{"digito verificador errado", "52998224726"},
		{"todos os digitos iguais", "00000000000"},
		{"todos os digitos iguais 9", "99999999999"},
	}

	for _, caso := range casos {
		t.Run(caso.nome, func(t *testing.T) {
			_, err := valueobject.NewCPF(caso.raw)
			assert.ErrorIs(t, err, valueobject.ErrCPFInvalido)
		})
	}
}
