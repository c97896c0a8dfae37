package valueobject

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCNPJInvalido = errors.New("CNPJ inválido")
)

// CNPJ representa um Cadastro Nacional de Pessoa Jurídica validado.
// O valor interno guarda apenas os 14 dígitos, sem formatação.
type CNPJ struct {
	value string
}

// NewCNPJ cria um CNPJ a partir de uma string com ou sem formatação.
// A construção falha se os dígitos verificadores não conferirem.
func NewCNPJ(raw string) (CNPJ, error) {
	clean := onlyDigits(raw)
	if !cnpjValido(clean) {
		return CNPJ{}, ErrCNPJInvalido
	}
	return CNPJ{value: clean}, nil
}

// Value retorna os 14 dígitos do CNPJ sem formatação
func (c CNPJ) Value() string {
	return c.value
}

// Formatted retorna o CNPJ no formato 00.000.000/0000-00
func (c CNPJ) Formatted() string {
	if len(c.value) != 14 {
		return c.value
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s",
		c.value[0:2], c.value[2:5], c.value[5:8], c.value[8:12], c.value[12:14])
}

// Equals compara dois CNPJs pelos dígitos normalizados
func (c CNPJ) Equals(other CNPJ) bool {
	return c.value == other.value
}

// IsZero indica se o CNPJ não foi inicializado
func (c CNPJ) IsZero() bool {
	return c.value == ""
}

func (c CNPJ) String() string {
	return c.value
}

func cnpjValido(cnpj string) bool {
	if len(cnpj) != 14 {
		return false
	}
	if allSameDigits(cnpj) {
		return false
	}

	// Primeiro dígito verificador: pesos 5,4,3,2,9,8,7,6,5,4,3,2
	soma := 0
	pos := 5
	for i := 0; i < 12; i++ {
		soma += int(cnpj[i]-'0') * pos
		pos--
		if pos < 2 {
			pos = 9
		}
	}
	dv1 := 0
	if resto := soma % 11; resto >= 2 {
		dv1 = 11 - resto
	}
	if dv1 != int(cnpj[12]-'0') {
		return false
	}

	// Segundo dígito verificador: pesos 6,5,4,3,2,9,8,7,6,5,4,3,2
	soma = 0
	pos = 6
	for i := 0; i < 13; i++ {
		soma += int(cnpj[i]-'0') * pos
		pos--
		if pos < 2 {
			pos = 9
		}
	}
	dv2 := 0
	if resto := soma % 11; resto >= 2 {
		dv2 = 11 - resto
	}
	return dv2 == int(cnpj[13]-'0')
}

// onlyDigits remove tudo que não for dígito decimal
func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// allSameDigits verifica se todos os dígitos da string são iguais
func allSameDigits(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return len(s) > 0
}
