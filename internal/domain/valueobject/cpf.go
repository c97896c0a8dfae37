package valueobject

import (
	"errors"
	"fmt"
)

var (
	ErrCPFInvalido = errors.New("CPF inválido")
)

// CPF representa um Cadastro de Pessoa Física validado.
// O valor interno guarda apenas os 11 dígitos, sem formatação.
type CPF struct {
	value string
}

// NewCPF cria um CPF a partir de uma string com ou sem formatação.
// A construção falha se os dígitos verificadores não conferirem.
func NewCPF(raw string) (CPF, error) {
	clean := onlyDigits(raw)
	if !cpfValido(clean) {
		return CPF{}, ErrCPFInvalido
	}
	return CPF{value: clean}, nil
}

// Value retorna os 11 dígitos do CPF sem formatação
func (c CPF) Value() string {
	return c.value
}

// Formatted retorna o CPF no formato 000.000.000-00
func (c CPF) Formatted() string {
	if len(c.value) != 11 {
		return c.value
	}
	return fmt.Sprintf("%s.%s.%s-%s",
		c.value[0:3], c.value[3:6], c.value[6:9], c.value[9:11])
}

// Equals compara dois CPFs pelos dígitos normalizados
func (c CPF) Equals(other CPF) bool {
	return c.value == other.value
}

// IsZero indica se o CPF não foi inicializado
func (c CPF) IsZero() bool {
	return c.value == ""
}

func (c CPF) String() string {
	return c.value
}

func cpfValido(cpf string) bool {
	if len(cpf) != 11 {
		return false
	}
	if allSameDigits(cpf) {
		return false
	}

	// Primeiro dígito verificador: pesos 10..2
	soma := 0
	for i := 0; i < 9; i++ {
		soma += int(cpf[i]-'0') * (10 - i)
	}
	resto := (soma * 10) % 11
	if resto == 10 || resto == 11 {
		resto = 0
	}
	if resto != int(cpf[9]-'0') {
		return false
	}

	// Segundo dígito verificador: pesos 11..2
	soma = 0
	for i := 0; i < 10; i++ {
		soma += int(cpf[i]-'0') * (11 - i)
	}
	resto = (soma * 10) % 11
	if resto == 10 || resto == 11 {
		resto = 0
	}
	return resto == int(cpf[10]-'0')
}
