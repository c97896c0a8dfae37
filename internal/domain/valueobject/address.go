package valueobject

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLogradouroObrigatorio = errors.New("logradouro é obrigatório")
	ErrNumeroObrigatorio     = errors.New("número é obrigatório")
	ErrBairroObrigatorio     = errors.New("bairro é obrigatório")
	ErrCidadeObrigatoria     = errors.New("cidade é obrigatória")
	ErrUFInvalida            = errors.New("UF inválida")
	ErrCEPInvalido           = errors.New("CEP inválido - deve ter 8 dígitos")
	ErrCodigoIbgeInvalido    = errors.New("código IBGE inválido - deve ter 7 dígitos")
)

// Address representa um endereço brasileiro imutável, usado tanto pela
// empresa emitente quanto pelo cliente destinatário.
type Address struct {
	street       string
	number       string
	complement   string
	neighborhood string
	city         string
	state        string
	zipCode      string
	country      string
	codigoIbge   string
}

// NewAddress cria um endereço validado. O CEP é normalizado para 8 dígitos
// e a UF deve ser uma das 27 unidades federativas. O código IBGE do
// município é opcional, mas quando presente deve ter 7 dígitos.
func NewAddress(street, number, complement, neighborhood, city, state, zipCode, country, codigoIbge string) (Address, error) {
	if strings.TrimSpace(street) == "" {
		return Address{}, ErrLogradouroObrigatorio
	}
	if strings.TrimSpace(number) == "" {
		return Address{}, ErrNumeroObrigatorio
	}
	if strings.TrimSpace(neighborhood) == "" {
		return Address{}, ErrBairroObrigatorio
	}
	if strings.TrimSpace(city) == "" {
		return Address{}, ErrCidadeObrigatoria
	}
	if !UFValida(state) {
		return Address{}, ErrUFInvalida
	}

	cep := onlyDigits(zipCode)
	if len(cep) != 8 {
		return Address{}, ErrCEPInvalido
	}

	ibge := onlyDigits(codigoIbge)
	if codigoIbge != "" && len(ibge) != 7 {
		return Address{}, ErrCodigoIbgeInvalido
	}

	if strings.TrimSpace(country) == "" {
		country = "Brasil"
	}

	return Address{
		street:       street,
		number:       number,
		complement:   complement,
		neighborhood: neighborhood,
		city:         city,
		state:        strings.ToUpper(strings.TrimSpace(state)),
		zipCode:      cep,
		country:      country,
		codigoIbge:   ibge,
	}, nil
}

func (a Address) Street() string       { return a.street }
func (a Address) Number() string       { return a.number }
func (a Address) Complement() string   { return a.complement }
func (a Address) Neighborhood() string { return a.neighborhood }
func (a Address) City() string         { return a.city }
func (a Address) State() string        { return a.state }
func (a Address) ZipCode() string      { return a.zipCode }
func (a Address) Country() string      { return a.country }
func (a Address) CodigoIbge() string   { return a.codigoIbge }

// FormattedZipCode retorna o CEP no formato 00000-000
func (a Address) FormattedZipCode() string {
	if len(a.zipCode) != 8 {
		return a.zipCode
	}
	return a.zipCode[0:5] + "-" + a.zipCode[5:8]
}

// FullAddress retorna o endereço completo em uma única linha
func (a Address) FullAddress() string {
	complement := ""
	if a.complement != "" {
		complement = ", " + a.complement
	}
	return fmt.Sprintf("%s, %s%s, %s, %s/%s, %s",
		a.street, a.number, complement, a.neighborhood, a.city, a.state, a.FormattedZipCode())
}

// Equals compara todos os campos do endereço
func (a Address) Equals(other Address) bool {
	return a == other
}

// IsZero indica se o endereço não foi inicializado
func (a Address) IsZero() bool {
	return a == Address{}
}
