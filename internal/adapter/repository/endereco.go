package repository

import (
	"encoding/json"
	"fmt"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
)

// enderecoRow é a forma serializável do endereço para a coluna JSONB
type enderecoRow struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country,omitempty"`
	CodigoIbge   string `json:"codigo_ibge,omitempty"`
}

// enderecoParaJSON serializa o endereço para gravação. Endereço vazio
// vira NULL na coluna.
func enderecoParaJSON(a valueobject.Address) ([]byte, error) {
	if a.IsZero() {
		return nil, nil
	}
	row := enderecoRow{
		Street:       a.Street(),
		Number:       a.Number(),
		Complement:   a.Complement(),
		Neighborhood: a.Neighborhood(),
		City:         a.City(),
		State:        a.State(),
		ZipCode:      a.ZipCode(),
		Country:      a.Country(),
		CodigoIbge:   a.CodigoIbge(),
	}
	data, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter endereço para JSON: %w", err)
	}
	return data, nil
}

// enderecoDeJSON reconstrói o endereço lido do banco. Coluna NULL
// resulta em endereço vazio.
func enderecoDeJSON(data []byte) (valueobject.Address, error) {
	if len(data) == 0 {
		return valueobject.Address{}, nil
	}

	var row enderecoRow
	if err := json.Unmarshal(data, &row); err != nil {
		return valueobject.Address{}, fmt.Errorf("erro ao converter endereço: %w", err)
	}

	addr, err := valueobject.NewAddress(
		row.Street, row.Number, row.Complement, row.Neighborhood,
		row.City, row.State, row.ZipCode, row.Country, row.CodigoIbge)
	if err != nil {
		return valueobject.Address{}, fmt.Errorf("endereço inválido no banco: %w", err)
	}
	return addr, nil
}
