package dto

import (
	"time"

	"github.com/GuiEstevamCorrea/AxFisco/internal/application/usecase"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/customer"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
)

// AddressRequest representa a requisição de endereço
type AddressRequest struct {
	Street       string `json:"street" binding:"required"`
	Number       string `json:"number" binding:"required"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood" binding:"required"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	ZipCode      string `json:"zip_code" binding:"required"`
	Country      string `json:"country"`
	CodigoIbge   string `json:"codigo_ibge"`
}

// AddressResponse representa a resposta de endereço
type AddressResponse struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
	CodigoIbge   string `json:"codigo_ibge,omitempty"`
}

// CustomerRequest representa a requisição de cadastro de cliente
type CustomerRequest struct {
	Name              string          `json:"name" binding:"required"`
	Email             string          `json:"email" binding:"required,email"`
	Phone             string          `json:"phone"`
	Document          string          `json:"document" binding:"required"`
	IndicadorIE       string          `json:"indicador_ie" binding:"required"`
	StateRegistration string          `json:"state_registration"`
	Address           *AddressRequest `json:"address"`
}

// CustomerUpdateRequest representa a requisição de atualização de cliente
type CustomerUpdateRequest struct {
	Name    string          `json:"name" binding:"required"`
	Email   string          `json:"email" binding:"required,email"`
	Phone   string          `json:"phone"`
	Address *AddressRequest `json:"address"`
}

// CustomerResponse representa a resposta de cliente
type CustomerResponse struct {
	ID                    string           `json:"id"`
	Name                  string           `json:"name"`
	Email                 string           `json:"email"`
	Phone                 string           `json:"phone,omitempty"`
	Document              string           `json:"document"`
	DocumentFormatted     string           `json:"document_formatted"`
	CustomerType          string           `json:"customer_type"`
	IndicadorIE           string           `json:"indicador_ie"`
	StateRegistration     string           `json:"state_registration,omitempty"`
	MunicipalRegistration string           `json:"municipal_registration,omitempty"`
	Address               *AddressResponse `json:"address,omitempty"`
	IsActive              bool             `json:"is_active"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

// CustomerListResponse representa a resposta de lista de clientes
type CustomerListResponse struct {
	Items      []CustomerResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// ToCreateCustomerInput converte a requisição para a entrada do caso de uso
func (r CustomerRequest) ToCreateCustomerInput() usecase.CreateCustomerInput {
	input := usecase.CreateCustomerInput{
		Name:              r.Name,
		Email:             r.Email,
		Phone:             r.Phone,
		Document:          r.Document,
		IndicadorIE:       r.IndicadorIE,
		StateRegistration: r.StateRegistration,
	}
	if r.Address != nil {
		input.Address = &usecase.AddressInput{
			Street:       r.Address.Street,
			Number:       r.Address.Number,
			Complement:   r.Address.Complement,
			Neighborhood: r.Address.Neighborhood,
			City:         r.Address.City,
			State:        r.Address.State,
			ZipCode:      r.Address.ZipCode,
			Country:      r.Address.Country,
			CodigoIbge:   r.Address.CodigoIbge,
		}
	}
	return input
}

// ToAddressResponse converte um endereço do domínio para DTO
func ToAddressResponse(a valueobject.Address) *AddressResponse {
	if a.IsZero() {
		return nil
	}
	return &AddressResponse{
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
}

// ToCustomerResponse converte um cliente do domínio para DTO
func ToCustomerResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:                    c.ID,
		Name:                  c.Name,
		Email:                 c.Email,
		Phone:                 c.Phone,
		Document:              c.Document.Value(),
		DocumentFormatted:     c.Document.Formatted(),
		CustomerType:          string(c.CustomerType),
		IndicadorIE:           string(c.IndicadorIE),
		StateRegistration:     c.StateRegistration,
		MunicipalRegistration: c.MunicipalRegistration,
		Address:               ToAddressResponse(c.Address),
		IsActive:              c.IsActive,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}

// ToCustomerListResponse converte uma lista de clientes do domínio para DTO
func ToCustomerListResponse(customers []*customer.Customer, total, page, pageSize int) *CustomerListResponse {
	items := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		items[i] = *ToCustomerResponse(c)
	}

	return &CustomerListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}
}

// calculateTotalPages calcula o número total de páginas com base no total de registros e no tamanho da página
func calculateTotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}

	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return totalPages
}
