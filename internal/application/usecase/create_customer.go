package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/customer"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
)

var ErrClienteJaCadastrado = errors.New("já existe cliente cadastrado com este documento")

// CreateCustomerInput agrega os dados de cadastro de um cliente
type CreateCustomerInput struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone,omitempty"`
	Document          string `json:"document"`
	IndicadorIE       string `json:"indicador_ie"`
	StateRegistration string `json:"state_registration,omitempty"`
	Address           *AddressInput `json:"address,omitempty"`
}

// AddressInput agrega os campos de endereço recebidos no cadastro
type AddressInput struct {
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

// CreateCustomerUseCase cadastra um novo cliente destinatário
type CreateCustomerUseCase struct {
	customerRepo customer.Repository
	logger       logger.Logger
}

// NewCreateCustomerUseCase cria o caso de uso de cadastro de cliente
func NewCreateCustomerUseCase(customerRepo customer.Repository, log logger.Logger) *CreateCustomerUseCase {
	return &CreateCustomerUseCase{customerRepo: customerRepo, logger: log}
}

// Execute valida o documento, monta o cliente e persiste
func (uc *CreateCustomerUseCase) Execute(ctx context.Context, input CreateCustomerInput) (*customer.Customer, error) {
	documento, err := montarDocumento(input.Document)
	if err != nil {
		return nil, err
	}

	existe, err := uc.customerRepo.ExistsByDocument(ctx, documento.Value())
	if err != nil {
		return nil, fmt.Errorf("erro ao verificar documento: %w", err)
	}
	if existe {
		return nil, ErrClienteJaCadastrado
	}

	var endereco valueobject.Address
	if input.Address != nil {
		endereco, err = valueobject.NewAddress(
			input.Address.Street, input.Address.Number, input.Address.Complement,
			input.Address.Neighborhood, input.Address.City, input.Address.State,
			input.Address.ZipCode, input.Address.Country, input.Address.CodigoIbge,
		)
		if err != nil {
			return nil, err
		}
	}

	cliente, err := customer.NewCustomer(
		input.Name, input.Email, documento,
		customer.IndicadorIE(input.IndicadorIE),
		input.Phone, endereco, input.StateRegistration,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.customerRepo.Create(ctx, cliente); err != nil {
		return nil, fmt.Errorf("erro ao salvar cliente: %w", err)
	}

	uc.logger.Info("cliente cadastrado", "cliente_id", cliente.ID, "documento", documento.Formatted())
	return cliente, nil
}

// montarDocumento decide entre CPF e CNPJ pelo tamanho do documento limpo
func montarDocumento(raw string) (customer.Documento, error) {
	limpo := ""
	for _, c := range raw {
		if c >= '0' && c <= '9' {
			limpo += string(c)
		}
	}

	switch len(limpo) {
	case 11:
		cpf, err := valueobject.NewCPF(limpo)
		if err != nil {
			return customer.Documento{}, err
		}
		return customer.NewDocumentoCPF(cpf), nil
	case 14:
		cnpj, err := valueobject.NewCNPJ(limpo)
		if err != nil {
			return customer.Documento{}, err
		}
		return customer.NewDocumentoCNPJ(cnpj), nil
	}
	return customer.Documento{}, ErrDocumentoInvalido
}
