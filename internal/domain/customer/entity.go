package customer

import (
	"errors"
	"regexp"
	"strings"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/entity"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
)

var (
	ErrNomeObrigatorio              = errors.New("nome do cliente é obrigatório")
	ErrEmailInvalido                = errors.New("email inválido")
	ErrDocumentoObrigatorio         = errors.New("documento (CPF ou CNPJ) é obrigatório")
	ErrIndicadorIEInvalido          = errors.New("indicador de inscrição estadual inválido")
	ErrContribuinteSemIE            = errors.New("cliente pessoa jurídica contribuinte deve ter inscrição estadual")
	ErrInscricaoEstadualObrigatoria = errors.New("inscrição estadual não pode ser vazia")
)

// CustomerType define se o cliente é pessoa física ou jurídica
type CustomerType string

const (
	TypeIndividual  CustomerType = "INDIVIDUAL"
	TypeLegalEntity CustomerType = "LEGAL_ENTITY"
)

// IndicadorIE classifica o destinatário quanto à inscrição estadual do ICMS
type IndicadorIE string

const (
	IndicadorContribuinte    IndicadorIE = "CONTRIBUINTE"
	IndicadorIsento          IndicadorIE = "ISENTO"
	IndicadorNaoContribuinte IndicadorIE = "NAO_CONTRIBUINTE"
)

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Documento guarda o CPF ou o CNPJ do cliente; exatamente um dos dois
// está preenchido.
type Documento struct {
	CPF  valueobject.CPF
	CNPJ valueobject.CNPJ
}

// NewDocumentoCPF cria um documento de pessoa física
func NewDocumentoCPF(cpf valueobject.CPF) Documento {
	return Documento{CPF: cpf}
}

// NewDocumentoCNPJ cria um documento de pessoa jurídica
func NewDocumentoCNPJ(cnpj valueobject.CNPJ) Documento {
	return Documento{CNPJ: cnpj}
}

// Value retorna apenas os dígitos do documento
func (d Documento) Value() string {
	if !d.CNPJ.IsZero() {
		return d.CNPJ.Value()
	}
	return d.CPF.Value()
}

// Formatted retorna o documento com a pontuação canônica
func (d Documento) Formatted() string {
	if !d.CNPJ.IsZero() {
		return d.CNPJ.Formatted()
	}
	return d.CPF.Formatted()
}

// IsZero indica se nenhum documento foi informado
func (d Documento) IsZero() bool {
	return d.CPF.IsZero() && d.CNPJ.IsZero()
}

// Customer representa o destinatário de documentos fiscais
type Customer struct {
	entity.Base
	Name                  string              `json:"name"`
	Email                 string              `json:"email"`
	Phone                 string              `json:"phone,omitempty"`
	Document              Documento           `json:"-"`
	CustomerType          CustomerType        `json:"customer_type"`
	Address               valueobject.Address `json:"-"`
	StateRegistration     string              `json:"state_registration,omitempty"`
	MunicipalRegistration string              `json:"municipal_registration,omitempty"`
	IndicadorIE           IndicadorIE         `json:"indicador_ie"`
	IsActive              bool                `json:"is_active"`
}

// NewCustomer cria um novo cliente. Um cliente pessoa jurídica marcado
// como contribuinte precisa informar a inscrição estadual já na criação.
func NewCustomer(
	name string,
	email string,
	document Documento,
	indicadorIE IndicadorIE,
	phone string,
	address valueobject.Address,
	stateRegistration string,
) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNomeObrigatorio
	}
	if !emailRegexp.MatchString(email) {
		return nil, ErrEmailInvalido
	}
	if document.IsZero() {
		return nil, ErrDocumentoObrigatorio
	}
	if !indicadorValido(indicadorIE) {
		return nil, ErrIndicadorIEInvalido
	}

	customerType := TypeIndividual
	if !document.CNPJ.IsZero() {
		customerType = TypeLegalEntity
	}

	if customerType == TypeLegalEntity && indicadorIE == IndicadorContribuinte &&
		strings.TrimSpace(stateRegistration) == "" {
		return nil, ErrContribuinteSemIE
	}

	return &Customer{
		Base:              entity.NewBase("customer"),
		Name:              name,
		Email:             email,
		Phone:             phone,
		Document:          document,
		CustomerType:      customerType,
		Address:           address,
		StateRegistration: stateRegistration,
		IndicadorIE:       indicadorIE,
		IsActive:          true,
	}, nil
}

// UpdateInfo atualiza os dados básicos do cliente
func (c *Customer) UpdateInfo(name, email, phone string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNomeObrigatorio
	}
	if !emailRegexp.MatchString(email) {
		return ErrEmailInvalido
	}

	c.Name = name
	c.Email = email
	c.Phone = phone
	c.Touch()
	return nil
}

// UpdateAddress atualiza o endereço do cliente
func (c *Customer) UpdateAddress(address valueobject.Address) {
	c.Address = address
	c.Touch()
}

// DefinirInscricaoEstadual registra a inscrição estadual do cliente.
// Um cliente não contribuinte passa a ser tratado como contribuinte.
func (c *Customer) DefinirInscricaoEstadual(stateRegistration string) error {
	if strings.TrimSpace(stateRegistration) == "" {
		return ErrInscricaoEstadualObrigatoria
	}

	c.StateRegistration = stateRegistration
	if c.IndicadorIE == IndicadorNaoContribuinte {
		c.IndicadorIE = IndicadorContribuinte
	}
	c.Touch()
	return nil
}

// MarcarIsento marca o cliente como isento de inscrição estadual
func (c *Customer) MarcarIsento() {
	c.IndicadorIE = IndicadorIsento
	c.StateRegistration = ""
	c.Touch()
}

// DefinirInscricaoMunicipal registra a inscrição municipal do cliente
func (c *Customer) DefinirInscricaoMunicipal(municipalRegistration string) {
	c.MunicipalRegistration = municipalRegistration
	c.Touch()
}

// Activate ativa o cliente
func (c *Customer) Activate() {
	c.IsActive = true
	c.Touch()
}

// Deactivate desativa o cliente
func (c *Customer) Deactivate() {
	c.IsActive = false
	c.Touch()
}

// IsLegalEntity indica se o cliente é pessoa jurídica
func (c *Customer) IsLegalEntity() bool {
	return c.CustomerType == TypeLegalEntity
}

// IsIndividual indica se o cliente é pessoa física
func (c *Customer) IsIndividual() bool {
	return c.CustomerType == TypeIndividual
}

// NecessitaIE indica se a validação fiscal exige inscrição estadual:
// pessoa jurídica marcada como contribuinte
func (c *Customer) NecessitaIE() bool {
	return c.IsLegalEntity() && c.IndicadorIE == IndicadorContribuinte
}

// PodeSerDestinatarioNFe verifica se o cliente tem endereço cadastrado
func (c *Customer) PodeSerDestinatarioNFe() bool {
	return !c.Address.IsZero()
}

func indicadorValido(i IndicadorIE) bool {
	switch i {
	case IndicadorContribuinte, IndicadorIsento, IndicadorNaoContribuinte:
		return true
	}
	return false
}
