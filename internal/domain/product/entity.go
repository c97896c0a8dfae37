package product

import (
	"errors"
	"regexp"
	"strings"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/entity"
)

var (
	ErrNomeObrigatorio   = errors.New("nome do produto é obrigatório")
	ErrCodigoObrigatorio = errors.New("código do produto é obrigatório")
	ErrNCMInvalido       = errors.New("NCM deve ter 8 dígitos")
	ErrCFOPInvalido      = errors.New("CFOP deve ter 4 dígitos")
	ErrUnidadeObrigatoria = errors.New("unidade de medida é obrigatória")
	ErrPrecoInvalido     = errors.New("preço deve ser maior que zero")
	ErrTipoInvalido      = errors.New("tipo de produto inválido")
)

// ProductType define se o item comercializado é mercadoria ou serviço
type ProductType string

const (
	TypeProduct ProductType = "PRODUCT"
	TypeService ProductType = "SERVICE"
)

var (
	ncmRegexp  = regexp.MustCompile(`^\d{8}$`)
	cfopRegexp = regexp.MustCompile(`^\d{4}$`)
)

// TaxInfo agrupa as alíquotas e os códigos de situação tributária
// padrão do produto, usados como base no cálculo dos tributos da nota
type TaxInfo struct {
	ICMSRate   float64 `json:"icms_rate"`
	IPIRate    float64 `json:"ipi_rate"`
	PISRate    float64 `json:"pis_rate"`
	COFINSRate float64 `json:"cofins_rate"`
	ISSRate    float64 `json:"iss_rate,omitempty"`
	CSTICMS    string  `json:"cst_icms"`
	CSTIPI     string  `json:"cst_ipi"`
	CSTPIS     string  `json:"cst_pis"`
	CSTCOFINS  string  `json:"cst_cofins"`
}

// Product representa um produto ou serviço comercializado pela empresa
type Product struct {
	entity.Base
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	Code          string      `json:"code"`
	NCM           string      `json:"ncm"`
	CFOP          string      `json:"cfop"`
	UnitOfMeasure string      `json:"unit_of_measure"`
	UnitPrice     float64     `json:"unit_price"`
	ProductType   ProductType `json:"product_type"`
	TaxInfo       TaxInfo     `json:"tax_info"`
	IsActive      bool        `json:"is_active"`
}

// NewProduct cria um novo produto
func NewProduct(
	name string,
	description string,
	code string,
	ncm string,
	cfop string,
	unitOfMeasure string,
	unitPrice float64,
	productType ProductType,
	taxInfo TaxInfo,
) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNomeObrigatorio
	}
	if strings.TrimSpace(code) == "" {
		return nil, ErrCodigoObrigatorio
	}
	if !ncmRegexp.MatchString(ncm) {
		return nil, ErrNCMInvalido
	}
	if !cfopRegexp.MatchString(cfop) {
		return nil, ErrCFOPInvalido
	}
	if strings.TrimSpace(unitOfMeasure) == "" {
		return nil, ErrUnidadeObrigatoria
	}
	if unitPrice <= 0 {
		return nil, ErrPrecoInvalido
	}
	if productType != TypeProduct && productType != TypeService {
		return nil, ErrTipoInvalido
	}

	return &Product{
		Base:          entity.NewBase("product"),
		Name:          name,
		Description:   description,
		Code:          code,
		NCM:           ncm,
		CFOP:          cfop,
		UnitOfMeasure: unitOfMeasure,
		UnitPrice:     unitPrice,
		ProductType:   productType,
		TaxInfo:       taxInfo,
		IsActive:      true,
	}, nil
}

// UpdateInfo atualiza os dados básicos do produto
func (p *Product) UpdateInfo(name, description string, unitPrice float64) error {
	if strings.TrimSpace(name) == "" {
		return ErrNomeObrigatorio
	}
	if unitPrice <= 0 {
		return ErrPrecoInvalido
	}

	p.Name = name
	p.Description = description
	p.UnitPrice = unitPrice
	p.Touch()
	return nil
}

// UpdateTaxInfo atualiza o perfil tributário do produto
func (p *Product) UpdateTaxInfo(taxInfo TaxInfo) {
	p.TaxInfo = taxInfo
	p.Touch()
}

// UpdatePrice atualiza o preço unitário do produto
func (p *Product) UpdatePrice(unitPrice float64) error {
	if unitPrice <= 0 {
		return ErrPrecoInvalido
	}
	p.UnitPrice = unitPrice
	p.Touch()
	return nil
}

// Activate ativa o produto
func (p *Product) Activate() {
	p.IsActive = true
	p.Touch()
}

// Deactivate desativa o produto
func (p *Product) Deactivate() {
	p.IsActive = false
	p.Touch()
}

// IsService indica se o produto representa um serviço
func (p *Product) IsService() bool {
	return p.ProductType == TypeService
}

// CalculateTotalPrice calcula o preço total para a quantidade informada
func (p *Product) CalculateTotalPrice(quantity float64) float64 {
	return p.UnitPrice * quantity
}
