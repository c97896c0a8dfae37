package dto

import (
	"time"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/product"
)

// TaxInfoRequest representa o perfil tributário informado no cadastro
type TaxInfoRequest struct {
	ICMSRate   float64 `json:"icms_rate"`
	IPIRate    float64 `json:"ipi_rate"`
	PISRate    float64 `json:"pis_rate"`
	COFINSRate float64 `json:"cofins_rate"`
	ISSRate    float64 `json:"iss_rate"`
	CSTICMS    string  `json:"cst_icms"`
	CSTIPI     string  `json:"cst_ipi"`
	CSTPIS     string  `json:"cst_pis"`
	CSTCOFINS  string  `json:"cst_cofins"`
}

// ProductRequest representa a requisição de cadastro de produto
type ProductRequest struct {
	Name          string         `json:"name" binding:"required"`
	Description   string         `json:"description"`
	Code          string         `json:"code" binding:"required"`
	NCM           string         `json:"ncm" binding:"required"`
	CFOP          string         `json:"cfop" binding:"required"`
	UnitOfMeasure string         `json:"unit_of_measure" binding:"required"`
	UnitPrice     float64        `json:"unit_price" binding:"required"`
	ProductType   string         `json:"product_type" binding:"required"`
	TaxInfo       TaxInfoRequest `json:"tax_info"`
}

// ProductUpdateRequest representa a requisição de atualização de produto
type ProductUpdateRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	UnitPrice   float64         `json:"unit_price" binding:"required"`
	TaxInfo     *TaxInfoRequest `json:"tax_info"`
}

// ProductResponse representa a resposta de produto
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Code          string          `json:"code"`
	NCM           string          `json:"ncm"`
	CFOP          string          `json:"cfop"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	UnitPrice     float64         `json:"unit_price"`
	ProductType   string          `json:"product_type"`
	TaxInfo       product.TaxInfo `json:"tax_info"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse representa a resposta de lista de produtos
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// ToTaxInfo converte o perfil tributário da requisição para o domínio
func (r TaxInfoRequest) ToTaxInfo() product.TaxInfo {
	return product.TaxInfo{
		ICMSRate:   r.ICMSRate,
		IPIRate:    r.IPIRate,
		PISRate:    r.PISRate,
		COFINSRate: r.COFINSRate,
		ISSRate:    r.ISSRate,
		CSTICMS:    r.CSTICMS,
		CSTIPI:     r.CSTIPI,
		CSTPIS:     r.CSTPIS,
		CSTCOFINS:  r.CSTCOFINS,
	}
}

// ToProductResponse converte um produto do domínio para DTO
func ToProductResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Code:          p.Code,
		NCM:           p.NCM,
		CFOP:          p.CFOP,
		UnitOfMeasure: p.UnitOfMeasure,
		UnitPrice:     p.UnitPrice,
		ProductType:   string(p.ProductType),
		TaxInfo:       p.TaxInfo,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProductListResponse converte uma lista de produtos do domínio para DTO
func ToProductListResponse(products []*product.Product, total, page, pageSize int) *ProductListResponse {
	items := make([]ProductResponse, len(products))
	for i, p := range products {
		items[i] = *ToProductResponse(p)
	}

	return &ProductListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}
}
