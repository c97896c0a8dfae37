package dto

import (
	"time"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/company"
)

// CompanyRequest representa a requisição de cadastro de empresa
type CompanyRequest struct {
	CorporateName         string          `json:"corporate_name" binding:"required"`
	TradeName             string          `json:"trade_name"`
	CNPJ                  string          `json:"cnpj" binding:"required"`
	StateRegistration     string          `json:"state_registration" binding:"required"`
	MunicipalRegistration string          `json:"municipal_registration"`
	Email                 string          `json:"email" binding:"required,email"`
	Phone                 string          `json:"phone"`
	TaxRegime             string          `json:"tax_regime" binding:"required"`
	Address               *AddressRequest `json:"address" binding:"required"`
}

// CompanyUpdateRequest representa a requisição de atualização de empresa
type CompanyUpdateRequest struct {
	CorporateName string          `json:"corporate_name" binding:"required"`
	TradeName     string          `json:"trade_name"`
	Email         string          `json:"email" binding:"required,email"`
	Phone         string          `json:"phone"`
	Address       *AddressRequest `json:"address"`
}

// CompanyAmbienteRequest representa a requisição de troca de ambiente
type CompanyAmbienteRequest struct {
	Ambiente string `json:"ambiente" binding:"required"`
}

// CompanySerieRequest representa a requisição de alteração de série
type CompanySerieRequest struct {
	Tipo  string `json:"tipo" binding:"required"`
	Serie int    `json:"serie" binding:"required"`
}

// CertificadoResponse resume o certificado digital da empresa; o arquivo
// e a senha nunca saem pela API
type CertificadoResponse struct {
	Numero             string    `json:"numero"`
	Validade           time.Time `json:"validade"`
	DiasParaVencimento int       `json:"dias_para_vencimento"`
	PrecisaRenovar     bool      `json:"precisa_renovar"`
	Valido             bool      `json:"valido"`
}

// CompanyResponse representa a resposta de empresa
type CompanyResponse struct {
	ID                    string               `json:"id"`
	CorporateName         string               `json:"corporate_name"`
	TradeName             string               `json:"trade_name,omitempty"`
	CNPJ                  string               `json:"cnpj"`
	CNPJFormatted         string               `json:"cnpj_formatted"`
	StateRegistration     string               `json:"state_registration"`
	MunicipalRegistration string               `json:"municipal_registration,omitempty"`
	Email                 string               `json:"email"`
	Phone                 string               `json:"phone,omitempty"`
	TaxRegime             string               `json:"tax_regime"`
	Ambiente              string               `json:"ambiente"`
	SerieNFe              int                  `json:"serie_nfe"`
	SerieNFSe             int                  `json:"serie_nfse"`
	UltimoNumeroNFe       int64                `json:"ultimo_numero_nfe"`
	UltimoNumeroNFSe      int64                `json:"ultimo_numero_nfse"`
	Address               *AddressResponse     `json:"address,omitempty"`
	Certificado           *CertificadoResponse `json:"certificado,omitempty"`
	IsActive              bool                 `json:"is_active"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

// CompanyListResponse representa a resposta de lista de empresas
type CompanyListResponse struct {
	Items      []CompanyResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// ToCompanyResponse converte uma empresa do domínio para DTO
func ToCompanyResponse(c *company.Company) *CompanyResponse {
	resp := &CompanyResponse{
		ID:                    c.ID,
		CorporateName:         c.CorporateName,
		TradeName:             c.TradeName,
		CNPJ:                  c.CNPJ.Value(),
		CNPJFormatted:         c.CNPJ.Formatted(),
		StateRegistration:     c.StateRegistration,
		MunicipalRegistration: c.MunicipalRegistration,
		Email:                 c.Email,
		Phone:                 c.Phone,
		TaxRegime:             string(c.TaxRegime),
		Ambiente:              string(c.Ambiente),
		SerieNFe:              c.SerieNFe,
		SerieNFSe:             c.SerieNFSe,
		UltimoNumeroNFe:       c.UltimoNumeroNFe,
		UltimoNumeroNFSe:      c.UltimoNumeroNFSe,
		Address:               ToAddressResponse(c.Address),
		IsActive:              c.IsActive,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}

	if !c.Certificado.IsZero() {
		resp.Certificado = &CertificadoResponse{
			Numero:             c.Certificado.Numero(),
			Validade:           c.Certificado.Validade(),
			DiasParaVencimento: c.Certificado.DiasParaVencimento(),
			PrecisaRenovar:     c.Certificado.PrecisaRenovar(),
			Valido:             c.Certificado.EstaValido(),
		}
	}

	return resp
}

// ToCompanyListResponse converte uma lista de empresas do domínio para DTO
func ToCompanyListResponse(companies []*company.Company, total, page, pageSize int) *CompanyListResponse {
	items := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		items[i] = *ToCompanyResponse(c)
	}

	return &CompanyListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}
}
