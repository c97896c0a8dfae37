package company

import (
	"errors"
	"regexp"
	"strings"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/entity"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
)

var (
	ErrRazaoSocialObrigatoria      = errors.New("razão social é obrigatória")
	ErrInscricaoEstadualObrigatoria = errors.New("inscrição estadual é obrigatória")
	ErrEmailInvalido               = errors.New("email inválido")
	ErrRegimeTributarioInvalido    = errors.New("regime tributário inválido")
	ErrSerieForaDaFaixa            = errors.New("série deve estar entre 1 e 999")
	ErrCertificadoInvalido         = errors.New("certificado digital inválido ou vencido")
	ErrCertificadoOutroProprietario = errors.New("certificado digital não pertence a esta empresa")
	ErrProducaoSemCertificado      = errors.New("empresa não pode entrar em produção sem certificado digital válido")
)

// TaxRegime define o regime tributário da empresa
type TaxRegime string

const (
	TaxRegimeSimplesNacional TaxRegime = "SIMPLES_NACIONAL"
	TaxRegimeLucroPresumido  TaxRegime = "LUCRO_PRESUMIDO"
	TaxRegimeLucroReal       TaxRegime = "LUCRO_REAL"
	TaxRegimeMEI             TaxRegime = "MEI"
)

// Ambiente define o ambiente da SEFAZ em que a empresa opera
type Ambiente string

const (
	AmbienteProducao     Ambiente = "producao"
	AmbienteHomologacao  Ambiente = "homologacao"
)

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Company representa a empresa emitente de documentos fiscais.
// Os contadores de numeração por tipo de documento nunca retrocedem;
// a série de cada tipo fica na faixa 1..999 exigida pelo layout da NF-e.
type Company struct {
	entity.Base
	CorporateName         string                         `json:"corporate_name"`
	TradeName             string                         `json:"trade_name"`
	CNPJ                  valueobject.CNPJ               `json:"-"`
	StateRegistration     string                         `json:"state_registration"`
	MunicipalRegistration string                         `json:"municipal_registration,omitempty"`
	Address               valueobject.Address            `json:"-"`
	Email                 string                         `json:"email"`
	Phone                 string                         `json:"phone"`
	TaxRegime             TaxRegime                      `json:"tax_regime"`
	IsActive              bool                           `json:"is_active"`
	Certificado           valueobject.CertificadoDigital `json:"-"`
	Ambiente              Ambiente                       `json:"ambiente"`
	SerieNFe              int                            `json:"serie_nfe"`
	SerieNFSe             int                            `json:"serie_nfse"`
	UltimoNumeroNFe       int64                          `json:"ultimo_numero_nfe"`
	UltimoNumeroNFSe      int64                          `json:"ultimo_numero_nfse"`
}

// NewCompany cria uma nova empresa emitente. A empresa nasce ativa, em
// homologação, com série 1 para NF-e e NFS-e e contadores zerados.
func NewCompany(
	corporateName string,
	tradeName string,
	cnpj valueobject.CNPJ,
	stateRegistration string,
	address valueobject.Address,
	email string,
	phone string,
	taxRegime TaxRegime,
	municipalRegistration string,
) (*Company, error) {
	if strings.TrimSpace(corporateName) == "" {
		return nil, ErrRazaoSocialObrigatoria
	}
	if strings.TrimSpace(stateRegistration) == "" {
		return nil, ErrInscricaoEstadualObrigatoria
	}
	if !emailRegexp.MatchString(email) {
		return nil, ErrEmailInvalido
	}
	if !regimeValido(taxRegime) {
		return nil, ErrRegimeTributarioInvalido
	}

	return &Company{
		Base:                  entity.NewBase("company"),
		CorporateName:         corporateName,
		TradeName:             tradeName,
		CNPJ:                  cnpj,
		StateRegistration:     stateRegistration,
		MunicipalRegistration: municipalRegistration,
		Address:               address,
		Email:                 email,
		Phone:                 phone,
		TaxRegime:             taxRegime,
		IsActive:              true,
		Ambiente:              AmbienteHomologacao,
		SerieNFe:              1,
		SerieNFSe:             1,
	}, nil
}

// UpdateInfo atualiza os dados cadastrais básicos da empresa
func (c *Company) UpdateInfo(corporateName, tradeName, email, phone string) error {
	if strings.TrimSpace(corporateName) == "" {
		return ErrRazaoSocialObrigatoria
	}
	if !emailRegexp.MatchString(email) {
		return ErrEmailInvalido
	}

	c.CorporateName = corporateName
	c.TradeName = tradeName
	c.Email = email
	c.Phone = phone
	c.Touch()
	return nil
}

// UpdateAddress atualiza o endereço da empresa
func (c *Company) UpdateAddress(address valueobject.Address) {
	c.Address = address
	c.Touch()
}

// ChangeTaxRegime altera o regime tributário da empresa
func (c *Company) ChangeTaxRegime(taxRegime TaxRegime) error {
	if !regimeValido(taxRegime) {
		return ErrRegimeTributarioInvalido
	}
	c.TaxRegime = taxRegime
	c.Touch()
	return nil
}

// AtribuirCertificado vincula um certificado digital à empresa. O campo de
// proprietário do certificado deve conter o CNPJ limpo da empresa.
func (c *Company) AtribuirCertificado(cert valueobject.CertificadoDigital) error {
	if !cert.EstaValido() {
		return ErrCertificadoInvalido
	}
	if !cert.ValidarProprietario(c.CNPJ.Value()) {
		return ErrCertificadoOutroProprietario
	}
	c.Certificado = cert
	c.Touch()
	return nil
}

// AlterarAmbiente muda o ambiente da SEFAZ. A entrada em produção exige
// um certificado digital válido e não vencido.
func (c *Company) AlterarAmbiente(ambiente Ambiente) error {
	if ambiente == AmbienteProducao {
		if c.Certificado.IsZero() || !c.Certificado.EstaValido() {
			return ErrProducaoSemCertificado
		}
	}
	c.Ambiente = ambiente
	c.Touch()
	return nil
}

// DefinirSerieNFe altera a série usada na numeração de NF-e
func (c *Company) DefinirSerieNFe(serie int) error {
	if serie < 1 || serie > 999 {
		return ErrSerieForaDaFaixa
	}
	c.SerieNFe = serie
	c.Touch()
	return nil
}

// DefinirSerieNFSe altera a série usada na numeração de NFS-e
func (c *Company) DefinirSerieNFSe(serie int) error {
	if serie < 1 || serie > 999 {
		return ErrSerieForaDaFaixa
	}
	c.SerieNFSe = serie
	c.Touch()
	return nil
}

// ProximoNumeroNFe incrementa e retorna o próximo número de NF-e.
// O contador é monotônico e nunca é reiniciado.
func (c *Company) ProximoNumeroNFe() int64 {
	c.UltimoNumeroNFe++
	c.Touch()
	return c.UltimoNumeroNFe
}

// ProximoNumeroNFSe incrementa e retorna o próximo número de NFS-e
func (c *Company) ProximoNumeroNFSe() int64 {
	c.UltimoNumeroNFSe++
	c.Touch()
	return c.UltimoNumeroNFSe
}

// Activate ativa a empresa
func (c *Company) Activate() {
	c.IsActive = true
	c.Touch()
}

// Deactivate desativa a empresa; o domínio nunca remove uma empresa
func (c *Company) Deactivate() {
	c.IsActive = false
	c.Touch()
}

// TemCertificadoValido verifica se há certificado vinculado e não vencido
func (c *Company) TemCertificadoValido() bool {
	return !c.Certificado.IsZero() && c.Certificado.EstaValido()
}

// CertificadoPrecisaRenovar indica se o certificado vence em 30 dias ou menos
func (c *Company) CertificadoPrecisaRenovar() bool {
	return !c.Certificado.IsZero() && c.Certificado.PrecisaRenovar()
}

// PodeEmitirNFe verifica se a empresa está apta a emitir NF-e: ativa e,
// fora da homologação, com certificado digital válido
func (c *Company) PodeEmitirNFe() bool {
	if !c.IsActive {
		return false
	}
	if c.Ambiente == AmbienteHomologacao {
		return true
	}
	return c.TemCertificadoValido()
}

// PodeEmitirNFSe verifica se a empresa está apta a emitir NFS-e: ativa e
// com inscrição municipal informada
func (c *Company) PodeEmitirNFSe() bool {
	return c.IsActive && strings.TrimSpace(c.MunicipalRegistration) != ""
}

func regimeValido(t TaxRegime) bool {
	switch t {
	case TaxRegimeSimplesNacional, TaxRegimeLucroPresumido, TaxRegimeLucroReal, TaxRegimeMEI:
		return true
	}
	return false
}
