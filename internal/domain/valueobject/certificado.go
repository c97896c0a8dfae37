package valueobject

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrCertificadoArquivoVazio      = errors.New("arquivo do certificado é obrigatório")
	ErrCertificadoSenhaObrigatoria  = errors.New("senha do certificado é obrigatória")
	ErrCertificadoVencido           = errors.New("certificado deve ter validade futura")
	ErrCertificadoSemProprietario   = errors.New("proprietário do certificado é obrigatório")
	ErrCertificadoSemNumero         = errors.New("número do certificado é obrigatório")
)

// diasAvisoRenovacao define quantos dias antes do vencimento o certificado
// passa a ser tratado como "precisa renovar" pela validação de emissão.
const diasAvisoRenovacao = 30

// CertificadoDigital representa um certificado A1 (.p12/.pfx) usado para
// assinar documentos fiscais. Valor imutável, comparado pelo número.
type CertificadoDigital struct {
	arquivo      []byte
	senha        string
	validade     time.Time
	proprietario string
	numero       string
}

// NewCertificadoDigital cria um certificado validado. A validade deve
// estar no futuro no momento da construção.
func NewCertificadoDigital(arquivo []byte, senha string, validade time.Time, proprietario, numero string) (CertificadoDigital, error) {
	if len(arquivo) == 0 {
		return CertificadoDigital{}, ErrCertificadoArquivoVazio
	}
	if strings.TrimSpace(senha) == "" {
		return CertificadoDigital{}, ErrCertificadoSenhaObrigatoria
	}
	if !validade.After(time.Now()) {
		return CertificadoDigital{}, ErrCertificadoVencido
	}
	if strings.TrimSpace(proprietario) == "" {
		return CertificadoDigital{}, ErrCertificadoSemProprietario
	}
	if strings.TrimSpace(numero) == "" {
		return CertificadoDigital{}, ErrCertificadoSemNumero
	}

	return CertificadoDigital{
		arquivo:      arquivo,
		senha:        senha,
		validade:     validade,
		proprietario: proprietario,
		numero:       numero,
	}, nil
}

// RestaurarCertificadoDigital reconstrói um certificado previamente
// validado a partir do armazenamento. Não reaplica a checagem de
// validade futura: um certificado vencido continua visível para a
// empresa até ser substituído.
func RestaurarCertificadoDigital(arquivo []byte, senha string, validade time.Time, proprietario, numero string) CertificadoDigital {
	return CertificadoDigital{
		arquivo:      arquivo,
		senha:        senha,
		validade:     validade,
		proprietario: proprietario,
		numero:       numero,
	}
}

func (c CertificadoDigital) Arquivo() []byte        { return c.arquivo }
func (c CertificadoDigital) Senha() string          { return c.senha }
func (c CertificadoDigital) Validade() time.Time    { return c.validade }
func (c CertificadoDigital) Proprietario() string   { return c.proprietario }
func (c CertificadoDigital) Numero() string         { return c.numero }

// EstaValido verifica se o certificado ainda não expirou
func (c CertificadoDigital) EstaValido() bool {
	return c.validade.After(time.Now())
}

// ValidarProprietario verifica se o certificado pertence à empresa,
// comparando o CNPJ limpo com o campo de proprietário do certificado
func (c CertificadoDigital) ValidarProprietario(cnpj string) bool {
	limpo := onlyDigits(cnpj)
	if limpo == "" {
		return false
	}
	return strings.Contains(c.proprietario, limpo)
}

// DiasParaVencimento retorna quantos dias faltam para o certificado expirar
func (c CertificadoDigital) DiasParaVencimento() int {
	diferenca := time.Until(c.validade)
	return int(math.Ceil(diferenca.Hours() / 24))
}

// PrecisaRenovar indica se o certificado vence em 30 dias ou menos
func (c CertificadoDigital) PrecisaRenovar() bool {
	return c.DiasParaVencimento() <= diasAvisoRenovacao
}

// Equals compara dois certificados pelo número
func (c CertificadoDigital) Equals(other CertificadoDigital) bool {
	return c.numero == other.numero
}

// IsZero indica se o certificado não foi inicializado
func (c CertificadoDigital) IsZero() bool {
	return c.numero == ""
}
