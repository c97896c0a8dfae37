package valueobject_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
)

func novoCertificadoValido(t *testing.T, validade time.Time) valueobject.CertificadoDigital {
	t.Helper()
	cert, err := valueobject.NewCertificadoDigital(
		[]byte{0x30, 0x82, 0x01, 0x02},
		"senha-secreta",
		validade,
		"ACME COMERCIO LTDA:11444777000161",
		"A1-0001")
	require.NoError(t, err)
	return cert
}

func TestNewCertificadoDigital_Valido(t *testing.T) {
	validade := time.Now().AddDate(1, 0, 0)
	cert := novoCertificadoValido(t, validade)

	assert.True(t, cert.EstaValido())
	assert.False(t, cert.PrecisaRenovar())
	assert.Equal(t, "A1-0001", cert.Numero())
}

func TestNewCertificadoDigital_Invalido(t *testing.T) {
	futuro := time.Now().AddDate(1, 0, 0)

	_, err := valueobject.NewCertificadoDigital(nil, "senha", futuro, "dono", "n1")
	assert.ErrorIs(t, err, valueobject.ErrCertificadoArquivoVazio)

	_, err = valueobject.NewCertificadoDigital([]byte{1}, "  ", futuro, "dono", "n1")
	assert.ErrorIs(t, err, valueobject.ErrCertificadoSenhaObrigatoria)

	_, err = valueobject.NewCertificadoDigital([]byte{1}, "senha", time.Now().Add(-time.Hour), "dono", "n1")
	assert.ErrorIs(t, err, valueobject.ErrCertificadoVencido)

	_, err = valueobject.NewCertificadoDigital([]byte{1}, "senha", futuro, "", "n1")
	assert.ErrorIs(t, err, valueobject.ErrCertificadoSemProprietario)

	_, err = valueobject.NewCertificadoDigital([]byte{1}, "senha", futuro, "dono", "")
	assert.ErrorIs(t, err, valueobject.ErrCertificadoSemNumero)
}

func TestCertificadoDigital_ValidarProprietario(t *testing.T) {
	cert := novoCertificadoValido(t, time.Now().AddDate(1, 0, 0))

	assert.True(t, cert.ValidarProprietario("11.444.777/0001-61"),
		"o CNPJ limpo está embutido no campo de proprietário")
	assert.False(t, cert.ValidarProprietario("99.888.777/0001-00"))
	assert.False(t, cert.ValidarProprietario(""))
}

func TestCertificadoDigital_DiasParaVencimento(t *testing.T) {
	// Vencimento em ~10 dias: deve acusar renovação (limite de 30 dias).
	cert := novoCertificadoValido(t, time.Now().Add(10*24*time.Hour+time.Minute))

	dias := cert.DiasParaVencimento()
	assert.InDelta(t, 10, dias, 1)
	assert.True(t, cert.PrecisaRenovar())

	// Vencimento em ~60 dias: ainda não precisa renovar.
	longe := novoCertificadoValido(t, time.Now().Add(60*24*time.Hour))
	assert.False(t, longe.PrecisaRenovar())
}

func TestCertificadoDigital_Equals(t *testing.T) {
	a := novoCertificadoValido(t, time.Now().AddDate(1, 0, 0))
	b, err := valueobject.NewCertificadoDigital(
		[]byte{0xFF}, "outra-senha", time.Now().AddDate(2, 0, 0), "OUTRO DONO", "A1-0001")
	require.NoError(t, err)

	assert.True(t, a.Equals(b), "certificados são comparados pelo número")
}
