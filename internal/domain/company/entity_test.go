package company_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/company"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
)

func novaEmpresa(t *testing.T) *company.Company {
	t.Helper()

	cnpj, err := valueobject.NewCNPJ("11.444.777/0001-61")
	require.NoError(t, err)

	addr, err := valueobject.NewAddress(
		"Avenida Paulista", "1578", "", "Bela Vista",
		"São Paulo", "SP", "01310200", "Brasil", "3550308")
	require.NoError(t, err)

	c, err := company.NewCompany(
		"ACME Comércio Ltda", "ACME", cnpj, "110042490114",
		addr, "fiscal@acme.com.br", "11 4002-8922",
		company.TaxRegimeSimplesNacional, "12345")
	require.NoError(t, err)
	return c
}

func certificadoDaEmpresa(t *testing.T, validade time.Time) valueobject.CertificadoDigital {
	t.Helper()
	cert, err := valueobject.NewCertificadoDigital(
		[]byte{0x30, 0x82}, "senha", validade,
		"ACME COMERCIO LTDA:11444777000161", "A1-9999")
	require.NoError(t, err)
	return cert
}

func TestNewCompany_EstadoInicial(t *testing.T) {
	c := novaEmpresa(t)

	assert.NotEmpty(t, c.ID)
	assert.True(t, c.IsActive)
	assert.Equal(t, company.AmbienteHomologacao, c.Ambiente)
	assert.Equal(t, 1, c.SerieNFe)
	assert.Equal(t, 1, c.SerieNFSe)
	assert.Zero(t, c.UltimoNumeroNFe)
	assert.Zero(t, c.UltimoNumeroNFSe)
}

func TestNewCompany_Validacoes(t *testing.T) {
	cnpj, err := valueobject.NewCNPJ("11444777000161")
	require.NoError(t, err)
	addr, err := valueobject.NewAddress("Rua A", "1", "", "Centro", "Curitiba", "PR", "80010000", "", "")
	require.NoError(t, err)

	_, err = company.NewCompany("", "ACME", cnpj, "110042490114", addr,
		"fiscal@acme.com.br", "", company.TaxRegimeMEI, "")
	assert.ErrorIs(t, err, company.ErrRazaoSocialObrigatoria)

	_, err = company.NewCompany("ACME Ltda", "ACME", cnpj, "", addr,
		"fiscal@acme.com.br", "", company.TaxRegimeMEI, "")
	assert.ErrorIs(t, err, company.ErrInscricaoEstadualObrigatoria)

	_, err = company.NewCompany("ACME Ltda", "ACME", cnpj, "110042490114", addr,
		"sem-arroba", "", company.TaxRegimeMEI, "")
	assert.ErrorIs(t, err, company.ErrEmailInvalido)

	_, err = company.NewCompany("ACME Ltda", "ACME", cnpj, "110042490114", addr,
		"fiscal@acme.com.br", "", company.TaxRegime("INEXISTENTE"), "")
	assert.ErrorIs(t, err, company.ErrRegimeTributarioInvalido)
}

func TestCompany_AtribuirCertificado(t *testing.T) {
	c := novaEmpresa(t)

	// Certificado de outro CNPJ não pode ser vinculado.
	outro, err := valueobject.NewCertificadoDigital(
		[]byte{1}, "senha", time.Now().AddDate(1, 0, 0), "OUTRA EMPRESA:99888777000100", "X")
	require.NoError(t, err)
	assert.ErrorIs(t, c.AtribuirCertificado(outro), company.ErrCertificadoOutroProprietario)

	cert := certificadoDaEmpresa(t, time.Now().AddDate(1, 0, 0))
	require.NoError(t, c.AtribuirCertificado(cert))
	assert.True(t, c.TemCertificadoValido())
	assert.False(t, c.CertificadoPrecisaRenovar())
}

func TestCompany_AlterarAmbiente(t *testing.T) {
	c := novaEmpresa(t)

	// Sem certificado a empresa não entra em produção.
	err := c.AlterarAmbiente(company.AmbienteProducao)
	assert.ErrorIs(t, err, company.ErrProducaoSemCertificado)
	assert.Equal(t, company.AmbienteHomologacao, c.Ambiente)

	require.NoError(t, c.AtribuirCertificado(certificadoDaEmpresa(t, time.Now().AddDate(1, 0, 0))))
	require.NoError(t, c.AlterarAmbiente(company.AmbienteProducao))
	assert.Equal(t, company.AmbienteProducao, c.Ambiente)

	// Voltar para homologação é sempre permitido.
	require.NoError(t, c.AlterarAmbiente(company.AmbienteHomologacao))
}

func TestCompany_Numeracao(t *testing.T) {
	c := novaEmpresa(t)

	assert.Equal(t, int64(1), c.ProximoNumeroNFe())
	assert.Equal(t, int64(2), c.ProximoNumeroNFe())
	assert.Equal(t, int64(1), c.ProximoNumeroNFSe())
	assert.Equal(t, int64(3), c.ProximoNumeroNFe(),
		"os contadores de NF-e e NFS-e são independentes")
}

func TestCompany_Series(t *testing.T) {
	c := novaEmpresa(t)

	assert.ErrorIs(t, c.DefinirSerieNFe(0), company.ErrSerieForaDaFaixa)
	assert.ErrorIs(t, c.DefinirSerieNFe(1000), company.ErrSerieForaDaFaixa)
	require.NoError(t, c.DefinirSerieNFe(999))
	assert.Equal(t, 999, c.SerieNFe)

	assert.ErrorIs(t, c.DefinirSerieNFSe(-5), company.ErrSerieForaDaFaixa)
	require.NoError(t, c.DefinirSerieNFSe(2))
	assert.Equal(t, 2, c.SerieNFSe)
}

func TestCompany_PodeEmitir(t *testing.T) {
	c := novaEmpresa(t)

	// Em homologação basta estar ativa.
	assert.True(t, c.PodeEmitirNFe())

	// Em produção é preciso certificado válido.
	require.NoError(t, c.AtribuirCertificado(certificadoDaEmpresa(t, time.Now().AddDate(1, 0, 0))))
	require.NoError(t, c.AlterarAmbiente(company.AmbienteProducao))
	assert.True(t, c.PodeEmitirNFe())

	c.Deactivate()
	assert.False(t, c.PodeEmitirNFe())
	assert.False(t, c.PodeEmitirNFSe())

	c.Activate()
	assert.True(t, c.PodeEmitirNFSe(), "empresa ativa com inscrição municipal emite NFS-e")
}

func TestCompany_EqualsPorIdentidade(t *testing.T) {
	a := novaEmpresa(t)
	b := novaEmpresa(t)

	assert.True(t, a.Base.Equals(a.Base))
	assert.False(t, a.Base.Equals(b.Base), "entidades distintas têm ids distintos")
}
