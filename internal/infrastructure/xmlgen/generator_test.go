package xmlgen

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gopkcs12 "software.sslmate.com/src/go-pkcs12"
)

type fonteFixa struct{ codigo int }

func (f fonteFixa) CodigoNumerico() int { return f.codigo }

func notaComItem(t *testing.T) (*notafiscal.NotaFiscal, []*notafiscal.ItemNotaFiscal) {
	t.Helper()

	nota, err := notafiscal.NewNotaFiscal(
		123, 1, notafiscal.TipoNFe, "empresa-1", "cliente-1", 500.00, 90.00, 0)
	require.NoError(t, err)

	_, err = nota.GerarChaveAcesso("SP", "11444777000161", fonteFixa{codigo: 12345678})
	require.NoError(t, err)

	item, err := notafiscal.NewItemNotaFiscal(
		nota.ID, "produto-1", 1, notafiscal.TipoItemProduto,
		"ARZ-001", "Arroz Tipo 1 5kg", "10063021", "5102", "UN", 10, 50.00)
	require.NoError(t, err)

	err = item.DefinirTributoICMS(notafiscal.TributoItem{
		CST: "00", Aliquota: 18, ValorBase: 500.00, ValorTributo: 90.00,
	})
	require.NoError(t, err)

	require.NoError(t, nota.AdicionarItem(item.ID))

	return nota, []*notafiscal.ItemNotaFiscal{item}
}

func TestGerarXML(t *testing.T) {
	gerador := NewGerador()
	nota, itens := notaComItem(t)

	xml, err := gerador.GerarXML(nota, itens)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))

	infNFe := doc.FindElement("//infNFe")
	require.NotNil(t, infNFe)
	assert.Equal(t, "NFe"+nota.ChaveAcesso, infNFe.SelectAttrValue("Id", ""))
	assert.Equal(t, "4.00", infNFe.SelectAttrValue("versao", ""))

	ide := infNFe.SelectElement("ide")
	require.NotNil(t, ide)
	assert.Equal(t, "35", ide.SelectElement("cUF").Text())
	assert.Equal(t, "55", ide.SelectElement("mod").Text())
	assert.Equal(t, "123", ide.SelectElement("nNF").Text())
	assert.Equal(t, "12345678", ide.SelectElement("cNF").Text())

	emit := infNFe.SelectElement("emit")
	require.NotNil(t, emit)
	assert.Equal(t, "11444777000161", emit.SelectElement("CNPJ").Text())

	det := infNFe.SelectElement("det")
	require.NotNil(t, det)
	assert.Equal(t, "1", det.SelectAttrValue("nItem", ""))

	prod := det.SelectElement("prod")
	require.NotNil(t, prod)
	assert.Equal(t, "Arroz Tipo 1 5kg", prod.SelectElement("xProd").Text())
	assert.Equal(t, "10.0000", prod.SelectElement("qCom").Text())
	assert.Equal(t, "500.00", prod.SelectElement("vProd").Text())

	icms := det.FindElement("imposto/ICMS")
	require.NotNil(t, icms)
	assert.Equal(t, "00", icms.SelectElement("CST").Text())
	assert.Equal(t, "90.00", icms.SelectElement("vICMS").Text())

	total := infNFe.FindElement("total/ICMSTot")
	require.NotNil(t, total)
	assert.Equal(t, "500.00", total.SelectElement("vNF").Text())
	assert.Equal(t, "90.00", total.SelectElement("vTotTrib").Text())
}

func TestGerarXML_Restricoes(t *testing.T) {
	gerador := NewGerador()

	nota, itens := notaComItem(t)
	semChave, err := notafiscal.NewNotaFiscal(
		124, 1, notafiscal.TipoNFe, "empresa-1", "cliente-1", 500.00, 90.00, 0)
	require.NoError(t, err)

	_, err = gerador.GerarXML(semChave, itens)
	assert.ErrorIs(t, err, ErrNotaSemChave)

	_, err = gerador.GerarXML(nota, nil)
	assert.ErrorIs(t, err, ErrNotaSemItens)
}

func TestValidarXML(t *testing.T) {
	gerador := NewGerador()
	nota, itens := notaComItem(t)

	xml, err := gerador.GerarXML(nota, itens)
	require.NoError(t, err)

	valido, err := gerador.ValidarXML(xml, "nfe_v4.00.xsd")
	require.NoError(t, err)
	assert.True(t, valido)

	valido, err = gerador.ValidarXML("<NFe><outro/></NFe>", "nfe_v4.00.xsd")
	require.NoError(t, err)
	assert.False(t, valido)

	_, err = gerador.ValidarXML("não é xml <", "nfe_v4.00.xsd")
	assert.Error(t, err)
}

func certificadoDeTeste(t *testing.T) valueobject.CertificadoDigital {
	t.Helper()

	chave, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	modelo := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			CommonName: "ACME COMERCIO LTDA:11444777000161",
		},
		NotBefore: time.Now().Add(-time.Hour),
		NotAfter:  time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:  x509.KeyUsageDigitalSignature,
	}

	der, err := x509.CreateCertificate(rand.Reader, &modelo, &modelo, &chave.PublicKey, chave)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	pfx, err := gopkcs12.Modern.Encode(chave, cert, nil, "senha123")
	require.NoError(t, err)

	certificado, err := valueobject.NewCertificadoDigital(
		pfx, "senha123", modelo.NotAfter,
		"ACME COMERCIO LTDA:11444777000161", "1")
	require.NoError(t, err)

	return certificado
}

func TestAssinarXML(t *testing.T) {
	gerador := NewGerador()
	nota, itens := notaComItem(t)

	xml, err := gerador.GerarXML(nota, itens)
	require.NoError(t, err)

	assinado, err := gerador.AssinarXML(xml, certificadoDeTeste(t))
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(assinado))

	sig := doc.FindElement("//Signature")
	require.NotNil(t, sig)
	assert.NotNil(t, sig.FindElement("SignedInfo/Reference"))
	assert.Equal(t, "#NFe"+nota.ChaveAcesso,
		sig.FindElement("SignedInfo/Reference").SelectAttrValue("URI", ""))
	assert.NotEmpty(t, sig.SelectElement("SignatureValue").Text())
	assert.NotEmpty(t, strings.TrimSpace(sig.FindElement("KeyInfo/X509Data/X509Certificate").Text()))
}

func TestAssinarXML_SemCertificado(t *testing.T) {
	gerador := NewGerador()
	nota, itens := notaComItem(t)

	xml, err := gerador.GerarXML(nota, itens)
	require.NoError(t, err)

	_, err = gerador.AssinarXML(xml, valueobject.CertificadoDigital{})
	assert.ErrorIs(t, err, ErrCertificadoVazio)
}
