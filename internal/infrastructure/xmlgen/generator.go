// Package xmlgen monta, assina e valida o XML dos documentos fiscais
// no layout da NF-e 4.00.
package xmlgen

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/pkcs12"
	"github.com/beevik/etree"
)

const (
	namespaceNFe     = "http://www.portalfiscal.inf.br/nfe"
	namespaceDSig    = "http://www.w3.org/2000/09/xmldsig#"
	versaoLayout     = "4.00"
	naturezaOperacao = "VENDA DE MERCADORIA OU SERVICO"
)

var (
	ErrNotaSemChave      = errors.New("nota fiscal sem chave de acesso")
	ErrNotaSemItens      = errors.New("nota fiscal sem itens")
	ErrCertificadoVazio  = errors.New("certificado digital não informado")
	ErrXMLSemElementoRaiz = errors.New("XML sem o elemento raiz esperado")
)

// Gerador implementa notafiscal.XMLGateway
type Gerador struct{}

// NewGerador cria o gerador de XML
func NewGerador() *Gerador {
	return &Gerador{}
}

// GerarXML implementa notafiscal.XMLGateway.GerarXML
func (g *Gerador) GerarXML(nota *notafiscal.NotaFiscal, itens []*notafiscal.ItemNotaFiscal) (string, error) {
	if len(nota.ChaveAcesso) != 44 {
		return "", ErrNotaSemChave
	}
	if len(itens) == 0 {
		return "", ErrNotaSemItens
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	nfe := doc.CreateElement("NFe")
	nfe.CreateAttr("xmlns", namespaceNFe)

	infNFe := nfe.CreateElement("infNFe")
	infNFe.CreateAttr("Id", "NFe"+nota.ChaveAcesso)
	infNFe.CreateAttr("versao", versaoLayout)

	g.montarIde(infNFe, nota)
	g.montarEmit(infNFe, nota)

	for _, item := range itens {
		g.montarDet(infNFe, item)
	}

	g.montarTotal(infNFe, nota, itens)

	if nota.InformacoesAdicionais != "" || nota.Observacoes != "" {
		infAdic := infNFe.CreateElement("infAdic")
		if nota.InformacoesAdicionais != "" {
			infAdic.CreateElement("infAdFisco").SetText(nota.InformacoesAdicionais)
		}
		if nota.Observacoes != "" {
			infAdic.CreateElement("infCpl").SetText(nota.Observacoes)
		}
	}

	xml, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("erro ao serializar XML da nota: %w", err)
	}

	return xml, nil
}

// montarIde preenche o grupo de identificação da nota. Os campos
// variáveis saem da própria chave de acesso, que já os codifica.
func (g *Gerador) montarIde(infNFe *etree.Element, nota *notafiscal.NotaFiscal) {
	chave := nota.ChaveAcesso

	ide := infNFe.CreateElement("ide")
	ide.CreateElement("cUF").SetText(chave[0:2])
	ide.CreateElement("cNF").SetText(chave[35:43])
	ide.CreateElement("natOp").SetText(naturezaOperacao)
	ide.CreateElement("mod").SetText(chave[20:22])
	ide.CreateElement("serie").SetText(strconv.Itoa(nota.Serie))
	ide.CreateElement("nNF").SetText(strconv.FormatInt(nota.Numero, 10))
	ide.CreateElement("dhEmi").SetText(nota.DataEmissao.Format("2006-01-02T15:04:05-07:00"))
	ide.CreateElement("tpNF").SetText("1")
	ide.CreateElement("tpEmis").SetText(chave[34:35])
	ide.CreateElement("cDV").SetText(chave[43:44])
	ide.CreateElement("finNFe").SetText(strconv.Itoa(int(nota.Finalidade)))
}

func (g *Gerador) montarEmit(infNFe *etree.Element, nota *notafiscal.NotaFiscal) {
	emit := infNFe.CreateElement("emit")
	emit.CreateElement("CNPJ").SetText(nota.ChaveAcesso[6:20])
}

func (g *Gerador) montarDet(infNFe *etree.Element, item *notafiscal.ItemNotaFiscal) {
	det := infNFe.CreateElement("det")
	det.CreateAttr("nItem", strconv.Itoa(item.NumeroItem))

	prod := det.CreateElement("prod")
	prod.CreateElement("cProd").SetText(item.CodigoProduto)
	if item.CodigoEAN != "" {
		prod.CreateElement("cEAN").SetText(item.CodigoEAN)
	} else {
		prod.CreateElement("cEAN").SetText("SEM GTIN")
	}
	prod.CreateElement("xProd").SetText(item.Descricao)
	prod.CreateElement("NCM").SetText(item.NCM)
	if item.CEST != "" {
		prod.CreateElement("CEST").SetText(item.CEST)
	}
	prod.CreateElement("CFOP").SetText(item.CFOP)
	prod.CreateElement("uCom").SetText(item.UnidadeComercial)
	prod.CreateElement("qCom").SetText(formatarDecimal(item.Quantidade, 4))
	prod.CreateElement("vUnCom").SetText(formatarDecimal(item.ValorUnitario, 2))
	prod.CreateElement("vProd").SetText(formatarDecimal(item.ValorBruto(), 2))
	if item.ValorDesconto > 0 {
		prod.CreateElement("vDesc").SetText(formatarDecimal(item.ValorDesconto, 2))
	}
	if item.ValorOutros > 0 {
		prod.CreateElement("vOutro").SetText(formatarDecimal(item.ValorOutros, 2))
	}

	imposto := det.CreateElement("imposto")
	g.montarTributo(imposto, "ICMS", item.Tributos.ICMS, int(item.Origem))
	g.montarTributo(imposto, "IPI", item.Tributos.IPI, -1)
	g.montarTributo(imposto, "PIS", item.Tributos.PIS, -1)
	g.montarTributo(imposto, "COFINS", item.Tributos.COFINS, -1)
	g.montarTributo(imposto, "ISSQN", item.Tributos.ISSQN, -1)
}

// montarTributo serializa um tributo incidente; origem >= 0 inclui o
// campo orig exigido no grupo do ICMS
func (g *Gerador) montarTributo(imposto *etree.Element, nome string, tributo *notafiscal.TributoItem, origem int) {
	if tributo == nil {
		return
	}

	grupo := imposto.CreateElement(nome)
	if origem >= 0 {
		grupo.CreateElement("orig").SetText(strconv.Itoa(origem))
	}
	grupo.CreateElement("CST").SetText(tributo.CST)
	grupo.CreateElement("vBC").SetText(formatarDecimal(tributo.ValorBase, 2))
	grupo.CreateElement("p"+nome).SetText(formatarDecimal(tributo.Aliquota, 4))
	grupo.CreateElement("v"+nome).SetText(formatarDecimal(tributo.ValorTributo, 2))
}

func (g *Gerador) montarTotal(infNFe *etree.Element, nota *notafiscal.NotaFiscal, itens []*notafiscal.ItemNotaFiscal) {
	var totalProdutos, totalDescontos, totalICMS float64
	for _, item := range itens {
		totalProdutos += item.ValorBruto()
		totalDescontos += item.ValorDesconto
		if item.Tributos.ICMS != nil {
			totalICMS += item.Tributos.ICMS.ValorTributo
		}
	}

	total := infNFe.CreateElement("total")
	icmsTot := total.CreateElement("ICMSTot")
	icmsTot.CreateElement("vProd").SetText(formatarDecimal(totalProdutos, 2))
	icmsTot.CreateElement("vDesc").SetText(formatarDecimal(totalDescontos, 2))
	icmsTot.CreateElement("vICMS").SetText(formatarDecimal(totalICMS, 2))
	icmsTot.CreateElement("vNF").SetText(formatarDecimal(nota.ValorTotal, 2))
	icmsTot.CreateElement("vTotTrib").SetText(formatarDecimal(nota.ValorTributos, 2))
}

// AssinarXML implementa notafiscal.XMLGateway.AssinarXML. A assinatura
// é enviloped no padrão XMLDSig, referenciando o elemento infNFe.
func (g *Gerador) AssinarXML(xml string, certificado valueobject.CertificadoDigital) (string, error) {
	if certificado.IsZero() {
		return "", ErrCertificadoVazio
	}

	chave, cert, err := pkcs12.Decode(certificado.Arquivo(), certificado.Senha())
	if err != nil {
		return "", fmt.Errorf("erro ao abrir certificado digital: %w", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		return "", fmt.Errorf("erro ao ler XML para assinatura: %w", err)
	}

	infNFe := doc.FindElement("//infNFe")
	if infNFe == nil {
		return "", ErrXMLSemElementoRaiz
	}
	referencia := infNFe.SelectAttrValue("Id", "")

	canonico, err := elementoParaString(infNFe)
	if err != nil {
		return "", err
	}

	digest := sha1.Sum([]byte(canonico))
	digestB64 := base64.StdEncoding.EncodeToString(digest[:])

	signedInfo, err := montarSignedInfo(referencia, digestB64)
	if err != nil {
		return "", err
	}

	resumoSignedInfo := sha1.Sum([]byte(signedInfo))
	assinatura, err := rsa.SignPKCS1v15(rand.Reader, chave, crypto.SHA1, resumoSignedInfo[:])
	if err != nil {
		return "", fmt.Errorf("erro ao assinar XML: %w", err)
	}

	raiz := doc.Root()
	sig := raiz.CreateElement("Signature")
	sig.CreateAttr("xmlns", namespaceDSig)

	signedInfoDoc := etree.NewDocument()
	if err := signedInfoDoc.ReadFromString(signedInfo); err != nil {
		return "", fmt.Errorf("erro ao montar SignedInfo: %w", err)
	}
	sig.AddChild(signedInfoDoc.Root().Copy())

	sig.CreateElement("SignatureValue").SetText(base64.StdEncoding.EncodeToString(assinatura))

	keyInfo := sig.CreateElement("KeyInfo")
	x509Data := keyInfo.CreateElement("X509Data")
	x509Data.CreateElement("X509Certificate").SetText(base64.StdEncoding.EncodeToString(cert.Raw))

	assinado, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("erro ao serializar XML assinado: %w", err)
	}

	return assinado, nil
}

// ValidarXML implementa notafiscal.XMLGateway.ValidarXML. A checagem é
// estrutural: elemento raiz, chave de acesso e grupos obrigatórios do
// layout informado.
func (g *Gerador) ValidarXML(xml string, schema string) (bool, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		return false, fmt.Errorf("XML malformado: %w", err)
	}

	raiz := doc.Root()
	if raiz == nil || raiz.Tag != "NFe" {
		return false, nil
	}

	infNFe := raiz.SelectElement("infNFe")
	if infNFe == nil {
		return false, nil
	}

	id := infNFe.SelectAttrValue("Id", "")
	if !strings.HasPrefix(id, "NFe") || len(id) != 47 {
		return false, nil
	}

	for _, obrigatorio := range []string{"ide", "emit", "det", "total"} {
		if infNFe.SelectElement(obrigatorio) == nil {
			return false, nil
		}
	}

	return true, nil
}

// montarSignedInfo constrói o bloco SignedInfo da assinatura
func montarSignedInfo(referencia, digestB64 string) (string, error) {
	doc := etree.NewDocument()

	signedInfo := doc.CreateElement("SignedInfo")
	signedInfo.CreateAttr("xmlns", namespaceDSig)

	canon := signedInfo.CreateElement("CanonicalizationMethod")
	canon.CreateAttr("Algorithm", "http://www.w3.org/TR/2001/REC-xml-c14n-20010315")

	metodo := signedInfo.CreateElement("SignatureMethod")
	metodo.CreateAttr("Algorithm", "http://www.w3.org/2000/09/xmldsig#rsa-sha1")

	ref := signedInfo.CreateElement("Reference")
	ref.CreateAttr("URI", "#"+referencia)

	transforms := ref.CreateElement("Transforms")
	t1 := transforms.CreateElement("Transform")
	t1.CreateAttr("Algorithm", "http://www.w3.org/2000/09/xmldsig#enveloped-signature")
	t2 := transforms.CreateElement("Transform")
	t2.CreateAttr("Algorithm", "http://www.w3.org/TR/2001/REC-xml-c14n-20010315")

	digestMethod := ref.CreateElement("DigestMethod")
	digestMethod.CreateAttr("Algorithm", "http://www.w3.org/2000/09/xmldsig#sha1")

	ref.CreateElement("DigestValue").SetText(digestB64)

	return doc.WriteToString()
}

// elementoParaString serializa um elemento isolado
func elementoParaString(el *etree.Element) (string, error) {
	doc := etree.NewDocument()
	doc.AddChild(el.Copy())
	s, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("erro ao serializar elemento: %w", err)
	}
	return s, nil
}

// formatarDecimal formata um valor com o número de casas do layout
func formatarDecimal(valor float64, casas int) string {
	return strconv.FormatFloat(valor, 'f', casas, 64)
}
