// Package sefaz implementa a comunicação com os webservices da SEFAZ.
// Em homologação as respostas são simuladas localmente; em produção as
// requisições SOAP são enviadas aos endpoints oficiais.
package sefaz

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
)

const (
	baseURLProducao     = "https://nfe.fazenda.sp.gov.br/ws"
	baseURLHomologacao  = "https://homologacao.nfe.fazenda.sp.gov.br/ws"
	ambienteProducao    = "producao"
	ambienteHomologacao = "homologacao"
)

// Client fala com os webservices da SEFAZ-SP
type Client struct {
	ambiente   string
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient cria um cliente SEFAZ para o ambiente informado. Qualquer
// valor diferente de "producao" é tratado como homologação.
func NewClient(ambiente string, log logger.Logger) *Client {
	baseURL := baseURLHomologacao
	if ambiente == ambienteProducao {
		baseURL = baseURLProducao
	} else {
		ambiente = ambienteHomologacao
	}

	return &Client{
		ambiente: ambiente,
		baseURL:  baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log,
	}
}

// AutorizarNFe implementa notafiscal.SefazGateway.AutorizarNFe
func (c *Client) AutorizarNFe(ctx context.Context, xmlAssinado string) (*notafiscal.RespostaSefaz, error) {
	c.logger.Info("enviando NF-e para autorização na SEFAZ", "ambiente", c.ambiente)

	if c.ambiente == ambienteHomologacao {
		return c.simularAutorizacao(), nil
	}

	corpo, err := c.enviarSOAP(ctx,
		c.baseURL+"/nfeautorizacao/NFeAutorizacao4.asmx",
		"http://www.portalfiscal.inf.br/nfe/wsdl/NFeAutorizacao4/nfeAutorizacaoLote",
		xmlAssinado)
	if err != nil {
		c.logger.Error("erro ao autorizar NF-e na SEFAZ", "error", err)
		return respostaErroComunicacao(err), nil
	}

	return c.interpretarAutorizacao(corpo), nil
}

// CancelarNFe implementa notafiscal.SefazGateway.CancelarNFe
func (c *Client) CancelarNFe(ctx context.Context, chaveAcesso, motivo string) (*notafiscal.RespostaSefaz, error) {
	c.logger.Info("enviando cancelamento de NF-e para SEFAZ", "chave_acesso", chaveAcesso)

	if c.ambiente == ambienteHomologacao {
		return c.simularCancelamento(), nil
	}

	corpo, err := c.enviarSOAP(ctx,
		c.baseURL+"/nfecancelamento/NfeCancelamento4.asmx",
		"http://www.portalfiscal.inf.br/nfe/wsdl/NfeCancelamento4/nfeCancelamentoNF",
		c.montarXMLCancelamento(chaveAcesso, motivo))
	if err != nil {
		c.logger.Error("erro ao cancelar NF-e na SEFAZ", "error", err)
		return respostaErroComunicacao(err), nil
	}

	return c.interpretarCancelamento(corpo), nil
}

// ConsultarStatusNFe implementa notafiscal.SefazGateway.ConsultarStatusNFe
func (c *Client) ConsultarStatusNFe(ctx context.Context, chaveAcesso string) (*notafiscal.RespostaSefaz, error) {
	c.logger.Debug("consultando situação de NF-e na SEFAZ", "chave_acesso", chaveAcesso)

	if c.ambiente == ambienteHomologacao {
		return c.simularConsulta(), nil
	}

	corpo, err := c.enviarSOAP(ctx,
		c.baseURL+"/nfeconsultaprotocolo/NfeConsulta4.asmx",
		"http://www.portalfiscal.inf.br/nfe/wsdl/NfeConsulta4/nfeConsultaNF",
		c.montarXMLConsulta(chaveAcesso))
	if err != nil {
		c.logger.Error("erro ao consultar NF-e na SEFAZ", "error", err)
		return respostaErroComunicacao(err), nil
	}

	return c.interpretarConsulta(corpo), nil
}

// enviarSOAP envia uma requisição SOAP e devolve o corpo da resposta
func (c *Client) enviarSOAP(ctx context.Context, url, soapAction, corpo string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(corpo))
	if err != nil {
		return "", fmt.Errorf("erro ao montar requisição: %w", err)
	}

	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", soapAction)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro ao comunicar com SEFAZ: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("erro ao ler resposta da SEFAZ: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("SEFAZ respondeu com status %d", resp.StatusCode)
	}

	return string(data), nil
}

func (c *Client) simularAutorizacao() *notafiscal.RespostaSefaz {
	return &notafiscal.RespostaSefaz{
		Sucesso:     true,
		Protocolo:   novoProtocolo(),
		Mensagem:    "Autorizado o uso da NF-e",
		XMLResposta: "<retEnviNFe><cStat>100</cStat></retEnviNFe>",
	}
}

func (c *Client) simularCancelamento() *notafiscal.RespostaSefaz {
	return &notafiscal.RespostaSefaz{
		Sucesso:     true,
		Protocolo:   novoProtocolo(),
		Mensagem:    "Cancelamento de NF-e homologado",
		XMLResposta: "<retEvento><cStat>135</cStat></retEvento>",
	}
}

func (c *Client) simularConsulta() *notafiscal.RespostaSefaz {
	return &notafiscal.RespostaSefaz{
		Sucesso:     true,
		Mensagem:    "Autorizado o uso da NF-e",
		XMLResposta: "<retConsSitNFe><cStat>100</cStat></retConsSitNFe>",
	}
}

// interpretarAutorizacao extrai o resultado do retorno de autorização.
// O parser cobre os campos usados pela aplicação; o XML completo fica
// disponível na resposta para auditoria.
func (c *Client) interpretarAutorizacao(corpo string) *notafiscal.RespostaSefaz {
	if strings.Contains(corpo, "<cStat>100</cStat>") {
		return &notafiscal.RespostaSefaz{
			Sucesso:     true,
			Protocolo:   extrairTag(corpo, "nProt"),
			Mensagem:    "Autorizado o uso da NF-e",
			XMLResposta: corpo,
		}
	}

	motivo := extrairTag(corpo, "xMotivo")
	if motivo == "" {
		motivo = "Retorno da SEFAZ não reconhecido"
	}
	return &notafiscal.RespostaSefaz{
		Sucesso:     false,
		Mensagem:    motivo,
		XMLResposta: corpo,
		Erros:       []string{motivo},
	}
}

func (c *Client) interpretarCancelamento(corpo string) *notafiscal.RespostaSefaz {
	if strings.Contains(corpo, "<cStat>135</cStat>") {
		return &notafiscal.RespostaSefaz{
			Sucesso:     true,
			Protocolo:   extrairTag(corpo, "nProt"),
			Mensagem:    "Cancelamento de NF-e homologado",
			XMLResposta: corpo,
		}
	}

	motivo := extrairTag(corpo, "xMotivo")
	if motivo == "" {
		motivo = "Retorno da SEFAZ não reconhecido"
	}
	return &notafiscal.RespostaSefaz{
		Sucesso:     false,
		Mensagem:    motivo,
		XMLResposta: corpo,
		Erros:       []string{motivo},
	}
}

func (c *Client) interpretarConsulta(corpo string) *notafiscal.RespostaSefaz {
	motivo := extrairTag(corpo, "xMotivo")
	if motivo == "" {
		motivo = "Retorno da SEFAZ não reconhecido"
	}
	return &notafiscal.RespostaSefaz{
		Sucesso:     strings.Contains(corpo, "<cStat>100</cStat>"),
		Protocolo:   extrairTag(corpo, "nProt"),
		Mensagem:    motivo,
		XMLResposta: corpo,
	}
}

func (c *Client) montarXMLCancelamento(chaveAcesso, motivo string) string {
	return fmt.Sprintf(
		`<envEvento xmlns="http://www.portalfiscal.inf.br/nfe" versao="1.00"><evento><infEvento><chNFe>%s</chNFe><tpEvento>110111</tpEvento><detEvento><xJust>%s</xJust></detEvento></infEvento></evento></envEvento>`,
		chaveAcesso, motivo)
}

func (c *Client) montarXMLConsulta(chaveAcesso string) string {
	return fmt.Sprintf(
		`<consSitNFe xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00"><tpAmb>1</tpAmb><xServ>CONSULTAR</xServ><chNFe>%s</chNFe></consSitNFe>`,
		chaveAcesso)
}

// respostaErroComunicacao converte uma falha de comunicação em resposta
// sem sucesso, mantendo o erro disponível para o chamador
func respostaErroComunicacao(err error) *notafiscal.RespostaSefaz {
	msg := fmt.Sprintf("erro de comunicação com a SEFAZ: %v", err)
	return &notafiscal.RespostaSefaz{
		Sucesso:  false,
		Mensagem: msg,
		Erros:    []string{msg},
	}
}

// extrairTag devolve o conteúdo da primeira ocorrência da tag informada
func extrairTag(corpo, tag string) string {
	abre := "<" + tag + ">"
	fecha := "</" + tag + ">"

	inicio := strings.Index(corpo, abre)
	if inicio < 0 {
		return ""
	}
	inicio += len(abre)

	fim := strings.Index(corpo[inicio:], fecha)
	if fim < 0 {
		return ""
	}

	return corpo[inicio : inicio+fim]
}

// novoProtocolo gera um número de protocolo no padrão das simulações
func novoProtocolo() string {
	return fmt.Sprintf("SP%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
