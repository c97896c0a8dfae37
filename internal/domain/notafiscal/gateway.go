package notafiscal

import (
	"context"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
)

// RespostaSefaz é o resultado de uma operação junto à SEFAZ
type RespostaSefaz struct {
	Sucesso     bool     `json:"sucesso"`
	Protocolo   string   `json:"protocolo,omitempty"`
	Mensagem    string   `json:"mensagem"`
	XMLResposta string   `json:"xml_resposta,omitempty"`
	Erros       []string `json:"erros,omitempty"`
}

// RespostaNFSe é o resultado de uma operação junto à prefeitura
type RespostaNFSe struct {
	Sucesso             bool     `json:"sucesso"`
	Numero              string   `json:"numero,omitempty"`
	CodigoVerificacao   string   `json:"codigo_verificacao,omitempty"`
	Mensagem            string   `json:"mensagem"`
	XMLResposta         string   `json:"xml_resposta,omitempty"`
	Erros               []string `json:"erros,omitempty"`
}

// SefazGateway abstrai a comunicação com os webservices da SEFAZ
type SefazGateway interface {
	// AutorizarNFe envia o XML assinado para autorização
	AutorizarNFe(ctx context.Context, xmlAssinado string) (*RespostaSefaz, error)

	// CancelarNFe solicita o cancelamento de uma nota autorizada
	CancelarNFe(ctx context.Context, chaveAcesso, motivo string) (*RespostaSefaz, error)

	// ConsultarStatusNFe consulta a situação de uma nota pela chave
	ConsultarStatusNFe(ctx context.Context, chaveAcesso string) (*RespostaSefaz, error)
}

// NFSeGateway abstrai a comunicação com o webservice municipal de NFS-e
type NFSeGateway interface {
	// AutorizarNFSe envia o XML para autorização na prefeitura
	AutorizarNFSe(ctx context.Context, xml string) (*RespostaNFSe, error)

	// CancelarNFSe solicita o cancelamento de uma NFS-e emitida
	CancelarNFSe(ctx context.Context, numero, codigoVerificacao, motivo string) (*RespostaNFSe, error)

	// ConsultarStatusNFSe consulta a situação de uma NFS-e pelo número
	ConsultarStatusNFSe(ctx context.Context, numero string) (*RespostaNFSe, error)
}

// XMLGateway abstrai a geração, assinatura e validação do XML da nota
type XMLGateway interface {
	// GerarXML monta o XML da nota a partir do agregado e seus itens
	GerarXML(nota *NotaFiscal, itens []*ItemNotaFiscal) (string, error)

	// AssinarXML assina digitalmente o XML com o certificado informado
	AssinarXML(xml string, certificado valueobject.CertificadoDigital) (string, error)

	// ValidarXML valida o XML contra o schema oficial
	ValidarXML(xml string, schema string) (bool, error)
}

// PDFGateway gera a representação gráfica (DANFE) da nota autorizada
type PDFGateway interface {
	GerarDANFE(ctx context.Context, nota *NotaFiscal, itens []*ItemNotaFiscal) ([]byte, error)
}

// EmailGateway envia a nota autorizada ao destinatário
type EmailGateway interface {
	EnviarNotaFiscal(ctx context.Context, destinatario string, nota *NotaFiscal, xmlAssinado string, danfe []byte) error
}

// StorageGateway arquiva os documentos gerados para a nota
type StorageGateway interface {
	ArmazenarXML(ctx context.Context, chaveAcesso, xmlAssinado string) (string, error)
	ArmazenarDANFE(ctx context.Context, chaveAcesso string, danfe []byte) (string, error)
}
