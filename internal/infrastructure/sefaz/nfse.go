package sefaz

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
)

// NFSeClient fala com o webservice municipal de NFS-e. Cada prefeitura
// tem seu próprio padrão de integração; fora de produção as respostas
// são simuladas.
type NFSeClient struct {
	ambiente string
	logger   logger.Logger
}

// NewNFSeClient cria um cliente de NFS-e para o ambiente informado
func NewNFSeClient(ambiente string, log logger.Logger) *NFSeClient {
	if ambiente != ambienteProducao {
		ambiente = ambienteHomologacao
	}
	return &NFSeClient{
		ambiente: ambiente,
		logger:   log,
	}
}

// AutorizarNFSe implementa notafiscal.NFSeGateway.AutorizarNFSe
func (c *NFSeClient) AutorizarNFSe(ctx context.Context, xml string) (*notafiscal.RespostaNFSe, error) {
	c.logger.Info("enviando NFS-e para autorização na prefeitura", "ambiente", c.ambiente)

	if c.ambiente == ambienteHomologacao {
		return &notafiscal.RespostaNFSe{
			Sucesso:           true,
			Numero:            fmt.Sprintf("%d", 100000+rand.Intn(900000)),
			CodigoVerificacao: novoCodigoVerificacao(),
			Mensagem:          "NFS-e emitida com sucesso",
		}, nil
	}

	// TODO: integrar com o padrão ABRASF quando a primeira prefeitura
	// de produção for homologada
	return &notafiscal.RespostaNFSe{
		Sucesso:  false,
		Mensagem: "integração de produção com a prefeitura não configurada",
		Erros:    []string{"integração de produção com a prefeitura não configurada"},
	}, nil
}

// CancelarNFSe implementa notafiscal.NFSeGateway.CancelarNFSe
func (c *NFSeClient) CancelarNFSe(ctx context.Context, numero, codigoVerificacao, motivo string) (*notafiscal.RespostaNFSe, error) {
	c.logger.Info("enviando cancelamento de NFS-e para prefeitura", "numero", numero)

	if c.ambiente == ambienteHomologacao {
		return &notafiscal.RespostaNFSe{
			Sucesso:  true,
			Numero:   numero,
			Mensagem: "NFS-e cancelada com sucesso",
		}, nil
	}

	return &notafiscal.RespostaNFSe{
		Sucesso:  false,
		Mensagem: "integração de produção com a prefeitura não configurada",
		Erros:    []string{"integração de produção com a prefeitura não configurada"},
	}, nil
}

// ConsultarStatusNFSe implementa notafiscal.NFSeGateway.ConsultarStatusNFSe
func (c *NFSeClient) ConsultarStatusNFSe(ctx context.Context, numero string) (*notafiscal.RespostaNFSe, error) {
	c.logger.Debug("consultando situação de NFS-e na prefeitura", "numero", numero)

	if c.ambiente == ambienteHomologacao {
		return &notafiscal.RespostaNFSe{
			Sucesso:  true,
			Numero:   numero,
			Mensagem: "NFS-e normal",
		}, nil
	}

	return &notafiscal.RespostaNFSe{
		Sucesso:  false,
		Mensagem: "integração de produção com a prefeitura não configurada",
		Erros:    []string{"integração de produção com a prefeitura não configurada"},
	}, nil
}

// novoCodigoVerificacao gera um código alfanumérico de oito caracteres
func novoCodigoVerificacao() string {
	const alfabeto = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codigo := make([]byte, 8)
	for i := range codigo {
		codigo[i] = alfabeto[rand.Intn(len(alfabeto))]
	}
	return string(codigo)
}
