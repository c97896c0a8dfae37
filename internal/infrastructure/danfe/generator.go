package danfe

import (
	"bytes"
	"context"
	"fmt"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
)

// Gerador produz o DANFE simplificado da nota autorizada.
// A saída atual é textual; a troca por um renderizador PDF não altera
// o contrato do gateway.
type Gerador struct {
	logger logger.Logger
}

// NewGerador cria um novo gerador de DANFE
func NewGerador(log logger.Logger) *Gerador {
	return &Gerador{logger: log}
}

// GerarDANFE implementa notafiscal.PDFGateway
func (g *Gerador) GerarDANFE(ctx context.Context, nota *notafiscal.NotaFiscal, itens []*notafiscal.ItemNotaFiscal) ([]byte, error) {
	if nota == nil {
		return nil, fmt.Errorf("nota fiscal não informada")
	}

	var buf bytes.Buffer
	buf.WriteString("DANFE - Documento Auxiliar da Nota Fiscal Eletrônica\n")
	buf.WriteString("====================================================\n")
	fmt.Fprintf(&buf, "Chave de acesso: %s\n", nota.ChaveAcesso)
	fmt.Fprintf(&buf, "Número: %d  Série: %d  Tipo: %s\n", nota.Numero, nota.Serie, nota.Tipo)
	fmt.Fprintf(&buf, "Emissão: %s\n", nota.DataEmissao.Format("02/01/2006 15:04:05"))
	if nota.ProtocoloAutorizacao != "" {
		fmt.Fprintf(&buf, "Protocolo de autorização: %s\n", nota.ProtocoloAutorizacao)
	}
	buf.WriteString("----------------------------------------------------\n")
	for _, item := range itens {
		fmt.Fprintf(&buf, "%03d %-40s %10.4f x %12.2f = %12.2f\n",
			item.NumeroItem, item.Descricao, item.Quantidade, item.ValorUnitario, item.ValorTotal)
	}
	buf.WriteString("----------------------------------------------------\n")
	fmt.Fprintf(&buf, "Valor total: R$ %.2f\n", nota.ValorTotal)
	fmt.Fprintf(&buf, "Tributos aproximados: R$ %.2f\n", nota.ValorTributos)

	g.logger.Debug("DANFE gerado", "chave_acesso", nota.ChaveAcesso, "bytes", buf.Len())
	return buf.Bytes(), nil
}
