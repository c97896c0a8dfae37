package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
)

// StatusNotaFiscal é o retorno da consulta de situação de uma nota
type StatusNotaFiscal struct {
	ID                 string                      `json:"id"`
	Numero             int64                       `json:"numero"`
	Serie              int                         `json:"serie"`
	Tipo               notafiscal.TipoNotaFiscal   `json:"tipo"`
	ChaveAcesso        string                      `json:"chave_acesso,omitempty"`
	Status             notafiscal.StatusNotaFiscal `json:"status"`
	DataEmissao        time.Time                   `json:"data_emissao"`
	DataUltimaConsulta time.Time                   `json:"data_ultima_consulta"`
	Protocolo          string                      `json:"protocolo,omitempty"`
	Motivo             string                      `json:"motivo,omitempty"`
	ValorTotal         float64                     `json:"valor_total"`
	SituacaoSefaz      string                      `json:"situacao_sefaz,omitempty"`
}

// ConsultarStatusNotaFiscalUseCase consulta a situação de uma nota,
// combinando o estado local com a resposta da SEFAZ quando a nota já
// foi transmitida
type ConsultarStatusNotaFiscalUseCase struct {
	notaRepo     notafiscal.Repository
	sefazGateway notafiscal.SefazGateway
	logger       logger.Logger
}

// NewConsultarStatusNotaFiscalUseCase cria o caso de uso de consulta
func NewConsultarStatusNotaFiscalUseCase(
	notaRepo notafiscal.Repository,
	sefazGateway notafiscal.SefazGateway,
	log logger.Logger,
) *ConsultarStatusNotaFiscalUseCase {
	return &ConsultarStatusNotaFiscalUseCase{
		notaRepo:     notaRepo,
		sefazGateway: sefazGateway,
		logger:       log,
	}
}

// Execute consulta a situação da nota pelo ID
func (uc *ConsultarStatusNotaFiscalUseCase) Execute(ctx context.Context, notaID string) (*StatusNotaFiscal, error) {
	nota, err := uc.notaRepo.FindByID(ctx, notaID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar nota fiscal: %w", err)
	}
	if nota == nil {
		return nil, ErrNotaNaoEncontrada
	}

	status := &StatusNotaFiscal{
		ID:                 nota.ID,
		Numero:             nota.Numero,
		Serie:              nota.Serie,
		Tipo:               nota.Tipo,
		ChaveAcesso:        nota.ChaveAcesso,
		Status:             nota.Status,
		DataEmissao:        nota.DataEmissao,
		DataUltimaConsulta: time.Now(),
		Protocolo:          nota.ProtocoloAutorizacao,
		Motivo:             nota.MotivoRejeicao,
		ValorTotal:         nota.ValorTotal,
	}

	// notas ainda não transmitidas não têm situação na SEFAZ
	if nota.ChaveAcesso == "" || nota.Status == notafiscal.StatusRascunho ||
		nota.Status == notafiscal.StatusAguardandoEnvio {
		return status, nil
	}

	resposta, err := uc.sefazGateway.ConsultarStatusNFe(ctx, nota.ChaveAcesso)
	if err != nil {
		// a consulta remota é complementar: o estado local continua válido
		uc.logger.Warn("falha na consulta de situação junto à SEFAZ",
			"nota_id", nota.ID, "erro", err.Error())
		return status, nil
	}

	status.SituacaoSefaz = resposta.Mensagem
	if resposta.Protocolo != "" {
		status.Protocolo = resposta.Protocolo
	}

	return status, nil
}
