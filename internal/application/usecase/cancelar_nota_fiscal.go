package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
)

var ErrCancelamentoNegado = errors.New("cancelamento negado pela SEFAZ")

// CancelarNotaFiscalUseCase solicita o cancelamento de uma nota
// autorizada junto à SEFAZ e aplica o resultado no agregado
type CancelarNotaFiscalUseCase struct {
	notaRepo     notafiscal.Repository
	sefazGateway notafiscal.SefazGateway
	logger       logger.Logger
}

// NewCancelarNotaFiscalUseCase cria o caso de uso de cancelamento
func NewCancelarNotaFiscalUseCase(
	notaRepo notafiscal.Repository,
	sefazGateway notafiscal.SefazGateway,
	log logger.Logger,
) *CancelarNotaFiscalUseCase {
	return &CancelarNotaFiscalUseCase{
		notaRepo:     notaRepo,
		sefazGateway: sefazGateway,
		logger:       log,
	}
}

// Execute cancela a nota identificada, com o motivo informado
func (uc *CancelarNotaFiscalUseCase) Execute(ctx context.Context, notaID, motivo string) (*notafiscal.NotaFiscal, error) {
	nota, err := uc.notaRepo.FindByID(ctx, notaID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar nota fiscal: %w", err)
	}
	if nota == nil {
		return nil, ErrNotaNaoEncontrada
	}

	// a máquina de estados barra cancelamento fora de AUTORIZADA antes
	// de qualquer ida à SEFAZ
	if !nota.EstaAutorizada() {
		return nil, notafiscal.ErrNotaNaoAutorizada
	}

	resposta, err := uc.sefazGateway.CancelarNFe(ctx, nota.ChaveAcesso, motivo)
	if err != nil {
		return nil, fmt.Errorf("erro na comunicação com a SEFAZ: %w", err)
	}
	if !resposta.Sucesso {
		uc.logger.Warn("cancelamento negado",
			"nota_id", nota.ID, "mensagem", resposta.Mensagem)
		return nil, fmt.Errorf("%w: %s", ErrCancelamentoNegado, resposta.Mensagem)
	}

	if err := nota.Cancelar(motivo); err != nil {
		return nil, err
	}
	if err := uc.notaRepo.Update(ctx, nota); err != nil {
		return nil, fmt.Errorf("erro ao atualizar nota fiscal: %w", err)
	}

	uc.logger.Info("nota fiscal cancelada", "nota_id", nota.ID, "motivo", motivo)
	return nota, nil
}
