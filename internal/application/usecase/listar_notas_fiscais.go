package usecase

import (
	"context"
	"fmt"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
)

// ListarNotasInput define os filtros e a paginação da listagem
type ListarNotasInput struct {
	EmpresaID string                      `json:"empresa_id"`
	Status    notafiscal.StatusNotaFiscal `json:"status,omitempty"`
	Page      int                         `json:"page"`
	PageSize  int                         `json:"page_size"`
}

// ListagemNotas é o resultado paginado da listagem
type ListagemNotas struct {
	Notas    []*notafiscal.NotaFiscal `json:"notas"`
	Total    int                      `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
}

// ListarNotasFiscaisUseCase lista as notas de uma empresa com
// paginação e filtro opcional por status
type ListarNotasFiscaisUseCase struct {
	notaRepo notafiscal.Repository
	logger   logger.Logger
}

// NewListarNotasFiscaisUseCase cria o caso de uso de listagem
func NewListarNotasFiscaisUseCase(notaRepo notafiscal.Repository, log logger.Logger) *ListarNotasFiscaisUseCase {
	return &ListarNotasFiscaisUseCase{notaRepo: notaRepo, logger: log}
}

// Execute lista as notas fiscais conforme os filtros
func (uc *ListarNotasFiscaisUseCase) Execute(ctx context.Context, input ListarNotasInput) (*ListagemNotas, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.PageSize < 1 || input.PageSize > 100 {
		input.PageSize = 20
	}
	offset := (input.Page - 1) * input.PageSize

	var notas []*notafiscal.NotaFiscal
	var err error
	if input.Status != "" {
		notas, err = uc.notaRepo.FindByStatus(ctx, input.EmpresaID, input.Status, input.PageSize, offset)
	} else {
		notas, err = uc.notaRepo.List(ctx, input.EmpresaID, input.PageSize, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao listar notas fiscais: %w", err)
	}

	total, err := uc.notaRepo.Count(ctx, input.EmpresaID)
	if err != nil {
		return nil, fmt.Errorf("erro ao contar notas fiscais: %w", err)
	}

	return &ListagemNotas{
		Notas:    notas,
		Total:    total,
		Page:     input.Page,
		PageSize: input.PageSize,
	}, nil
}
