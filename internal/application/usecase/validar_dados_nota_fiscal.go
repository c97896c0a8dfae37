package usecase

import (
	"context"
	"fmt"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/company"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/customer"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/product"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
)

// ValidarDadosInput agrega os dados de uma nota ainda não persistida
// para validação prévia
type ValidarDadosInput struct {
	EmpresaID string                    `json:"empresa_id"`
	ClienteID string                    `json:"cliente_id"`
	Tipo      notafiscal.TipoNotaFiscal `json:"tipo"`
	Itens     []ItemEmissao             `json:"itens"`
}

// ResultadoValidacaoDados é o relatório da validação prévia, com os
// totais que seriam usados na emissão
type ResultadoValidacaoDados struct {
	Valida         bool     `json:"valida"`
	Erros          []string `json:"erros"`
	Avisos         []string `json:"avisos"`
	ValorTotal     float64  `json:"valor_total"`
	ValorTributos  float64  `json:"valor_tributos"`
}

// ValidarDadosNotaFiscalUseCase roda o motor de validação sobre uma
// nota montada em memória, sem persistir nada
type ValidarDadosNotaFiscalUseCase struct {
	companyRepo   company.Repository
	customerRepo  customer.Repository
	productRepo   product.Repository
	calculadora   *notafiscal.CalculadoraTributos
	validadorNFe  *notafiscal.ValidadorNFe
	validadorNFSe *notafiscal.ValidadorNFSe
	logger        logger.Logger
}

// NewValidarDadosNotaFiscalUseCase cria o caso de uso de validação prévia
func NewValidarDadosNotaFiscalUseCase(
	companyRepo company.Repository,
	customerRepo customer.Repository,
	productRepo product.Repository,
	log logger.Logger,
) *ValidarDadosNotaFiscalUseCase {
	return &ValidarDadosNotaFiscalUseCase{
		companyRepo:   companyRepo,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		calculadora:   notafiscal.NewCalculadoraTributos(),
		validadorNFe:  notafiscal.NewValidadorNFe(),
		validadorNFSe: notafiscal.NewValidadorNFSe(),
		logger:        log,
	}
}

// Execute valida os dados como se a nota fosse emitida agora
func (uc *ValidarDadosNotaFiscalUseCase) Execute(ctx context.Context, input ValidarDadosInput) (*ResultadoValidacaoDados, error) {
	if input.Tipo != notafiscal.TipoNFe && input.Tipo != notafiscal.TipoNFSe {
		return nil, ErrTipoNotaInvalido
	}

	empresa, err := uc.companyRepo.FindByID(ctx, input.EmpresaID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar empresa: %w", err)
	}
	if empresa == nil {
		return nil, ErrEmpresaNaoEncontrada
	}

	cliente, err := uc.customerRepo.FindByID(ctx, input.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}
	if cliente == nil {
		return nil, ErrClienteNaoEncontrado
	}

	// nota transitória apenas para o motor de validação; número e
	// série reais só são alocados na emissão
	nota, err := notafiscal.NewNotaFiscal(
		1, 1, input.Tipo, empresa.ID, cliente.ID, 0, 0,
		notafiscal.FinalidadeNormal,
	)
	if err != nil {
		return nil, err
	}

	var itens []*notafiscal.ItemNotaFiscal
	valorTotal := 0.0
	valorTributos := 0.0
	for idx, pedido := range input.Itens {
		produto, err := uc.productRepo.FindByID(ctx, pedido.ProdutoID)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar produto: %w", err)
		}
		if produto == nil {
			return nil, fmt.Errorf("%w: %s", ErrProdutoNaoEncontrado, pedido.ProdutoID)
		}

		item, err := uc.calculadora.MontarItem(nota.ID, idx+1, produto, pedido.Quantidade, pedido.ValorUnitario)
		if err != nil {
			return nil, err
		}
		if pedido.ValorDesconto > 0 {
			if err := item.AplicarDesconto(pedido.ValorDesconto); err != nil {
				return nil, err
			}
		}
		if pedido.CodigoServico != "" {
			item.DefinirCodigoServico(pedido.CodigoServico)
		}

		valorTotal += item.ValorTotal
		valorTributos += item.CalcularTotalTributos()
		if err := nota.AdicionarItem(item.ID); err != nil {
			return nil, err
		}
		itens = append(itens, item)
	}
	nota.ValorTotal = valorTotal
	nota.ValorTributos = valorTributos

	// a validação prévia roda antes da geração da chave; só a regra de
	// chave presente é sensível a isso e pertence à transição de estado
	resultado := uc.validadorNFe.ValidarParaEnvio(nota, empresa, cliente, itens)
	if input.Tipo == notafiscal.TipoNFSe {
		resultadoNFSe := uc.validadorNFSe.ValidarCompleta(nota, empresa, itens, notafiscal.DadosNFSe{})
		resultado.Erros = append(resultado.Erros, resultadoNFSe.Erros...)
		resultado.Avisos = append(resultado.Avisos, resultadoNFSe.Avisos...)
		resultado.Valida = len(resultado.Erros) == 0
	}

	uc.logger.Debug("validação prévia concluída",
		"empresa_id", empresa.ID, "valida", resultado.Valida,
		"erros", len(resultado.Erros), "avisos", len(resultado.Avisos))

	return &ResultadoValidacaoDados{
		Valida:        resultado.Valida,
		Erros:         resultado.Erros,
		Avisos:        resultado.Avisos,
		ValorTotal:    valorTotal,
		ValorTributos: valorTributos,
	}, nil
}
