package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GuiEstevamCorrea/AxFisco/internal/adapter/api/dto"
	"github.com/GuiEstevamCorrea/AxFisco/internal/adapter/repository"
	"github.com/GuiEstevamCorrea/AxFisco/internal/application/usecase"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
)

// NotaFiscalController gerencia as requisições do ciclo de emissão de
// notas fiscais
type NotaFiscalController struct {
	emitir    *usecase.EmitirNotaFiscalUseCase
	validar   *usecase.ValidarDadosNotaFiscalUseCase
	consultar *usecase.ConsultarStatusNotaFiscalUseCase
	cancelar  *usecase.CancelarNotaFiscalUseCase
	listar    *usecase.ListarNotasFiscaisUseCase
	notaRepo  notafiscal.Repository
	itemRepo  notafiscal.ItemRepository
	logger    logger.Logger
}

// NewNotaFiscalController cria uma nova instância de NotaFiscalController
func NewNotaFiscalController(
	emitir *usecase.EmitirNotaFiscalUseCase,
	validar *usecase.ValidarDadosNotaFiscalUseCase,
	consultar *usecase.ConsultarStatusNotaFiscalUseCase,
	cancelar *usecase.CancelarNotaFiscalUseCase,
	listar *usecase.ListarNotasFiscaisUseCase,
	notaRepo notafiscal.Repository,
	itemRepo notafiscal.ItemRepository,
	logger logger.Logger,
) *NotaFiscalController {
	return &NotaFiscalController{
		emitir:    emitir,
		validar:   validar,
		consultar: consultar,
		cancelar:  cancelar,
		listar:    listar,
		notaRepo:  notaRepo,
		itemRepo:  itemRepo,
		logger:    logger,
	}
}

// cadastroNaoEncontrado identifica falhas de emissão causadas por
// empresa, cliente ou produto inexistentes, vindas do caso de uso ou
// da camada de persistência
func cadastroNaoEncontrado(err error) bool {
	return errors.Is(err, usecase.ErrEmpresaNaoEncontrada) ||
		errors.Is(err, usecase.ErrClienteNaoEncontrado) ||
		errors.Is(err, usecase.ErrProdutoNaoEncontrado) ||
		errors.Is(err, repository.ErrCompanyNotFound) ||
		errors.Is(err, repository.ErrCustomerNotFound) ||
		errors.Is(err, repository.ErrProductNotFound)
}

// Emitir emite uma nota fiscal de ponta a ponta
// @Summary Emitir nota fiscal
// @Description Monta, valida, assina e transmite uma NF-e ou NFS-e
// @Tags notas-fiscais
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param nota body dto.EmitirNotaFiscalRequest true "Dados da emissão"
// @Success 201 {object} usecase.NotaFiscalEmitida
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notas-fiscais [post]
func (c *NotaFiscalController) Emitir(ctx *gin.Context) {
	var req dto.EmitirNotaFiscalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	resultado, err := c.emitir.Execute(ctx, req.ToEmitirInput())
	if err != nil {
		switch {
		case cadastroNaoEncontrado(err):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cadastro não encontrado", err.Error()))
		case errors.Is(err, usecase.ErrNotaInvalida):
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "nota reprovada na validação", err.Error()))
		case errors.Is(err, usecase.ErrTipoNotaInvalido), errors.Is(err, usecase.ErrNotaSemItens):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "emissão inválida", err.Error()))
		default:
			c.logger.Error("erro ao emitir nota fiscal", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao emitir nota fiscal", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusCreated, resultado)
}

// Validar executa a validação prévia dos dados de uma nota
// @Summary Validar dados de nota
// @Description Roda o motor de validação sobre os dados sem persistir nada
// @Tags notas-fiscais
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param nota body dto.ValidarDadosRequest true "Dados para validação"
// @Success 200 {object} usecase.ResultadoValidacaoDados
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notas-fiscais/validar [post]
func (c *NotaFiscalController) Validar(ctx *gin.Context) {
	var req dto.ValidarDadosRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	resultado, err := c.validar.Execute(ctx, req.ToValidarInput())
	if err != nil {
		switch {
		case cadastroNaoEncontrado(err):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cadastro não encontrado", err.Error()))
		case errors.Is(err, usecase.ErrTipoNotaInvalido), errors.Is(err, usecase.ErrNotaSemItens):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "requisição inválida", err.Error()))
		default:
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao validar dados", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusOK, resultado)
}

// Get retorna uma nota fiscal com seus itens
// @Summary Buscar nota fiscal
// @Description Retorna a nota e seus itens pelo ID
// @Tags notas-fiscais
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da nota fiscal"
// @Success 200 {object} dto.NotaFiscalDetalheResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notas-fiscais/{id} [get]
func (c *NotaFiscalController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	nota, err := c.notaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotaFiscalNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "nota fiscal não encontrada", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar nota fiscal", err.Error()))
		return
	}

	itens, err := c.itemRepo.FindByNotaFiscal(ctx, nota.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar itens da nota", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNotaFiscalDetalheResponse(nota, itens))
}

// GetXML retorna o XML assinado da nota
// @Summary Baixar XML da nota
// @Description Retorna o XML assinado (ou o original, se ainda não assinado)
// @Tags notas-fiscais
// @Produce xml
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da nota fiscal"
// @Success 200 {string} string "XML da nota"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notas-fiscais/{id}/xml [get]
func (c *NotaFiscalController) GetXML(ctx *gin.Context) {
	id := ctx.Param("id")

	nota, err := c.notaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotaFiscalNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "nota fiscal não encontrada", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar nota fiscal", err.Error()))
		return
	}

	xml := nota.XMLAssinado
	if xml == "" {
		xml = nota.XMLOriginal
	}
	if xml == "" {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "nota ainda não possui XML gerado", ""))
		return
	}

	ctx.Data(http.StatusOK, "application/xml", []byte(xml))
}

// List lista as notas fiscais de uma empresa
// @Summary Listar notas fiscais
// @Description Lista as notas de uma empresa com paginação e filtro por status
// @Tags notas-fiscais
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param empresa_id query string true "ID da empresa"
// @Param status query string false "Filtrar por status"
// @Param page query int false "Número da página (padrão: 1)"
// @Param page_size query int false "Tamanho da página (padrão: 20)"
// @Success 200 {object} dto.NotaFiscalListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notas-fiscais [get]
func (c *NotaFiscalController) List(ctx *gin.Context) {
	empresaID := ctx.Query("empresa_id")
	if empresaID == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "empresa_id não informado", ""))
		return
	}

	pagination := paginationFromQuery(ctx)

	listagem, err := c.listar.Execute(ctx, usecase.ListarNotasInput{
		EmpresaID: empresaID,
		Status:    notafiscal.StatusNotaFiscal(ctx.Query("status")),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar notas fiscais", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNotaFiscalListResponse(listagem))
}

// ConsultarStatus consulta a situação de uma nota na SEFAZ
// @Summary Consultar situação da nota
// @Description Combina o estado local com a resposta da SEFAZ
// @Tags notas-fiscais
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da nota fiscal"
// @Success 200 {object} usecase.StatusNotaFiscal
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notas-fiscais/{id}/status [get]
func (c *NotaFiscalController) ConsultarStatus(ctx *gin.Context) {
	id := ctx.Param("id")

	status, err := c.consultar.Execute(ctx, id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotaNaoEncontrada) || errors.Is(err, repository.ErrNotaFiscalNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "nota fiscal não encontrada", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao consultar situação", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, status)
}

// Cancelar cancela uma nota autorizada
// @Summary Cancelar nota fiscal
// @Description Solicita o cancelamento de uma nota autorizada na SEFAZ
// @Tags notas-fiscais
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da nota fiscal"
// @Param motivo body dto.CancelarNotaFiscalRequest true "Motivo do cancelamento"
// @Success 200 {object} dto.NotaFiscalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notas-fiscais/{id}/cancelar [post]
func (c *NotaFiscalController) Cancelar(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.CancelarNotaFiscalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	nota, err := c.cancelar.Execute(ctx, id, req.Motivo)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotaNaoEncontrada), errors.Is(err, repository.ErrNotaFiscalNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "nota fiscal não encontrada", ""))
		case errors.Is(err, notafiscal.ErrNotaNaoAutorizada):
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "nota não pode ser cancelada", err.Error()))
		case errors.Is(err, usecase.ErrCancelamentoNegado):
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "cancelamento negado pela SEFAZ", err.Error()))
		default:
			c.logger.Error("erro ao cancelar nota fiscal", "nota_id", id, "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao cancelar nota fiscal", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNotaFiscalResponse(nota))
}
