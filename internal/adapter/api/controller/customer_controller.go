package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GuiEstevamCorrea/AxFisco/internal/adapter/api/dto"
	"github.com/GuiEstevamCorrea/AxFisco/internal/adapter/repository"
	"github.com/GuiEstevamCorrea/AxFisco/internal/application/usecase"
	customerdomain "github.com/GuiEstevamCorrea/AxFisco/internal/domain/customer"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
)

// CustomerController gerencia as requisições relacionadas a clientes
type CustomerController struct {
	createCustomer *usecase.CreateCustomerUseCase
	customerRepo   customerdomain.Repository
	logger         logger.Logger
}

// NewCustomerController cria uma nova instância de CustomerController
func NewCustomerController(
	createCustomer *usecase.CreateCustomerUseCase,
	customerRepo customerdomain.Repository,
	logger logger.Logger,
) *CustomerController {
	return &CustomerController{
		createCustomer: createCustomer,
		customerRepo:   customerRepo,
		logger:         logger,
	}
}

// Create cria um novo cliente
// @Summary Criar cliente
// @Description Cadastra um novo cliente destinatário de documentos fiscais
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [post]
func (c *CustomerController) Create(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	cliente, err := c.createCustomer.Execute(ctx, req.ToCreateCustomerInput())
	if err != nil {
		if errors.Is(err, usecase.ErrClienteJaCadastrado) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "documento já cadastrado", ""))
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCustomerResponse(cliente))
}

// Get retorna um cliente pelo ID
// @Summary Buscar cliente
// @Description Retorna os dados de um cliente pelo ID
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id} [get]
func (c *CustomerController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	cliente, err := c.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cliente))
}

// FindByDocument retorna um cliente pelo documento
// @Summary Buscar cliente por documento
// @Description Retorna os dados de um cliente pelo CPF ou CNPJ (apenas dígitos)
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param document path string true "CPF ou CNPJ"
// @Success 200 {object} dto.CustomerResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/document/{document} [get]
func (c *CustomerController) FindByDocument(ctx *gin.Context) {
	document := ctx.Param("document")

	cliente, err := c.customerRepo.FindByDocument(ctx, document)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cliente))
}

// List lista os clientes cadastrados
// @Summary Listar clientes
// @Description Lista os clientes com paginação e busca opcional por nome
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página (padrão: 1)"
// @Param page_size query int false "Tamanho da página (padrão: 10)"
// @Param name query string false "Filtrar por nome"
// @Success 200 {object} dto.CustomerListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [get]
func (c *CustomerController) List(ctx *gin.Context) {
	pagination := paginationFromQuery(ctx)
	offset := (pagination.Page - 1) * pagination.PageSize

	var (
		clientes []*customerdomain.Customer
		err      error
	)
	if name := ctx.Query("name"); name != "" {
		clientes, err = c.customerRepo.FindByName(ctx, name, pagination.PageSize, offset)
	} else {
		clientes, err = c.customerRepo.List(ctx, pagination.PageSize, offset)
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar clientes", err.Error()))
		return
	}

	total, err := c.customerRepo.Count(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao contar clientes", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerListResponse(clientes, total, pagination.Page, pagination.PageSize))
}

// Update atualiza os dados de um cliente
// @Summary Atualizar cliente
// @Description Atualiza os dados básicos e o endereço de um cliente
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param customer body dto.CustomerUpdateRequest true "Dados do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id} [put]
func (c *CustomerController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.CustomerUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	cliente, err := c.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", err.Error()))
		return
	}

	if err := cliente.UpdateInfo(req.Name, req.Email, req.Phone); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao atualizar cliente", err.Error()))
		return
	}

	if req.Address != nil {
		address, err := addressFromRequest(req.Address)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "endereço inválido", err.Error()))
			return
		}
		cliente.UpdateAddress(address)
	}

	if err := c.customerRepo.Update(ctx, cliente); err != nil {
		c.logger.Error("erro ao atualizar cliente no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cliente))
}

// Delete remove um cliente
// @Summary Excluir cliente
// @Description Remove um cliente do sistema
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id} [delete]
func (c *CustomerController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("cliente excluído", nil))
}

// UpdateStatus ativa ou desativa um cliente
// @Summary Alterar status do cliente
// @Description Ativa ou desativa um cliente
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param status path string true "Novo status (active ou inactive)"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id}/status/{status} [patch]
func (c *CustomerController) UpdateStatus(ctx *gin.Context) {
	id := ctx.Param("id")
	status := ctx.Param("status")

	cliente, err := c.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", err.Error()))
		return
	}

	switch status {
	case "active":
		cliente.Activate()
	case "inactive":
		cliente.Deactivate()
	default:
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "status inválido", "use active ou inactive"))
		return
	}

	if err := c.customerRepo.Update(ctx, cliente); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cliente))
}
