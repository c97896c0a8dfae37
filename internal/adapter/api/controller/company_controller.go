package controller

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GuiEstevamCorrea/AxFisco/internal/adapter/api/dto"
	"github.com/GuiEstevamCorrea/AxFisco/internal/adapter/repository"
	companydomain "github.com/GuiEstevamCorrea/AxFisco/internal/domain/company"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/pkcs12"
)

// CompanyController gerencia as requisições relacionadas a empresas
type CompanyController struct {
	companyRepo companydomain.Repository
	logger      logger.Logger
}

// NewCompanyController cria uma nova instância de CompanyController
func NewCompanyController(companyRepo companydomain.Repository, logger logger.Logger) *CompanyController {
	return &CompanyController{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// Create cria uma nova empresa emitente
// @Summary Criar empresa
// @Description Cadastra uma nova empresa emitente de documentos fiscais
// @Tags companies
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param company body dto.CompanyRequest true "Dados da empresa"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies [post]
func (c *CompanyController) Create(ctx *gin.Context) {
	var req dto.CompanyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	cnpj, err := valueobject.NewCNPJ(req.CNPJ)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "CNPJ inválido", err.Error()))
		return
	}

	address, err := addressFromRequest(req.Address)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "endereço inválido", err.Error()))
		return
	}

	empresa, err := companydomain.NewCompany(
		req.CorporateName,
		req.TradeName,
		cnpj,
		req.StateRegistration,
		address,
		req.Email,
		req.Phone,
		companydomain.TaxRegime(req.TaxRegime),
		req.MunicipalRegistration,
	)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar empresa", err.Error()))
		return
	}

	if err := c.companyRepo.Create(ctx, empresa); err != nil {
		if errors.Is(err, repository.ErrCompanyDuplicateCNPJ) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "CNPJ já cadastrado", ""))
			return
		}
		c.logger.Error("erro ao criar empresa no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar empresa", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCompanyResponse(empresa))
}

// Get retorna uma empresa pelo ID
// @Summary Buscar empresa
// @Description Retorna os dados de uma empresa pelo ID
// @Tags companies
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da empresa"
// @Success 200 {object} dto.CompanyResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies/{id} [get]
func (c *CompanyController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	empresa, err := c.companyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "empresa não encontrada", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar empresa", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCompanyResponse(empresa))
}

// FindByCNPJ retorna uma empresa pelo CNPJ
// @Summary Buscar empresa por CNPJ
// @Description Retorna os dados de uma empresa pelo CNPJ (apenas dígitos)
// @Tags companies
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param cnpj path string true "CNPJ da empresa"
// @Success 200 {object} dto.CompanyResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies/cnpj/{cnpj} [get]
func (c *CompanyController) FindByCNPJ(ctx *gin.Context) {
	cnpj := ctx.Param("cnpj")

	empresa, err := c.companyRepo.FindByCNPJ(ctx, cnpj)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "empresa não encontrada", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar empresa", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCompanyResponse(empresa))
}

// List lista as empresas cadastradas
// @Summary Listar empresas
// @Description Lista as empresas com paginação
// @Tags companies
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página (padrão: 1)"
// @Param page_size query int false "Tamanho da página (padrão: 10)"
// @Success 200 {object} dto.CompanyListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies [get]
func (c *CompanyController) List(ctx *gin.Context) {
	pagination := paginationFromQuery(ctx)

	companies, err := c.companyRepo.List(ctx, pagination.PageSize, (pagination.Page-1)*pagination.PageSize)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar empresas", err.Error()))
		return
	}

	total, err := c.companyRepo.Count(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao contar empresas", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCompanyListResponse(companies, total, pagination.Page, pagination.PageSize))
}

// Update atualiza os dados cadastrais de uma empresa
// @Summary Atualizar empresa
// @Description Atualiza os dados cadastrais de uma empresa
// @Tags companies
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da empresa"
// @Param company body dto.CompanyUpdateRequest true "Dados da empresa"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies/{id} [put]
func (c *CompanyController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.CompanyUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	empresa, err := c.companyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "empresa não encontrada", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar empresa", err.Error()))
		return
	}

	if err := empresa.UpdateInfo(req.CorporateName, req.TradeName, req.Email, req.Phone); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao atualizar empresa", err.Error()))
		return
	}

	if req.Address != nil {
		address, err := addressFromRequest(req.Address)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "endereço inválido", err.Error()))
			return
		}
		empresa.UpdateAddress(address)
	}

	if err := c.companyRepo.Update(ctx, empresa); err != nil {
		c.logger.Error("erro ao atualizar empresa no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar empresa", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCompanyResponse(empresa))
}

// UploadCertificado vincula um certificado digital A1 à empresa
// @Summary Enviar certificado digital
// @Description Recebe o arquivo .pfx e a senha, valida o conteúdo e vincula o certificado à empresa
// @Tags companies
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da empresa"
// @Param file formData file true "Arquivo do certificado (.pfx)"
// @Param password formData string true "Senha do certificado"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies/{id}/certificado [post]
func (c *CompanyController) UploadCertificado(ctx *gin.Context) {
	id := ctx.Param("id")

	empresa, err := c.companyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "empresa não encontrada", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar empresa", err.Error()))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "arquivo do certificado não informado", err.Error()))
		return
	}

	password := ctx.PostForm("password")
	if password == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "senha do certificado não informada", ""))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao abrir arquivo", err.Error()))
		return
	}
	defer file.Close()

	arquivo, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao ler arquivo", err.Error()))
		return
	}

	// Abre o PKCS#12 para validar a senha e extrair a validade e o
	// titular do certificado
	_, x509Cert, err := pkcs12.Decode(arquivo, password)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "certificado inválido", err.Error()))
		return
	}

	cert, err := valueobject.NewCertificadoDigital(
		arquivo,
		password,
		x509Cert.NotAfter,
		proprietarioDoCertificado(x509Cert.Subject.CommonName),
		x509Cert.SerialNumber.String(),
	)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "certificado inválido", err.Error()))
		return
	}

	if err := empresa.AtribuirCertificado(cert); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "certificado recusado", err.Error()))
		return
	}

	if err := c.companyRepo.Update(ctx, empresa); err != nil {
		c.logger.Error("erro ao salvar certificado da empresa", "empresa_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar certificado", err.Error()))
		return
	}

	c.logger.Info("certificado digital vinculado", "empresa_id", id,
		"validade", cert.Validade().Format("2006-01-02"))

	ctx.JSON(http.StatusOK, dto.ToCompanyResponse(empresa))
}

// AlterarAmbiente muda o ambiente da SEFAZ da empresa
// @Summary Alterar ambiente
// @Description Alterna a empresa entre homologação e produção
// @Tags companies
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da empresa"
// @Param ambiente body dto.CompanyAmbienteRequest true "Novo ambiente"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies/{id}/ambiente [patch]
func (c *CompanyController) AlterarAmbiente(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.CompanyAmbienteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	empresa, err := c.companyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "empresa não encontrada", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar empresa", err.Error()))
		return
	}

	if err := empresa.AlterarAmbiente(companydomain.Ambiente(req.Ambiente)); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao alterar ambiente", err.Error()))
		return
	}

	if err := c.companyRepo.Update(ctx, empresa); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar empresa", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCompanyResponse(empresa))
}

// DefinirSerie altera a série de numeração de um tipo de documento
// @Summary Definir série
// @Description Altera a série usada na numeração de NF-e ou NFS-e
// @Tags companies
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da empresa"
// @Param serie body dto.CompanySerieRequest true "Tipo (NFE ou NFSE) e série"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies/{id}/serie [patch]
func (c *CompanyController) DefinirSerie(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.CompanySerieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	empresa, err := c.companyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "empresa não encontrada", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar empresa", err.Error()))
		return
	}

	switch strings.ToUpper(req.Tipo) {
	case "NFE":
		err = empresa.DefinirSerieNFe(req.Serie)
	case "NFSE":
		err = empresa.DefinirSerieNFSe(req.Serie)
	default:
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "tipo de documento inválido", "use NFE ou NFSE"))
		return
	}
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao definir série", err.Error()))
		return
	}

	if err := c.companyRepo.Update(ctx, empresa); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar empresa", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCompanyResponse(empresa))
}

// UpdateStatus ativa ou desativa uma empresa
// @Summary Alterar status da empresa
// @Description Ativa ou desativa uma empresa
// @Tags companies
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da empresa"
// @Param status path string true "Novo status (active ou inactive)"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies/{id}/status/{status} [patch]
func (c *CompanyController) UpdateStatus(ctx *gin.Context) {
	id := ctx.Param("id")
	status := ctx.Param("status")

	empresa, err := c.companyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "empresa não encontrada", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar empresa", err.Error()))
		return
	}

	switch status {
	case "active":
		empresa.Activate()
	case "inactive":
		empresa.Deactivate()
	default:
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "status inválido", "use active ou inactive"))
		return
	}

	if err := c.companyRepo.Update(ctx, empresa); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar empresa", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCompanyResponse(empresa))
}

// addressFromRequest monta o endereço do domínio a partir da requisição
func addressFromRequest(req *dto.AddressRequest) (valueobject.Address, error) {
	if req == nil {
		return valueobject.Address{}, nil
	}
	return valueobject.NewAddress(
		req.Street,
		req.Number,
		req.Complement,
		req.Neighborhood,
		req.City,
		req.State,
		req.ZipCode,
		req.Country,
		req.CodigoIbge,
	)
}

// proprietarioDoCertificado extrai o CNPJ do CN do certificado A1, no
// formato "RAZAO SOCIAL:CNPJ" usado pelo ICP-Brasil
func proprietarioDoCertificado(commonName string) string {
	if idx := strings.LastIndex(commonName, ":"); idx >= 0 {
		return commonName[idx+1:]
	}
	return commonName
}
