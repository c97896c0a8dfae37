package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GuiEstevamCorrea/AxFisco/internal/adapter/api/dto"
)

// paginationFromQuery lê page e page_size da query string aplicando os
// valores padrão
func paginationFromQuery(ctx *gin.Context) dto.PaginationParams {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	return dto.GetPagination(page, pageSize)
}
