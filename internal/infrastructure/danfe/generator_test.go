package danfe_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/internal/infrastructure/danfe"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
)

func TestGerarDANFE(t *testing.T) {
	nota, err := notafiscal.NewNotaFiscal(
		123, 1, notafiscal.TipoNFe, "empresa-1", "cliente-1",
		150.0, 27.0, notafiscal.FinalidadeNormal)
	require.NoError(t, err)

	item, err := notafiscal.NewItemNotaFiscal(
		nota.ID, "produto-1", 1, notafiscal.TipoItemProduto,
		"P001", "Caderno universitário", "48201000", "5102", "UN", 10, 15.0)
	require.NoError(t, err)

	g := danfe.NewGerador(logger.NewNopLogger())

	conteudo, err := g.GerarDANFE(context.Background(), nota, []*notafiscal.ItemNotaFiscal{item})
	require.NoError(t, err)

	texto := string(conteudo)
	assert.Contains(t, texto, "DANFE")
	assert.Contains(t, texto, "Caderno universitário")
	assert.Contains(t, texto, "150.00")
}

func TestGerarDANFE_NotaNula(t *testing.T) {
	g := danfe.NewGerador(logger.NewNopLogger())

	_, err := g.GerarDANFE(context.Background(), nil, nil)
	assert.Error(t, err)
}
