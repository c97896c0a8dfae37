package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuiEstevamCorrea/AxFisco/internal/infrastructure/storage"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
)

const chaveTeste = "35240111444777000161550010000001231000000017"

func TestArmazenarXML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORAGE_DIR", dir)

	s := storage.NewLocalStorageFromEnv(logger.NewNopLogger())

	caminho, err := s.ArmazenarXML(context.Background(), chaveTeste, "<NFe></NFe>")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, chaveTeste, chaveTeste+".xml"), caminho)

	conteudo, err := os.ReadFile(caminho)
	require.NoError(t, err)
	assert.Equal(t, "<NFe></NFe>", string(conteudo))
}

func TestArmazenarDANFE(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORAGE_DIR", dir)

	s := storage.NewLocalStorageFromEnv(logger.NewNopLogger())

	caminho, err := s.ArmazenarDANFE(context.Background(), chaveTeste, []byte("danfe"))
	require.NoError(t, err)

	conteudo, err := os.ReadFile(caminho)
	require.NoError(t, err)
	assert.Equal(t, "danfe", string(conteudo))
}

func TestArmazenar_ChaveVazia(t *testing.T) {
	t.Setenv("STORAGE_DIR", t.TempDir())

	s := storage.NewLocalStorageFromEnv(logger.NewNopLogger())

	_, err := s.ArmazenarXML(context.Background(), "", "<NFe></NFe>")
	assert.Error(t, err)
}
