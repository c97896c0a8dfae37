package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
)

// LocalStorage arquiva os documentos fiscais no sistema de arquivos,
// organizados por chave de acesso
type LocalStorage struct {
	baseDir string
	logger  logger.Logger
}

// NewLocalStorageFromEnv cria o armazenamento usando STORAGE_DIR
// (padrão ./storage)
func NewLocalStorageFromEnv(log logger.Logger) *LocalStorage {
	baseDir := os.Getenv("STORAGE_DIR")
	if baseDir == "" {
		baseDir = "./storage"
	}
	return &LocalStorage{baseDir: baseDir, logger: log}
}

// ArmazenarXML implementa notafiscal.StorageGateway
func (s *LocalStorage) ArmazenarXML(ctx context.Context, chaveAcesso, xmlAssinado string) (string, error) {
	return s.gravar(chaveAcesso, chaveAcesso+".xml", []byte(xmlAssinado))
}

// ArmazenarDANFE implementa notafiscal.StorageGateway
func (s *LocalStorage) ArmazenarDANFE(ctx context.Context, chaveAcesso string, danfe []byte) (string, error) {
	return s.gravar(chaveAcesso, chaveAcesso+"-danfe.pdf", danfe)
}

func (s *LocalStorage) gravar(chaveAcesso, nome string, conteudo []byte) (string, error) {
	if chaveAcesso == "" {
		return "", fmt.Errorf("chave de acesso não informada")
	}

	dir := filepath.Join(s.baseDir, chaveAcesso)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("erro ao criar diretório de armazenamento: %w", err)
	}

	caminho := filepath.Join(dir, nome)
	if err := os.WriteFile(caminho, conteudo, 0o644); err != nil {
		return "", fmt.Errorf("erro ao gravar documento: %w", err)
	}

	s.logger.Debug("documento arquivado", "caminho", caminho, "bytes", len(conteudo))
	return caminho, nil
}
