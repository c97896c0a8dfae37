package notafiscal

import (
	"context"
)

// Repository define a interface para operações de repositório de notas fiscais
type Repository interface {
	// Create cria uma nova nota fiscal
	Create(ctx context.Context, n *NotaFiscal) error

	// FindByID busca uma nota fiscal pelo ID
	FindByID(ctx context.Context, id string) (*NotaFiscal, error)

	// FindByChaveAcesso busca uma nota fiscal pela chave de acesso
	FindByChaveAcesso(ctx context.Context, chaveAcesso string) (*NotaFiscal, error)

	// FindByNumero busca uma nota fiscal pelo número e série de uma empresa
	FindByNumero(ctx context.Context, empresaID string, numero int64, serie int) (*NotaFiscal, error)

	// List lista as notas fiscais de uma empresa com paginação
	List(ctx context.Context, empresaID string, limit, offset int) ([]*NotaFiscal, error)

	// FindByStatus busca as notas fiscais de uma empresa por status
	FindByStatus(ctx context.Context, empresaID string, status StatusNotaFiscal, limit, offset int) ([]*NotaFiscal, error)

	// Update atualiza os dados de uma nota fiscal existente
	Update(ctx context.Context, n *NotaFiscal) error

	// Delete remove uma nota fiscal
	Delete(ctx context.Context, id string) error

	// Count conta as notas fiscais de uma empresa
	Count(ctx context.Context, empresaID string) (int, error)
}

// ItemRepository define a interface para operações de repositório de
// itens de nota fiscal
type ItemRepository interface {
	// Create cria um novo item de nota fiscal
	Create(ctx context.Context, item *ItemNotaFiscal) error

	// FindByID busca um item pelo ID
	FindByID(ctx context.Context, id string) (*ItemNotaFiscal, error)

	// FindByNotaFiscal lista os itens de uma nota fiscal em ordem de numeração
	FindByNotaFiscal(ctx context.Context, notaFiscalID string) ([]*ItemNotaFiscal, error)

	// Update atualiza os dados de um item existente
	Update(ctx context.Context, item *ItemNotaFiscal) error

	// Delete remove um item
	Delete(ctx context.Context, id string) error

	// DeleteByNotaFiscal remove todos os itens de uma nota fiscal
	DeleteByNotaFiscal(ctx context.Context, notaFiscalID string) error
}
