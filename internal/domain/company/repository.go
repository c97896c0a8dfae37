package company

import (
	"context"
)

// Repository define a interface para operações de repositório de empresas
type Repository interface {
	// Create cria uma nova empresa
	Create(ctx context.Context, c *Company) error

	// FindByID busca uma empresa pelo ID
	FindByID(ctx context.Context, id string) (*Company, error)

	// FindByCNPJ busca uma empresa pelo CNPJ (apenas dígitos)
	FindByCNPJ(ctx context.Context, cnpj string) (*Company, error)

	// List lista as empresas com paginação
	List(ctx context.Context, limit, offset int) ([]*Company, error)

	// Update atualiza os dados de uma empresa existente
	Update(ctx context.Context, c *Company) error

	// Delete remove uma empresa
	Delete(ctx context.Context, id string) error

	// ProximoNumero incrementa e retorna o próximo número do tipo de
	// documento informado ("NFE" ou "NFSE") de forma atômica
	ProximoNumero(ctx context.Context, id string, tipo string) (int64, error)

	// Exists verifica se uma empresa existe
	Exists(ctx context.Context, id string) (bool, error)

	// Count conta quantas empresas existem
	Count(ctx context.Context) (int, error)
}
