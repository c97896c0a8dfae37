package product

import (
	"context"
)

// Repository define a interface para operações de repositório de produtos
type Repository interface {
	// Create cria um novo produto
	Create(ctx context.Context, p *Product) error

	// FindByID busca um produto pelo ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByCode busca um produto pelo código interno
	FindByCode(ctx context.Context, code string) (*Product, error)

	// List lista os produtos com paginação
	List(ctx context.Context, limit, offset int) ([]*Product, error)

	// FindByType busca produtos por tipo (mercadoria ou serviço)
	FindByType(ctx context.Context, productType ProductType, limit, offset int) ([]*Product, error)

	// Update atualiza os dados de um produto existente
	Update(ctx context.Context, p *Product) error

	// Delete remove um produto
	Delete(ctx context.Context, id string) error

	// Exists verifica se um produto existe
	Exists(ctx context.Context, id string) (bool, error)

	// Count conta quantos produtos estão cadastrados
	Count(ctx context.Context) (int, error)
}
