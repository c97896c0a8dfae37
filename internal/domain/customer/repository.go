package customer

import (
	"context"
)

// Repository define a interface para operações de repositório de clientes
type Repository interface {
	// Create cria um novo cliente
	Create(ctx context.Context, c *Customer) error

	// FindByID busca um cliente pelo ID
	FindByID(ctx context.Context, id string) (*Customer, error)

	// FindByDocument busca um cliente pelo documento (CPF/CNPJ)
	FindByDocument(ctx context.Context, document string) (*Customer, error)

	// List lista os clientes com paginação
	List(ctx context.Context, limit, offset int) ([]*Customer, error)

	// FindByName busca clientes pelo nome
	FindByName(ctx context.Context, name string, limit, offset int) ([]*Customer, error)

	// Update atualiza os dados de um cliente existente
	Update(ctx context.Context, c *Customer) error

	// Delete remove um cliente
	Delete(ctx context.Context, id string) error

	// Exists verifica se um cliente existe
	Exists(ctx context.Context, id string) (bool, error)

	// ExistsByDocument verifica se um cliente existe pelo documento
	ExistsByDocument(ctx context.Context, document string) (bool, error)

	// Count conta quantos clientes estão cadastrados
	Count(ctx context.Context) (int, error)
}
