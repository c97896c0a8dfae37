package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Erros específicos do repositório
var (
	ErrProductNotFound      = errors.New("produto não encontrado")
	ErrProductDuplicateCode = errors.New("produto com mesmo código já existe")
)

const productColumns = `id, name, description, code, ncm, cfop,
	unit_of_measure, unit_price, product_type, tax_info, is_active,
	created_at, updated_at`

// ProductRepository implementa a interface product.Repository
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db *pgxpool.Pool) product.Repository {
	return &ProductRepository{
		db: db,
	}
}

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	taxInfo, err := json.Marshal(p.TaxInfo)
	if err != nil {
		return fmt.Errorf("erro ao converter dados tributários para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO products (
			id, name, description, code, ncm, cfop, unit_of_measure,
			unit_price, product_type, tax_info, is_active, created_at,
			updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)`,
		p.ID, p.Name, p.Description, p.Code, p.NCM, p.CFOP,
		p.UnitOfMeasure, p.UnitPrice, p.ProductType, taxInfo,
		p.IsActive, p.CreatedAt, p.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrProductDuplicateCode
		}
		return fmt.Errorf("erro ao criar produto: %w", err)
	}

	return nil
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}
	return p, nil
}

// FindByCode implementa product.Repository.FindByCode
func (r *ProductRepository) FindByCode(ctx context.Context, code string) (*product.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE code = $1`, code)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}
	return p, nil
}

// List implementa product.Repository.List
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	return scanProductRows(rows)
}

// FindByType implementa product.Repository.FindByType
func (r *ProductRepository) FindByType(ctx context.Context, productType product.ProductType, limit, offset int) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products
		WHERE product_type = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`,
		productType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar produtos: %w", err)
	}
	defer rows.Close()

	return scanProductRows(rows)
}

// Update implementa product.Repository.Update
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	taxInfo, err := json.Marshal(p.TaxInfo)
	if err != nil {
		return fmt.Errorf("erro ao converter dados tributários para JSON: %w", err)
	}

	result, err := r.db.Exec(ctx,
		`UPDATE products SET
			name = $1, description = $2, code = $3, ncm = $4, cfop = $5,
			unit_of_measure = $6, unit_price = $7, product_type = $8,
			tax_info = $9, is_active = $10, updated_at = $11
		WHERE id = $12`,
		p.Name, p.Description, p.Code, p.NCM, p.CFOP, p.UnitOfMeasure,
		p.UnitPrice, p.ProductType, taxInfo, p.IsActive, p.UpdatedAt, p.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrProductDuplicateCode
		}
		return fmt.Errorf("erro ao atualizar produto: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete implementa product.Repository.Delete
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir produto: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Exists implementa product.Repository.Exists
func (r *ProductRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)",
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do produto: %w", err)
	}

	return exists, nil
}

// Count implementa product.Repository.Count
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar produtos: %w", err)
	}

	return count, nil
}

// scanProduct lê um produto de uma linha de resultado
func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	var taxInfoJSON []byte

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Code, &p.NCM, &p.CFOP,
		&p.UnitOfMeasure, &p.UnitPrice, &p.ProductType, &taxInfoJSON,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.Kind = "product"

	if err := json.Unmarshal(taxInfoJSON, &p.TaxInfo); err != nil {
		return nil, fmt.Errorf("erro ao converter dados tributários: %w", err)
	}

	return &p, nil
}

// scanProductRows é um método auxiliar para processar resultados de
// consultas que retornam múltiplos produtos
func scanProductRows(rows pgx.Rows) ([]*product.Product, error) {
	products := make([]*product.Product, 0)

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler produto: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return products, nil
}
