package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/customer"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Erros específicos do repositório
var (
	ErrCustomerNotFound     = errors.New("cliente não encontrado")
	ErrCustomerDuplicateKey = errors.New("cliente com mesmo documento já existe")
	ErrCustomerInvalidRow   = errors.New("registro de cliente inválido no banco")
)

const customerColumns = `id, name, email, phone, document, customer_type,
	indicador_ie, state_registration, municipal_registration, address,
	is_active, created_at, updated_at`

// CustomerRepository implementa a interface customer.Repository
type CustomerRepository struct {
	db *pgxpool.Pool
}

// NewCustomerRepository cria uma nova instância de CustomerRepository
func NewCustomerRepository(db *pgxpool.Pool) customer.Repository {
	return &CustomerRepository{
		db: db,
	}
}

// Create implementa customer.Repository.Create
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	exists, err := r.ExistsByDocument(ctx, c.Document.Value())
	if err != nil {
		return fmt.Errorf("erro ao verificar existência do cliente: %w", err)
	}
	if exists {
		return ErrCustomerDuplicateKey
	}

	address, err := enderecoParaJSON(c.Address)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO customers (
			id, name, email, phone, document, customer_type, indicador_ie,
			state_registration, municipal_registration, address, is_active,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)`,
		c.ID, c.Name, c.Email, c.Phone, c.Document.Value(),
		c.CustomerType, c.IndicadorIE, c.StateRegistration,
		c.MunicipalRegistration, address, c.IsActive,
		c.CreatedAt, c.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrCustomerDuplicateKey
		}
		return fmt.Errorf("erro ao criar cliente: %w", err)
	}

	return nil
}

// FindByID implementa customer.Repository.FindByID
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)

	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}
	return c, nil
}

// FindByDocument implementa customer.Repository.FindByDocument
func (r *CustomerRepository) FindByDocument(ctx context.Context, document string) (*customer.Customer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE document = $1`, document)

	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}
	return c, nil
}

// List implementa customer.Repository.List
func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+customerColumns+` FROM customers
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	return scanCustomerRows(rows)
}

// FindByName implementa customer.Repository.FindByName
func (r *CustomerRepository) FindByName(ctx context.Context, name string, limit, offset int) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+customerColumns+` FROM customers
		WHERE name ILIKE $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`,
		"%"+name+"%", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar clientes: %w", err)
	}
	defer rows.Close()

	return scanCustomerRows(rows)
}

// Update implementa customer.Repository.Update
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	address, err := enderecoParaJSON(c.Address)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(ctx,
		`UPDATE customers SET
			name = $1, email = $2, phone = $3, document = $4,
			customer_type = $5, indicador_ie = $6, state_registration = $7,
			municipal_registration = $8, address = $9, is_active = $10,
			updated_at = $11
		WHERE id = $12`,
		c.Name, c.Email, c.Phone, c.Document.Value(), c.CustomerType,
		c.IndicadorIE, c.StateRegistration, c.MunicipalRegistration,
		address, c.IsActive, c.UpdatedAt, c.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrCustomerDuplicateKey
		}
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// Delete implementa customer.Repository.Delete
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir cliente: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// Exists implementa customer.Repository.Exists
func (r *CustomerRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)",
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do cliente: %w", err)
	}

	return exists, nil
}

// ExistsByDocument implementa customer.Repository.ExistsByDocument
func (r *CustomerRepository) ExistsByDocument(ctx context.Context, document string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM customers WHERE document = $1)",
		document).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do cliente: %w", err)
	}

	return exists, nil
}

// Count implementa customer.Repository.Count
func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar clientes: %w", err)
	}

	return count, nil
}

// documentoDeValor reconstrói o documento a partir dos dígitos gravados
func documentoDeValor(document string) (customer.Documento, error) {
	switch len(document) {
	case 11:
		cpf, err := valueobject.NewCPF(document)
		if err != nil {
			return customer.Documento{}, fmt.Errorf("%w: %v", ErrCustomerInvalidRow, err)
		}
		return customer.NewDocumentoCPF(cpf), nil
	case 14:
		cnpj, err := valueobject.NewCNPJ(document)
		if err != nil {
			return customer.Documento{}, fmt.Errorf("%w: %v", ErrCustomerInvalidRow, err)
		}
		return customer.NewDocumentoCNPJ(cnpj), nil
	default:
		return customer.Documento{}, fmt.Errorf("%w: documento com %d dígitos", ErrCustomerInvalidRow, len(document))
	}
}

// scanCustomer lê um cliente de uma linha de resultado
func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	var document string
	var addressJSON []byte

	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &document, &c.CustomerType,
		&c.IndicadorIE, &c.StateRegistration, &c.MunicipalRegistration,
		&addressJSON, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	c.Kind = "customer"

	c.Document, err = documentoDeValor(document)
	if err != nil {
		return nil, err
	}

	c.Address, err = enderecoDeJSON(addressJSON)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// scanCustomerRows é um método auxiliar para processar resultados de
// consultas que retornam múltiplos clientes
func scanCustomerRows(rows pgx.Rows) ([]*customer.Customer, error) {
	customers := make([]*customer.Customer, 0)

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler cliente: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return customers, nil
}
