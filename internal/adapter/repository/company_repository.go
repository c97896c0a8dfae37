package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/company"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Erros específicos do repositório
var (
	ErrCompanyNotFound      = errors.New("empresa não encontrada")
	ErrCompanyDuplicateCNPJ = errors.New("empresa com mesmo CNPJ já existe")
	ErrCompanyInvalidRow    = errors.New("registro de empresa inválido no banco")
	ErrTipoDocumentoInvalido = errors.New("tipo de documento fiscal inválido")
)

const companyColumns = `id, corporate_name, trade_name, cnpj,
	state_registration, municipal_registration, address, email, phone,
	tax_regime, is_active, ambiente, serie_nfe, serie_nfse,
	ultimo_numero_nfe, ultimo_numero_nfse, certificado_arquivo,
	certificado_senha, certificado_validade, certificado_proprietario,
	certificado_numero, created_at, updated_at`

// CompanyRepository implementa a interface company.Repository
type CompanyRepository struct {
	db *pgxpool.Pool
}

// NewCompanyRepository cria uma nova instância de CompanyRepository
func NewCompanyRepository(db *pgxpool.Pool) company.Repository {
	return &CompanyRepository{
		db: db,
	}
}

// Create implementa company.Repository.Create
func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) error {
	address, err := enderecoParaJSON(c.Address)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO companies (
			id, corporate_name, trade_name, cnpj, state_registration,
			municipal_registration, address, email, phone, tax_regime,
			is_active, ambiente, serie_nfe, serie_nfse, ultimo_numero_nfe,
			ultimo_numero_nfse, certificado_arquivo, certificado_senha,
			certificado_validade, certificado_proprietario,
			certificado_numero, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23
		)`,
		c.ID, c.CorporateName, c.TradeName, c.CNPJ.Value(),
		c.StateRegistration, c.MunicipalRegistration, address, c.Email,
		c.Phone, c.TaxRegime, c.IsActive, c.Ambiente, c.SerieNFe,
		c.SerieNFSe, c.UltimoNumeroNFe, c.UltimoNumeroNFSe,
		c.Certificado.Arquivo(), c.Certificado.Senha(),
		certificadoValidade(c.Certificado), c.Certificado.Proprietario(),
		c.Certificado.Numero(), c.CreatedAt, c.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrCompanyDuplicateCNPJ
		}
		return fmt.Errorf("erro ao criar empresa: %w", err)
	}

	return nil
}

// FindByID implementa company.Repository.FindByID
func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*company.Company, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)

	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("erro ao buscar empresa: %w", err)
	}
	return c, nil
}

// FindByCNPJ implementa company.Repository.FindByCNPJ
func (r *CompanyRepository) FindByCNPJ(ctx context.Context, cnpj string) (*company.Company, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE cnpj = $1`, cnpj)

	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("erro ao buscar empresa: %w", err)
	}
	return c, nil
}

// List implementa company.Repository.List
func (r *CompanyRepository) List(ctx context.Context, limit, offset int) ([]*company.Company, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+companyColumns+` FROM companies
		ORDER BY corporate_name ASC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar empresas: %w", err)
	}
	defer rows.Close()

	companies := make([]*company.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler empresa: %w", err)
		}
		companies = append(companies, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return companies, nil
}

// Update implementa company.Repository.Update
func (r *CompanyRepository) Update(ctx context.Context, c *company.Company) error {
	address, err := enderecoParaJSON(c.Address)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(ctx,
		`UPDATE companies SET
			corporate_name = $1, trade_name = $2, cnpj = $3,
			state_registration = $4, municipal_registration = $5,
			address = $6, email = $7, phone = $8, tax_regime = $9,
			is_active = $10, ambiente = $11, serie_nfe = $12,
			serie_nfse = $13, ultimo_numero_nfe = $14,
			ultimo_numero_nfse = $15, certificado_arquivo = $16,
			certificado_senha = $17, certificado_validade = $18,
			certificado_proprietario = $19, certificado_numero = $20,
			updated_at = $21
		WHERE id = $22`,
		c.CorporateName, c.TradeName, c.CNPJ.Value(), c.StateRegistration,
		c.MunicipalRegistration, address, c.Email, c.Phone, c.TaxRegime,
		c.IsActive, c.Ambiente, c.SerieNFe, c.SerieNFSe,
		c.UltimoNumeroNFe, c.UltimoNumeroNFSe, c.Certificado.Arquivo(),
		c.Certificado.Senha(), certificadoValidade(c.Certificado),
		c.Certificado.Proprietario(), c.Certificado.Numero(),
		c.UpdatedAt, c.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrCompanyDuplicateCNPJ
		}
		return fmt.Errorf("erro ao atualizar empresa: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}

	return nil
}

// Delete implementa company.Repository.Delete
func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM companies WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir empresa: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}

	return nil
}

// ProximoNumero implementa company.Repository.ProximoNumero. O
// incremento é feito no banco, em uma única instrução, para que duas
// emissões simultâneas nunca recebam o mesmo número.
func (r *CompanyRepository) ProximoNumero(ctx context.Context, id string, tipo string) (int64, error) {
	var coluna string
	switch tipo {
	case "NFE":
		coluna = "ultimo_numero_nfe"
	case "NFSE":
		coluna = "ultimo_numero_nfse"
	default:
		return 0, ErrTipoDocumentoInvalido
	}

	var numero int64
	err := r.db.QueryRow(ctx,
		`UPDATE companies SET `+coluna+` = `+coluna+` + 1, updated_at = $1
		WHERE id = $2
		RETURNING `+coluna,
		time.Now(), id).Scan(&numero)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrCompanyNotFound
		}
		return 0, fmt.Errorf("erro ao avançar numeração: %w", err)
	}

	return numero, nil
}

// Exists implementa company.Repository.Exists
func (r *CompanyRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1)",
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência da empresa: %w", err)
	}

	return exists, nil
}

// Count implementa company.Repository.Count
func (r *CompanyRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM companies").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar empresas: %w", err)
	}

	return count, nil
}

// certificadoValidade retorna a validade para gravação; NULL quando a
// empresa não tem certificado
func certificadoValidade(c valueobject.CertificadoDigital) *time.Time {
	if c.IsZero() {
		return nil
	}
	validade := c.Validade()
	return &validade
}

// scanCompany lê uma empresa de uma linha de resultado
func scanCompany(row pgx.Row) (*company.Company, error) {
	var c company.Company
	var cnpj string
	var addressJSON []byte
	var certArquivo []byte
	var certSenha, certProprietario, certNumero string
	var certValidade *time.Time

	err := row.Scan(
		&c.ID, &c.CorporateName, &c.TradeName, &cnpj, &c.StateRegistration,
		&c.MunicipalRegistration, &addressJSON, &c.Email, &c.Phone,
		&c.TaxRegime, &c.IsActive, &c.Ambiente, &c.SerieNFe, &c.SerieNFSe,
		&c.UltimoNumeroNFe, &c.UltimoNumeroNFSe, &certArquivo, &certSenha,
		&certValidade, &certProprietario, &certNumero,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	c.Kind = "company"

	c.CNPJ, err = valueobject.NewCNPJ(cnpj)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompanyInvalidRow, err)
	}

	c.Address, err = enderecoDeJSON(addressJSON)
	if err != nil {
		return nil, err
	}

	if certNumero != "" && certValidade != nil {
		c.Certificado = valueobject.RestaurarCertificadoDigital(
			certArquivo, certSenha, *certValidade, certProprietario, certNumero)
	}

	return &c, nil
}
