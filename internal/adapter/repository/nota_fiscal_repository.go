package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Erros específicos do repositório
var (
	ErrNotaFiscalNotFound  = errors.New("nota fiscal não encontrada")
	ErrNotaFiscalDuplicada = errors.New("nota fiscal com mesmo número e série já existe para a empresa")
)

const notaFiscalColumns = `id, numero, serie, tipo, status, finalidade,
	chave_acesso, protocolo_autorizacao, data_emissao, data_vencimento,
	empresa_id, cliente_id, valor_total, valor_tributos, observacoes,
	informacoes_adicionais, xml_original, xml_assinado, motivo_rejeicao,
	itens, created_at, updated_at`

// NotaFiscalRepository implementa a interface notafiscal.Repository
type NotaFiscalRepository struct {
	db *pgxpool.Pool
}

// NewNotaFiscalRepository cria uma nova instância de NotaFiscalRepository
func NewNotaFiscalRepository(db *pgxpool.Pool) notafiscal.Repository {
	return &NotaFiscalRepository{
		db: db,
	}
}

// Create implementa notafiscal.Repository.Create
func (r *NotaFiscalRepository) Create(ctx context.Context, n *notafiscal.NotaFiscal) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO notas_fiscais (
			id, numero, serie, tipo, status, finalidade, chave_acesso,
			protocolo_autorizacao, data_emissao, data_vencimento,
			empresa_id, cliente_id, valor_total, valor_tributos,
			observacoes, informacoes_adicionais, xml_original,
			xml_assinado, motivo_rejeicao, itens, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22
		)`,
		n.ID, n.Numero, n.Serie, n.Tipo, n.Status, n.Finalidade,
		n.ChaveAcesso, n.ProtocoloAutorizacao, n.DataEmissao,
		n.DataVencimento, n.EmpresaID, n.ClienteID, n.ValorTotal,
		n.ValorTributos, n.Observacoes, n.InformacoesAdicionais,
		n.XMLOriginal, n.XMLAssinado, n.MotivoRejeicao, n.Itens,
		n.CreatedAt, n.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrNotaFiscalDuplicada
		}
		return fmt.Errorf("erro ao criar nota fiscal: %w", err)
	}

	return nil
}

// FindByID implementa notafiscal.Repository.FindByID
func (r *NotaFiscalRepository) FindByID(ctx context.Context, id string) (*notafiscal.NotaFiscal, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+notaFiscalColumns+` FROM notas_fiscais WHERE id = $1`, id)

	n, err := scanNotaFiscal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotaFiscalNotFound
		}
		return nil, fmt.Errorf("erro ao buscar nota fiscal: %w", err)
	}
	return n, nil
}

// FindByChaveAcesso implementa notafiscal.Repository.FindByChaveAcesso
func (r *NotaFiscalRepository) FindByChaveAcesso(ctx context.Context, chaveAcesso string) (*notafiscal.NotaFiscal, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+notaFiscalColumns+` FROM notas_fiscais WHERE chave_acesso = $1`,
		chaveAcesso)

	n, err := scanNotaFiscal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotaFiscalNotFound
		}
		return nil, fmt.Errorf("erro ao buscar nota fiscal: %w", err)
	}
	return n, nil
}

// FindByNumero implementa notafiscal.Repository.FindByNumero
func (r *NotaFiscalRepository) FindByNumero(ctx context.Context, empresaID string, numero int64, serie int) (*notafiscal.NotaFiscal, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+notaFiscalColumns+` FROM notas_fiscais
		WHERE empresa_id = $1 AND numero = $2 AND serie = $3`,
		empresaID, numero, serie)

	n, err := scanNotaFiscal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotaFiscalNotFound
		}
		return nil, fmt.Errorf("erro ao buscar nota fiscal: %w", err)
	}
	return n, nil
}

// List implementa notafiscal.Repository.List
func (r *NotaFiscalRepository) List(ctx context.Context, empresaID string, limit, offset int) ([]*notafiscal.NotaFiscal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+notaFiscalColumns+` FROM notas_fiscais
		WHERE empresa_id = $1
		ORDER BY data_emissao DESC, numero DESC
		LIMIT $2 OFFSET $3`,
		empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar notas fiscais: %w", err)
	}
	defer rows.Close()

	return scanNotaFiscalRows(rows)
}

// FindByStatus implementa notafiscal.Repository.FindByStatus
func (r *NotaFiscalRepository) FindByStatus(ctx context.Context, empresaID string, status notafiscal.StatusNotaFiscal, limit, offset int) ([]*notafiscal.NotaFiscal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+notaFiscalColumns+` FROM notas_fiscais
		WHERE empresa_id = $1 AND status = $2
		ORDER BY data_emissao DESC, numero DESC
		LIMIT $3 OFFSET $4`,
		empresaID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar notas fiscais: %w", err)
	}
	defer rows.Close()

	return scanNotaFiscalRows(rows)
}

// Update implementa notafiscal.Repository.Update
func (r *NotaFiscalRepository) Update(ctx context.Context, n *notafiscal.NotaFiscal) error {
	result, err := r.db.Exec(ctx,
		`UPDATE notas_fiscais SET
			numero = $1, serie = $2, tipo = $3, status = $4,
			finalidade = $5, chave_acesso = $6, protocolo_autorizacao = $7,
			data_emissao = $8, data_vencimento = $9, empresa_id = $10,
			cliente_id = $11, valor_total = $12, valor_tributos = $13,
			observacoes = $14, informacoes_adicionais = $15,
			xml_original = $16, xml_assinado = $17, motivo_rejeicao = $18,
			itens = $19, updated_at = $20
		WHERE id = $21`,
		n.Numero, n.Serie, n.Tipo, n.Status, n.Finalidade, n.ChaveAcesso,
		n.ProtocoloAutorizacao, n.DataEmissao, n.DataVencimento,
		n.EmpresaID, n.ClienteID, n.ValorTotal, n.ValorTributos,
		n.Observacoes, n.InformacoesAdicionais, n.XMLOriginal,
		n.XMLAssinado, n.MotivoRejeicao, n.Itens, n.UpdatedAt, n.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrNotaFiscalDuplicada
		}
		return fmt.Errorf("erro ao atualizar nota fiscal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotaFiscalNotFound
	}

	return nil
}

// Delete implementa notafiscal.Repository.Delete
func (r *NotaFiscalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM notas_fiscais WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir nota fiscal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotaFiscalNotFound
	}

	return nil
}

// Count implementa notafiscal.Repository.Count
func (r *NotaFiscalRepository) Count(ctx context.Context, empresaID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM notas_fiscais WHERE empresa_id = $1",
		empresaID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("erro ao contar notas fiscais: %w", err)
	}

	return count, nil
}

// scanNotaFiscal lê uma nota fiscal de uma linha de resultado
func scanNotaFiscal(row pgx.Row) (*notafiscal.NotaFiscal, error) {
	var n notafiscal.NotaFiscal

	err := row.Scan(
		&n.ID, &n.Numero, &n.Serie, &n.Tipo, &n.Status, &n.Finalidade,
		&n.ChaveAcesso, &n.ProtocoloAutorizacao, &n.DataEmissao,
		&n.DataVencimento, &n.EmpresaID, &n.ClienteID, &n.ValorTotal,
		&n.ValorTributos, &n.Observacoes, &n.InformacoesAdicionais,
		&n.XMLOriginal, &n.XMLAssinado, &n.MotivoRejeicao, &n.Itens,
		&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}

	n.Kind = "nota_fiscal"

	return &n, nil
}

// scanNotaFiscalRows é um método auxiliar para processar resultados de
// consultas que retornam múltiplas notas fiscais
func scanNotaFiscalRows(rows pgx.Rows) ([]*notafiscal.NotaFiscal, error) {
	notas := make([]*notafiscal.NotaFiscal, 0)

	for rows.Next() {
		n, err := scanNotaFiscal(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler nota fiscal: %w", err)
		}
		notas = append(notas, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return notas, nil
}
