package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrItemNotaFiscalNotFound indica que o item não existe
var ErrItemNotaFiscalNotFound = errors.New("item de nota fiscal não encontrado")

const itemNotaFiscalColumns = `id, nota_fiscal_id, produto_id, numero_item,
	tipo, codigo_produto, codigo_ean, descricao, ncm, cest, cfop,
	codigo_servico, unidade_comercial, quantidade, valor_unitario,
	valor_total, valor_desconto, valor_outros, origem, tributos,
	informacoes_adicionais, created_at, updated_at`

// ItemNotaFiscalRepository implementa a interface notafiscal.ItemRepository
type ItemNotaFiscalRepository struct {
	db *pgxpool.Pool
}

// NewItemNotaFiscalRepository cria uma nova instância de ItemNotaFiscalRepository
func NewItemNotaFiscalRepository(db *pgxpool.Pool) notafiscal.ItemRepository {
	return &ItemNotaFiscalRepository{
		db: db,
	}
}

// Create implementa notafiscal.ItemRepository.Create
func (r *ItemNotaFiscalRepository) Create(ctx context.Context, item *notafiscal.ItemNotaFiscal) error {
	tributos, err := json.Marshal(item.Tributos)
	if err != nil {
		return fmt.Errorf("erro ao converter tributos para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO itens_nota_fiscal (
			id, nota_fiscal_id, produto_id, numero_item, tipo,
			codigo_produto, codigo_ean, descricao, ncm, cest, cfop,
			codigo_servico, unidade_comercial, quantidade, valor_unitario,
			valor_total, valor_desconto, valor_outros, origem, tributos,
			informacoes_adicionais, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23
		)`,
		item.ID, item.NotaFiscalID, item.ProdutoID, item.NumeroItem,
		item.Tipo, item.CodigoProduto, item.CodigoEAN, item.Descricao,
		item.NCM, item.CEST, item.CFOP, item.CodigoServico,
		item.UnidadeComercial, item.Quantidade, item.ValorUnitario,
		item.ValorTotal, item.ValorDesconto, item.ValorOutros,
		item.Origem, tributos, item.InformacoesAdicionais,
		item.CreatedAt, item.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar item de nota fiscal: %w", err)
	}

	return nil
}

// FindByID implementa notafiscal.ItemRepository.FindByID
func (r *ItemNotaFiscalRepository) FindByID(ctx context.Context, id string) (*notafiscal.ItemNotaFiscal, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+itemNotaFiscalColumns+` FROM itens_nota_fiscal WHERE id = $1`, id)

	item, err := scanItemNotaFiscal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotaFiscalNotFound
		}
		return nil, fmt.Errorf("erro ao buscar item de nota fiscal: %w", err)
	}
	return item, nil
}

// FindByNotaFiscal implementa notafiscal.ItemRepository.FindByNotaFiscal
func (r *ItemNotaFiscalRepository) FindByNotaFiscal(ctx context.Context, notaFiscalID string) ([]*notafiscal.ItemNotaFiscal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+itemNotaFiscalColumns+` FROM itens_nota_fiscal
		WHERE nota_fiscal_id = $1
		ORDER BY numero_item ASC`,
		notaFiscalID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar itens da nota fiscal: %w", err)
	}
	defer rows.Close()

	itens := make([]*notafiscal.ItemNotaFiscal, 0)
	for rows.Next() {
		item, err := scanItemNotaFiscal(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler item de nota fiscal: %w", err)
		}
		itens = append(itens, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return itens, nil
}

// Update implementa notafiscal.ItemRepository.Update
func (r *ItemNotaFiscalRepository) Update(ctx context.Context, item *notafiscal.ItemNotaFiscal) error {
	tributos, err := json.Marshal(item.Tributos)
	if err != nil {
		return fmt.Errorf("erro ao converter tributos para JSON: %w", err)
	}

	result, err := r.db.Exec(ctx,
		`UPDATE itens_nota_fiscal SET
			numero_item = $1, tipo = $2, codigo_produto = $3,
			codigo_ean = $4, descricao = $5, ncm = $6, cest = $7,
			cfop = $8, codigo_servico = $9, unidade_comercial = $10,
			quantidade = $11, valor_unitario = $12, valor_total = $13,
			valor_desconto = $14, valor_outros = $15, origem = $16,
			tributos = $17, informacoes_adicionais = $18, updated_at = $19
		WHERE id = $20`,
		item.NumeroItem, item.Tipo, item.CodigoProduto, item.CodigoEAN,
		item.Descricao, item.NCM, item.CEST, item.CFOP,
		item.CodigoServico, item.UnidadeComercial, item.Quantidade,
		item.ValorUnitario, item.ValorTotal, item.ValorDesconto,
		item.ValorOutros, item.Origem, tributos,
		item.InformacoesAdicionais, item.UpdatedAt, item.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar item de nota fiscal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrItemNotaFiscalNotFound
	}

	return nil
}

// Delete implementa notafiscal.ItemRepository.Delete
func (r *ItemNotaFiscalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM itens_nota_fiscal WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir item de nota fiscal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrItemNotaFiscalNotFound
	}

	return nil
}

// DeleteByNotaFiscal implementa notafiscal.ItemRepository.DeleteByNotaFiscal
func (r *ItemNotaFiscalRepository) DeleteByNotaFiscal(ctx context.Context, notaFiscalID string) error {
	_, err := r.db.Exec(ctx,
		"DELETE FROM itens_nota_fiscal WHERE nota_fiscal_id = $1", notaFiscalID)
	if err != nil {
		return fmt.Errorf("erro ao excluir itens da nota fiscal: %w", err)
	}

	return nil
}

// scanItemNotaFiscal lê um item de uma linha de resultado
func scanItemNotaFiscal(row pgx.Row) (*notafiscal.ItemNotaFiscal, error) {
	var item notafiscal.ItemNotaFiscal
	var tributosJSON []byte

	err := row.Scan(
		&item.ID, &item.NotaFiscalID, &item.ProdutoID, &item.NumeroItem,
		&item.Tipo, &item.CodigoProduto, &item.CodigoEAN, &item.Descricao,
		&item.NCM, &item.CEST, &item.CFOP, &item.CodigoServico,
		&item.UnidadeComercial, &item.Quantidade, &item.ValorUnitario,
		&item.ValorTotal, &item.ValorDesconto, &item.ValorOutros,
		&item.Origem, &tributosJSON, &item.InformacoesAdicionais,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	item.Kind = "item_nota_fiscal"

	if err := json.Unmarshal(tributosJSON, &item.Tributos); err != nil {
		return nil, fmt.Errorf("erro ao converter tributos: %w", err)
	}

	return &item, nil
}
