package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/GuiEstevamCorrea/AxFisco/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	// Criar conexão com o banco
	db, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Erro ao conectar com o banco de dados: %v", err)
	}

	// Executar as migrações
	if err := runMigrations(db); err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	log.Println("Migrações executadas com sucesso!")
}

func runMigrations(db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	conn, err := db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("erro ao obter conexão: %w", err)
	}
	defer conn.Release()

	// Verificar se a tabela de migrações existe
	if err := createMigrationsTable(ctx, conn); err != nil {
		return fmt.Errorf("erro ao criar tabela de migrações: %w", err)
	}

	// Verificar última migração executada
	lastMigration, err := getLastMigration(ctx, conn)
	if err != nil {
		return fmt.Errorf("erro ao verificar última migração: %w", err)
	}

	log.Printf("Última migração executada: %s", lastMigration)

	// Lista de migrações
	migrations := []migration{
		{
			version: "001_create_companies",
			up: `
				-- Tabela de empresas emitentes
				CREATE TABLE IF NOT EXISTS companies (
					id UUID PRIMARY KEY,
					corporate_name VARCHAR(255) NOT NULL,
					trade_name VARCHAR(255),
					cnpj VARCHAR(14) UNIQUE NOT NULL,
					state_registration VARCHAR(20) NOT NULL,
					municipal_registration VARCHAR(20),
					address JSONB,
					email VARCHAR(255) NOT NULL,
					phone VARCHAR(20),
					tax_regime VARCHAR(30) NOT NULL,
					is_active BOOLEAN NOT NULL DEFAULT true,
					ambiente VARCHAR(20) NOT NULL DEFAULT 'homologacao',
					serie_nfe INTEGER NOT NULL DEFAULT 1,
					serie_nfse INTEGER NOT NULL DEFAULT 1,
					ultimo_numero_nfe BIGINT NOT NULL DEFAULT 0,
					ultimo_numero_nfse BIGINT NOT NULL DEFAULT 0,
					certificado_arquivo BYTEA,
					certificado_senha VARCHAR(255),
					certificado_validade TIMESTAMP,
					certificado_proprietario VARCHAR(255),
					certificado_numero VARCHAR(100),
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NOT NULL
				);

				-- Índices
				CREATE INDEX IF NOT EXISTS idx_companies_cnpj ON companies(cnpj);
				CREATE INDEX IF NOT EXISTS idx_companies_is_active ON companies(is_active);
			`,
		},
		{
			version: "002_create_customers",
			up: `
				-- Tabela de clientes destinatários
				CREATE TABLE IF NOT EXISTS customers (
					id UUID PRIMARY KEY,
					name VARCHAR(255) NOT NULL,
					email VARCHAR(255) NOT NULL,
					phone VARCHAR(20),
					document VARCHAR(14) UNIQUE NOT NULL,
					customer_type VARCHAR(20) NOT NULL,
					indicador_ie VARCHAR(20) NOT NULL,
					state_registration VARCHAR(20),
					municipal_registration VARCHAR(20),
					address JSONB,
					is_active BOOLEAN NOT NULL DEFAULT true,
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NOT NULL
				);

				-- Índices
				CREATE INDEX IF NOT EXISTS idx_customers_document ON customers(document);
				CREATE INDEX IF NOT EXISTS idx_customers_name ON customers(name);
				CREATE INDEX IF NOT EXISTS idx_customers_is_active ON customers(is_active);
			`,
		},
		{
			version: "003_create_products",
			up: `
				-- Tabela de produtos e serviços
				CREATE TABLE IF NOT EXISTS products (
					id UUID PRIMARY KEY,
					name VARCHAR(255) NOT NULL,
					description TEXT,
					code VARCHAR(50) UNIQUE NOT NULL,
					ncm VARCHAR(8) NOT NULL,
					cfop VARCHAR(4) NOT NULL,
					unit_of_measure VARCHAR(10) NOT NULL,
					unit_price DECIMAL(15,2) NOT NULL,
					product_type VARCHAR(20) NOT NULL,
					tax_info JSONB NOT NULL,
					is_active BOOLEAN NOT NULL DEFAULT true,
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NOT NULL
				);

				-- Índices
				CREATE INDEX IF NOT EXISTS idx_products_code ON products(code);
				CREATE INDEX IF NOT EXISTS idx_products_product_type ON products(product_type);
				CREATE INDEX IF NOT EXISTS idx_products_is_active ON products(is_active);
			`,
		},
		{
			version: "004_create_notas_fiscais",
			up: `
				-- Tabela de notas fiscais
				CREATE TABLE IF NOT EXISTS notas_fiscais (
					id UUID PRIMARY KEY,
					numero BIGINT NOT NULL,
					serie INTEGER NOT NULL,
					tipo VARCHAR(10) NOT NULL,
					status VARCHAR(30) NOT NULL,
					finalidade INTEGER NOT NULL DEFAULT 1,
					chave_acesso VARCHAR(44),
					protocolo_autorizacao VARCHAR(60),
					data_emissao TIMESTAMP NOT NULL,
					data_vencimento TIMESTAMP,
					empresa_id UUID NOT NULL REFERENCES companies(id),
					cliente_id UUID NOT NULL REFERENCES customers(id),
					valor_total DECIMAL(15,2) NOT NULL,
					valor_tributos DECIMAL(15,2) NOT NULL,
					observacoes TEXT,
					informacoes_adicionais TEXT,
					xml_original TEXT,
					xml_assinado TEXT,
					motivo_rejeicao TEXT,
					itens TEXT[],
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NOT NULL,
					UNIQUE(empresa_id, tipo, serie, numero)
				);

				-- Índices
				CREATE UNIQUE INDEX IF NOT EXISTS idx_notas_fiscais_chave_acesso
					ON notas_fiscais(chave_acesso) WHERE chave_acesso IS NOT NULL AND chave_acesso <> '';
				CREATE INDEX IF NOT EXISTS idx_notas_fiscais_empresa_id ON notas_fiscais(empresa_id);
				CREATE INDEX IF NOT EXISTS idx_notas_fiscais_cliente_id ON notas_fiscais(cliente_id);
				CREATE INDEX IF NOT EXISTS idx_notas_fiscais_status ON notas_fiscais(status);
				CREATE INDEX IF NOT EXISTS idx_notas_fiscais_data_emissao ON notas_fiscais(data_emissao);
			`,
		},
		{
			version: "005_create_itens_nota_fiscal",
			up: `
				-- Tabela de itens de nota fiscal
				CREATE TABLE IF NOT EXISTS itens_nota_fiscal (
					id UUID PRIMARY KEY,
					nota_fiscal_id UUID NOT NULL REFERENCES notas_fiscais(id) ON DELETE CASCADE,
					produto_id UUID NOT NULL REFERENCES products(id),
					numero_item INTEGER NOT NULL,
					tipo VARCHAR(20) NOT NULL,
					codigo_produto VARCHAR(50) NOT NULL,
					codigo_ean VARCHAR(14),
					descricao VARCHAR(255) NOT NULL,
					ncm VARCHAR(8) NOT NULL,
					cest VARCHAR(7),
					cfop VARCHAR(4) NOT NULL,
					codigo_servico VARCHAR(10),
					unidade_comercial VARCHAR(10) NOT NULL,
					quantidade DECIMAL(15,4) NOT NULL,
					valor_unitario DECIMAL(15,2) NOT NULL,
					valor_total DECIMAL(15,2) NOT NULL,
					valor_desconto DECIMAL(15,2) NOT NULL DEFAULT 0,
					valor_outros DECIMAL(15,2) NOT NULL DEFAULT 0,
					origem INTEGER NOT NULL DEFAULT 0,
					tributos JSONB NOT NULL,
					informacoes_adicionais TEXT,
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NOT NULL,
					UNIQUE(nota_fiscal_id, numero_item)
				);

				-- Índices
				CREATE INDEX IF NOT EXISTS idx_itens_nota_fiscal_nota_fiscal_id ON itens_nota_fiscal(nota_fiscal_id);
				CREATE INDEX IF NOT EXISTS idx_itens_nota_fiscal_produto_id ON itens_nota_fiscal(produto_id);
			`,
		},
		{
			version: "006_create_users",
			up: `
				-- Tabela de usuários
				CREATE TABLE IF NOT EXISTS users (
					id UUID PRIMARY KEY,
					name VARCHAR(100) NOT NULL,
					email VARCHAR(255) NOT NULL UNIQUE,
					password VARCHAR(255) NOT NULL,
					role VARCHAR(20) NOT NULL,
					status VARCHAR(20) NOT NULL DEFAULT 'active',
					last_login_at TIMESTAMP,
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NOT NULL
				);

				-- Índices
				CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
			`,
		},
	}

	// Executar migrações pendentes
	for _, m := range migrations {
		if m.version <= lastMigration {
			log.Printf("Pulando migração %s (já executada)", m.version)
			continue
		}

		log.Printf("Executando migração %s", m.version)

		// Iniciar transação
		tx, err := conn.Begin(ctx)
		if err != nil {
			return fmt.Errorf("erro ao iniciar transação: %w", err)
		}

		// Executar migração
		_, err = tx.Exec(ctx, m.up)
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Printf("Erro ao fazer rollback: %v", rbErr)
			}
			return fmt.Errorf("erro ao executar migração %s: %w", m.version, err)
		}

		// Registrar migração executada
		_, err = tx.Exec(ctx,
			"INSERT INTO migrations (version, executed_at) VALUES ($1, $2)",
			m.version, time.Now())
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Printf("Erro ao fazer rollback: %v", rbErr)
			}
			return fmt.Errorf("erro ao registrar migração %s: %w", m.version, err)
		}

		// Commit
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("erro ao fazer commit da migração %s: %w", m.version, err)
		}

		log.Printf("Migração %s executada com sucesso", m.version)
	}

	return nil
}

func createMigrationsTable(ctx context.Context, conn *pgxpool.Conn) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version VARCHAR(100) PRIMARY KEY,
			executed_at TIMESTAMP NOT NULL
		)
	`
	_, err := conn.Exec(ctx, query)
	return err
}

func getLastMigration(ctx context.Context, conn *pgxpool.Conn) (string, error) {
	var version string
	err := conn.QueryRow(ctx,
		"SELECT version FROM migrations ORDER BY executed_at DESC LIMIT 1").Scan(&version)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return version, nil
}

type migration struct {
	version string
	up      string
}
