package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// migrateURL monta a URL do banco usada pelo golang-migrate
func migrateURL() string {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL != "" {
		return dbURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "axfisco"),
		getEnv("DB_SSL_MODE", "disable"),
	)
}

// migrateSource monta a URL da pasta de migrações
func migrateSource() string {
	migrationsPath := getEnv("MIGRATIONS_PATH", filepath.Join("migrations"))
	return fmt.Sprintf("file://%s", migrationsPath)
}

// RunMigrations aplica as migrações pendentes do banco de dados
func RunMigrations() error {
	m, err := migrate.New(migrateSource(), migrateURL())
	if err != nil {
		return fmt.Errorf("erro ao criar migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}

	log.Println("Migrações aplicadas com sucesso")
	return nil
}

// RollbackMigration desfaz a última migração aplicada
func RollbackMigration() error {
	m, err := migrate.New(migrateSource(), migrateURL())
	if err != nil {
		return fmt.Errorf("erro ao criar migrate: %w", err)
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil {
		return fmt.Errorf("erro ao desfazer migração: %w", err)
	}

	log.Println("Última migração desfeita com sucesso")
	return nil
}
