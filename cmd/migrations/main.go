package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/jedzonko/recipes-api/internal/config"
	"github.com/jedzonko/recipes-api/internal/logger"
)

// Runs a single migration file by name, e.g. `migrations init` applies
// 000001_init.up.sql.
func main() {
	log := logger.New(0)

	if len(os.Args) < 2 {
		log.Fatal("a migration name is required")
	}
	migrationName := os.Args[1]

	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Fatal("failed to load config", "error", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("failed to open database", "error", err)
	}
	defer db.Close()

	basePath := filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")
	fileContent, err := migrationFileContent(basePath, migrationName)
	if err != nil {
		log.Fatal("failed to read migration", "error", err)
	}

	if _, err := db.Exec(string(fileContent)); err != nil {
		log.Fatal("failed to execute migration", "error", err)
	}

	log.Info("migration executed", "name", migrationName)
}

func migrationFileContent(basePath string, migrationName string) ([]byte, error) {
	filePath, err := migrationFilePath(basePath, migrationName)
	if err != nil {
		return nil, err
	}

	fileContent, err := os.ReadFile(filepath.Join(basePath, filePath))
	if err != nil {
		return nil, err
	}

	return fileContent, nil
}

func migrationFilePath(basePath string, migrationName string) (string, error) {
	patternStr := fmt.Sprintf(`^.*%s\.up\.sql`, regexp.QuoteMeta(migrationName))

	regex, err := regexp.Compile(patternStr)
	if err != nil {
		return "", fmt.Errorf("invalid pattern: %w", err)
	}

	files, _ := os.ReadDir(basePath)
	for _, f := range files {
		if f.IsDir() {
			continue
		}

		if regex.MatchString(f.Name()) {
			return f.Name(), nil
		}
	}

	return "", fmt.Errorf("migration file not found")
}
