package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_nutrition_store.go -package=mocks nutrichat/internal/storage NutritionStore

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"nutrichat/internal/dataset"
)

// NutritionStore defines the interface for nutrition table operations.
type NutritionStore interface {
	// ReplaceAll rebuilds the nutrition table from the loaded dataset.
	// The previous table contents are fully replaced, never appended to.
	ReplaceAll(ctx context.Context, table *dataset.Table) error
	// SearchByName returns rows whose name contains the query,
	// case-insensitively.
	SearchByName(ctx context.Context, name string) ([]NutritionFact, error)
}

// NutritionRepo provides nutrition table operations backed by SQLite.
// It implements the NutritionStore interface.
type NutritionRepo struct {
	db *sql.DB
}

// NewNutritionRepo creates a new NutritionRepo.
func NewNutritionRepo(db *sql.DB) *NutritionRepo {
	return &NutritionRepo{db: db}
}

// identPattern restricts column identifiers to what NormalizeColumn emits.
var identPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// ReplaceAll drops and recreates the nutrition table with the dataset's
// columns plus description, then inserts every record in one transaction.
func (r *NutritionRepo) ReplaceAll(ctx context.Context, table *dataset.Table) error {
	columns := append([]string{}, table.Columns...)
	columns = append(columns, "description")
	for _, col := range columns {
		if !identPattern.MatchString(col) {
			return fmt.Errorf("invalid column name %q", col)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS nutrition"); err != nil {
		return fmt.Errorf("failed to drop nutrition table: %w", err)
	}

	defs := make([]string, len(columns))
	for i, col := range columns {
		switch col {
		case "calories", "proteins", "fat", "carbohydrate":
			defs[i] = col + " REAL NOT NULL"
		default:
			defs[i] = col + " TEXT NOT NULL"
		}
	}
	createStmt := fmt.Sprintf("CREATE TABLE nutrition (%s)", strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("failed to create nutrition table: %w", err)
	}

	placeholders := strings.TrimRight(strings.Repeat("?,", len(columns)), ",")
	insertStmt := fmt.Sprintf("INSERT INTO nutrition (%s) VALUES (%s)",
		strings.Join(columns, ", "), placeholders)
	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, rec := range table.Records {
		args := make([]any, 0, len(columns))
		for _, col := range table.Columns {
			switch col {
			case "name":
				args = append(args, rec.Name)
			case "calories":
				args = append(args, rec.Calories)
			case "proteins":
				args = append(args, rec.Proteins)
			case "fat":
				args = append(args, rec.Fat)
			case "carbohydrate":
				args = append(args, rec.Carbohydrate)
			default:
				args = append(args, rec.Extra[col])
			}
		}
		args = append(args, rec.Description)

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert record %q: %w", rec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// SearchByName returns rows whose name contains the query, case-insensitively.
func (r *NutritionRepo) SearchByName(ctx context.Context, name string) ([]NutritionFact, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name, calories, proteins, fat, carbohydrate, description FROM nutrition WHERE LOWER(name) LIKE ?",
		"%"+strings.ToLower(name)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query nutrition: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var facts []NutritionFact
	for rows.Next() {
		var fact NutritionFact
		if err := rows.Scan(&fact.Name, &fact.Calories, &fact.Proteins, &fact.Fat, &fact.Carbohydrate, &fact.Description); err != nil {
			return nil, fmt.Errorf("failed to scan nutrition row: %w", err)
		}
		facts = append(facts, fact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read nutrition rows: %w", err)
	}

	return facts, nil
}
