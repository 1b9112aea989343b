package postgresql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/database"
)

//go:embed schema.sql
var schema string

// Migrate creates any missing tables. It is safe to run on every start.
func Migrate(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
