package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
)

// TestDatabaseSetup holds a migrated test database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies migrations. ok is
// false when the variable is unset.
func NewTestDatabase(ctx context.Context) (setup *TestDatabaseSetup, ok bool, err error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, false, nil
	}

	if err := database.Migrate(dsn, "up"); err != nil {
		return nil, true, fmt.Errorf("failed to migrate test database: %w", err)
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 10, MinConns: 1})
	if err != nil {
		return nil, true, fmt.Errorf("failed to connect to test database: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, true, nil
}

// TruncateAllTables removes all rows
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	_, err := t.DB.Exec(ctx, "TRUNCATE TABLE attendances, employees CASCADE")
	return err
}

// InsertEmployee seeds one employee row
func (t *TestDatabaseSetup) InsertEmployee(ctx context.Context, e employee.Employee) error {
	_, err := t.DB.Exec(ctx,
		`INSERT INTO employees (id, full_name, employment_status) VALUES ($1, $2, $3)`,
		e.ID, e.FullName, e.EmploymentStatus,
	)
	return err
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
