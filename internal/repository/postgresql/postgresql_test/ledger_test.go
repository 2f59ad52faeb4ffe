package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/presence-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/presence-backend-go/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*60*60)

func setupLedgerTest(t *testing.T) (*TestDatabaseSetup, context.Context) {
	t.Helper()
	ctx := context.Background()

	setup, ok, err := NewTestDatabase(ctx)
	if !ok {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, err)
	t.Cleanup(setup.Close)

	require.NoError(t, setup.TruncateAllTables(ctx))
	require.NoError(t, setup.InsertEmployee(ctx, employee.Employee{
		ID: "emp-1", FullName: "Budi Santoso", EmploymentStatus: employee.EmploymentStatusActive,
	}))
	require.NoError(t, setup.InsertEmployee(ctx, employee.Employee{
		ID: "emp-2", FullName: "Ani Wijaya", EmploymentStatus: employee.EmploymentStatusResigned,
	}))

	return setup, ctx
}

// newLedger builds a ledger with its own process-local lock, standing in for
// one API instance.
func newLedger(setup *TestDatabaseSetup) attendance.Ledger {
	return attendanceService.NewLedger(
		postgresql.NewAttendanceRepository(setup.DB),
		postgresql.NewTransactor(setup.DB),
		lock.NewKeyedMutex(),
		attendance.DefaultCheckInWindow(),
		wib,
	)
}

func TestLedger_PostgresRoundTrip(t *testing.T) {
	setup, ctx := setupLedgerTest(t)
	ledger := newLedger(setup)

	in := time.Date(2024, 3, 1, 7, 45, 0, 123456789, wib)
	notes := "from the warehouse"
	opened, err := ledger.CheckIn(ctx, "emp-1", &notes, in)
	require.NoError(t, err)
	assert.True(t, opened.IsOpen())
	assert.True(t, opened.ClockIn.Equal(in.Truncate(time.Microsecond)))

	open, err := ledger.HasOpenSessionToday(ctx, "emp-1", in.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, open)

	_, err = ledger.CheckIn(ctx, "emp-1", nil, in.Add(time.Minute))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedInToday)

	closed, err := ledger.CheckOut(ctx, "emp-1", time.Date(2024, 3, 1, 16, 45, 0, 0, wib))
	require.NoError(t, err)
	require.NotNil(t, closed.WorkDuration)
	assert.Equal(t, 9*time.Hour-123456*time.Microsecond, *closed.WorkDuration)

	_, err = ledger.CheckOut(ctx, "emp-1", time.Date(2024, 3, 1, 17, 0, 0, 0, wib))
	assert.ErrorIs(t, err, attendance.ErrNoOpenSessionFound)

	records, err := ledger.List(ctx, "emp-1", nil, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, opened.ID, records[0].ID)
	require.NotNil(t, records[0].Notes)
	assert.Equal(t, notes, *records[0].Notes)
}

func TestLedger_PostgresUniqueAcrossInstances(t *testing.T) {
	setup, ctx := setupLedgerTest(t)

	const instances = 8
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, wib)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < instances; i++ {
		wg.Add(1)
		go func(ledger attendance.Ledger) {
			defer wg.Done()
			_, err := ledger.CheckIn(ctx, "emp-1", nil, now)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, attendance.ErrAlreadyCheckedInToday):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(newLedger(setup))
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, instances-1, rejected)

	records, err := newLedger(setup).List(ctx, "emp-1", nil, nil)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestEmployeeDirectory_Postgres(t *testing.T) {
	setup, ctx := setupLedgerTest(t)
	dir := postgresql.NewEmployeeRepository(setup.DB)

	active, err := dir.IsActiveEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.True(t, active)

	active, err = dir.IsActiveEmployee(ctx, "emp-2")
	require.NoError(t, err)
	assert.False(t, active)

	_, err = dir.DisplayName(ctx, "ghost")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	employees, err := dir.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "emp-1", employees[0].ID)
}
