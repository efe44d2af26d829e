package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/obreport/internal/db"
	"github.com/alexanderramin/obreport/internal/domain"
	"github.com/alexanderramin/obreport/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRunRepo_CreateAndListRecent(t *testing.T) {
	conn := testutil.NewTestDB(t)
	repo := NewSQLiteReportRunRepo(conn)
	ctx := context.Background()

	base := time.Date(2025, 3, 14, 13, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		run := testutil.NewTestRun(domain.ModeDaily, "2025-03-14",
			testutil.WithRunCreatedAt(base.Add(time.Duration(i)*time.Minute)),
			testutil.WithRunOutput("daily-"+string(rune('a'+i))+".xlsx"))
		run.DroppedEvents = i
		require.NoError(t, repo.Create(ctx, run))
	}

	runs, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "daily-d.xlsx", runs[0].OutputPath)
	assert.Equal(t, 3, runs[0].DroppedEvents)
	assert.Equal(t, "daily-c.xlsx", runs[1].OutputPath)
	assert.Equal(t, domain.ModeDaily, runs[0].Mode)
	assert.Equal(t, 7.5, runs[0].TotalEWH)

	all, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestReportRunRepo_ListByDate(t *testing.T) {
	conn := testutil.NewTestDB(t)
	repo := NewSQLiteReportRunRepo(conn)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestRun(domain.ModeDaily, "2025-03-14")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestRun(domain.ModeEfficiency, "2025-03-14")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestRun(domain.ModeDaily, "2025-03-15")))

	runs, err := repo.ListByDate(ctx, "2025-03-14")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, domain.ModeDaily, runs[0].Mode)
	assert.Equal(t, domain.ModeEfficiency, runs[1].Mode)
}

func TestReportRunRepo_WithinTxRollback(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: assert.AnError}
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := NewSQLiteReportRunRepo(tx)
		if err := repo.Create(ctx, testutil.NewTestRun(domain.ModeDaily, "2025-03-14")); err != nil {
			return err
		}
		return repo.Create(ctx, testutil.NewTestRun(domain.ModeEfficiency, "2025-03-14"))
	})
	require.ErrorIs(t, err, assert.AnError)

	runs, err := NewSQLiteReportRunRepo(database).ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestReportRunRepo_CreateRejectsUnknownMode(t *testing.T) {
	repo := NewSQLiteReportRunRepo(testutil.NewTestDB(t))

	err := repo.Create(context.Background(), testutil.NewTestRun("weekly", "2025-03-14"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown mode "weekly"`)
}
