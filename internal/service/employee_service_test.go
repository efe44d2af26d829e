package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/obreport/internal/repository"
	"github.com/alexanderramin/obreport/internal/testutil"
)

func TestEmployeeService_AddListRemove(t *testing.T) {
	svc := NewEmployeeService(repository.NewSQLiteEmployeeRepo(testutil.NewTestDB(t)))
	ctx := context.Background()

	carol, err := svc.Add(ctx, "  Carol ")
	require.NoError(t, err)
	assert.Equal(t, "Carol", carol.Name)
	assert.NotEmpty(t, carol.ID)

	_, err = svc.Add(ctx, "Alice")
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, svc.Remove(ctx, "Carol"))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice", list[0].Name)
}

func TestEmployeeService_RejectsBlankAndDuplicate(t *testing.T) {
	svc := NewEmployeeService(repository.NewSQLiteEmployeeRepo(testutil.NewTestDB(t)))
	ctx := context.Background()

	_, err := svc.Add(ctx, "   ")
	assert.Error(t, err)

	_, err = svc.Add(ctx, "Carol")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Carol")
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	assert.ErrorIs(t, svc.Remove(ctx, "Nobody"), repository.ErrNotFound)
}
