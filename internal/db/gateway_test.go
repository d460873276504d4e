package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"countyapi/internal/models"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	gdb, err := NewDB("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")))
	require.NoError(t, err)
	gw := NewGateway(gdb, time.Second)
	t.Cleanup(func() { gw.Close() })
	return gw
}

func TestNewDBIdempotent(t *testing.T) {
	gw := newTestGateway(t)
	require.NoError(t, Migrate(gw.db))
	require.True(t, gw.db.Migrator().HasTable(&models.User{}))
	require.True(t, gw.db.Migrator().HasTable(&models.Item{}))
}

func TestNewDBUnknownDriver(t *testing.T) {
	_, err := NewDB("mysql", "whatever")
	require.Error(t, err)
}

func TestUsers(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	id1, err := gw.InsertUser(ctx, "Ann", "ann@example.com")
	require.NoError(t, err)
	id2, err := gw.InsertUser(ctx, "Bob", "bob@example.com")
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)

	_, err = gw.InsertUser(ctx, "Ann2", "ann@example.com")
	require.Error(t, err)
	var se *StorageError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "insert user", se.Op)
	require.Contains(t, err.Error(), "UNIQUE")

	_, err = gw.InsertUser(ctx, "", "x@example.com")
	require.ErrorIs(t, err, ErrValidation)

	users, err := gw.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "Ann", users[0].Name)
	require.Equal(t, "bob@example.com", users[1].Email)
}

func TestItemsBatch(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	items := []models.Item{
		{Record: 1, Name: "Widget", Quantity: decimal.NewFromInt(2), NetPrice: decimal.RequireFromString("9.5")},
		{Name: "Empty"},
	}
	n, err := gw.InsertItemsBatch(ctx, items)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	got, err := gw.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(1), got[0].Record)
	require.True(t, got[0].NetPrice.Equal(decimal.RequireFromString("9.5")))
	require.Equal(t, int64(0), got[1].Record)
	require.True(t, got[1].Quantity.IsZero())
}

func TestStorageErrorAfterClose(t *testing.T) {
	gw := newTestGateway(t)
	require.NoError(t, gw.Close())
	ctx := context.Background()

	_, err := gw.ListItems(ctx)
	var se *StorageError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "list items", se.Op)

	n, err := gw.InsertItemsBatch(ctx, []models.Item{{Name: "x"}})
	require.Error(t, err)
	require.Equal(t, 0, n)

	require.Error(t, gw.Ping(ctx))
}

func TestStorageErrorIs(t *testing.T) {
	base := errors.New("UNIQUE constraint failed: users.email")
	err := error(&StorageError{Op: "insert user", Err: base, Constraint: true})
	require.ErrorIs(t, err, ErrConstraintViolation)
	require.ErrorIs(t, err, base)
	require.Equal(t, base.Error(), err.Error())

	err = &StorageError{Op: "list users", Err: base}
	require.False(t, errors.Is(err, ErrConstraintViolation))
}

func TestInsertItemsBatchKeepsEarlierRows(t *testing.T) {
	gw := newTestGateway(t)
	require.NoError(t, gw.db.Exec(`CREATE TRIGGER items_reject BEFORE INSERT ON items
WHEN NEW.name = 'bad'
BEGIN
	SELECT RAISE(ABORT, 'rejected item');
END`).Error)
	ctx := context.Background()

	n, err := gw.InsertItemsBatch(ctx, []models.Item{
		{Record: 1, Name: "good"},
		{Record: 2, Name: "bad"},
		{Record: 3, Name: "never"},
	})
	require.Equal(t, 1, n)
	var se *StorageError
	require.True(t, errors.As(err, &se), "err %v", err)
	require.Equal(t, "insert item", se.Op)
	require.Contains(t, err.Error(), "rejected item")

	got, err := gw.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "good", got[0].Name)
}

func TestCallsIgnoreCallerCancellation(t *testing.T) {
	gw := newTestGateway(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := gw.InsertItemsBatch(ctx, []models.Item{{Name: "a"}, {Name: "b"}})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, err = gw.InsertUser(ctx, "Ann", "ann@example.com")
	require.NoError(t, err)

	items, err := gw.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NoError(t, gw.Ping(ctx))
}
