package sql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/iyhunko/inventory-tracker/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionalRepository_UpdateStockWithEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("update and event commit together", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewTransactionalRepository(db)

		id := uuid.New()
		ownerID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(productColumns).
			AddRow(id, ownerID, "Widget", 15, 2, now, now)

		mock.ExpectBegin()
		mock.ExpectPrepare("UPDATE products SET stock = \\$1, version = version \\+ 1").
			ExpectQuery().
			WithArgs(15, sqlmock.AnyArg(), id, 1).
			WillReturnRows(rows)
		mock.ExpectPrepare("INSERT INTO events").
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), "stock_adjusted", sqlmock.AnyArg(), "pending", sqlmock.AnyArg(), nil).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		event, err := NewEvent("stock_adjusted", map[string]any{"product_id": id.String()})
		require.NoError(t, err)

		updated, err := repo.UpdateStockWithEvent(ctx, id, 1, 15, event)
		require.NoError(t, err)
		assert.Equal(t, 15, updated.Stock)
		assert.Equal(t, 2, updated.Version)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("version conflict rolls back without event", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewTransactionalRepository(db)

		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectPrepare("UPDATE products SET stock = \\$1, version = version \\+ 1").
			ExpectQuery().
			WithArgs(15, sqlmock.AnyArg(), id, 1).
			WillReturnRows(sqlmock.NewRows(productColumns))
		mock.ExpectRollback()

		event, err := NewEvent("stock_adjusted", map[string]any{"product_id": id.String()})
		require.NoError(t, err)

		updated, err := repo.UpdateStockWithEvent(ctx, id, 1, 15, event)
		require.Error(t, err)
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, repository.ErrVersionConflict)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionalRepository_DeleteProductWithEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("delete and event commit together", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewTransactionalRepository(db)

		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectPrepare("DELETE FROM products WHERE id = \\$1").
			ExpectExec().
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectPrepare("INSERT INTO events").
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), "product_deleted", sqlmock.AnyArg(), "pending", sqlmock.AnyArg(), nil).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		event, err := NewEvent("product_deleted", map[string]any{"product_id": id.String()})
		require.NoError(t, err)

		err = repo.DeleteProductWithEvent(ctx, id, event)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing product rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewTransactionalRepository(db)

		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectPrepare("DELETE FROM products WHERE id = \\$1").
			ExpectExec().
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		event, err := NewEvent("product_deleted", map[string]any{"product_id": id.String()})
		require.NoError(t, err)

		err = repo.DeleteProductWithEvent(ctx, id, event)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
