package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/iyhunko/inventory-tracker/internal/model"
)

// TransactionalRepository groups a mutation and its outbox event into a single
// database transaction, so the event is recorded if and only if the write
// committed.
type TransactionalRepository struct {
	db *sql.DB
}

// NewTransactionalRepository creates a new TransactionalRepository
func NewTransactionalRepository(db *sql.DB) *TransactionalRepository {
	return &TransactionalRepository{db: db}
}

// UpdateStockWithEvent performs the conditional stock update and inserts the
// outbox event in one transaction. The version gate itself lives in the
// UPDATE's WHERE clause; the transaction only ties the event record to the
// winning write.
func (tr *TransactionalRepository) UpdateStockWithEvent(ctx context.Context, productID uuid.UUID, expectedVersion, newStock int, event *model.Event) (*model.Product, error) {
	tx, err := tr.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	productRepo := &ProductRepository{db: tr.db, txn: tx}
	eventRepo := &EventRepository{db: tr.db, txn: tx}

	updated, err := productRepo.UpdateStock(ctx, productID, expectedVersion, newStock)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := eventRepo.Create(ctx, event); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}

// DeleteProductWithEvent deletes a product and creates a deletion event in a single transaction
func (tr *TransactionalRepository) DeleteProductWithEvent(ctx context.Context, productID uuid.UUID, event *model.Event) error {
	tx, err := tr.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	productRepo := &ProductRepository{db: tr.db, txn: tx}
	eventRepo := &EventRepository{db: tr.db, txn: tx}

	if err := productRepo.DeleteByID(ctx, productID); err != nil {
		tx.Rollback()
		return err
	}

	if err := eventRepo.Create(ctx, event); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
