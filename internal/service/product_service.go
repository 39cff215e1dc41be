package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/iyhunko/inventory-tracker/internal/metrics"
	"github.com/iyhunko/inventory-tracker/internal/model"
	"github.com/iyhunko/inventory-tracker/internal/repository"
	reposql "github.com/iyhunko/inventory-tracker/internal/repository/sql"
	"github.com/iyhunko/inventory-tracker/internal/sqs"
)

const (
	// EventTypeStockAdjusted marks outbox events recorded for stock updates.
	EventTypeStockAdjusted = "stock_adjusted"
	// EventTypeProductDeleted marks outbox events recorded for deletions.
	EventTypeProductDeleted = "product_deleted"
)

// ProductRepository is the persistence surface the product service needs.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (*model.Product, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, query repository.Query) ([]*model.Product, error)
	UpdateStock(ctx context.Context, id uuid.UUID, expectedVersion, newStock int) (*model.Product, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// StockTxRepository couples mutations with their outbox events.
type StockTxRepository interface {
	UpdateStockWithEvent(ctx context.Context, productID uuid.UUID, expectedVersion, newStock int, event *model.Event) (*model.Product, error)
	DeleteProductWithEvent(ctx context.Context, productID uuid.UUID, event *model.Event) error
}

// Publisher publishes stock messages to the queue.
type Publisher interface {
	PublishStockMessage(ctx context.Context, msg sqs.StockMessage) error
}

// ProductService owns product entities and the versioned stock-update protocol.
type ProductService struct {
	repo      ProductRepository
	txRepo    StockTxRepository
	publisher Publisher
}

// NewProductService creates a new ProductService.
func NewProductService(repo ProductRepository, txRepo StockTxRepository, publisher Publisher) *ProductService {
	return &ProductService{
		repo:      repo,
		txRepo:    txRepo,
		publisher: publisher,
	}
}

// CreateProduct creates a product for the owner with version 1.
// Name uniqueness is scoped per owner and case-insensitive: a pre-check gives
// a clean error for the common case, the unique index backstops races.
func (ps *ProductService) CreateProduct(ctx context.Context, ownerID uuid.UUID, name string, initialStock int) (*model.Product, error) {
	if name == "" || initialStock < 0 {
		return nil, ErrInvalidInput
	}

	_, err := ps.repo.FindByOwnerAndName(ctx, ownerID, name)
	if err == nil {
		return nil, ErrDuplicateName
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	product := &model.Product{
		OwnerID: ownerID,
		Name:    name,
		Stock:   initialStock,
	}

	if err := ps.repo.Create(ctx, product); err != nil {
		var uniqueErr *repository.UniqueConstraintError
		if errors.As(err, &uniqueErr) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}

	metrics.ProductsCreated.Inc()

	if ps.publisher != nil {
		msg := sqs.StockMessage{
			Action:    "created",
			ProductID: product.ID.String(),
			Name:      product.Name,
			Stock:     product.Stock,
			Version:   product.Version,
		}
		if err := ps.publisher.PublishStockMessage(ctx, msg); err != nil {
			// Log error but don't fail the request
			slog.Error("Failed to send SQS message", slog.Any("err", err), slog.String("action", "created"), slog.String("product_id", product.ID.String()))
		}
	}

	return product, nil
}

// GetProduct retrieves one of the owner's products. Clients call this to
// re-read the current version after a conflict.
func (ps *ProductService) GetProduct(ctx context.Context, id, ownerID uuid.UUID) (*model.Product, error) {
	product, err := ps.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if product.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return product, nil
}

// ListProducts returns the owner's products ordered by id ascending.
// Each call is a fresh snapshot.
func (ps *ProductService) ListProducts(ctx context.Context, ownerID uuid.UUID, query repository.Query) ([]*model.Product, error) {
	return ps.repo.ListByOwner(ctx, ownerID, query)
}

// AdjustStock applies a stock delta guarded by the optimistic version check.
//
// The pre-checks (existence, ownership, version) run against a fetched
// snapshot; the write itself is a conditional UPDATE keyed on the same
// expected version, so an interleaving commit between check and write cannot
// be overwritten silently. It either wins the version tag or we observe the
// conflict. Stock that would go negative clamps to 0. Conflicts are never
// retried here; the client re-reads the current version and resubmits.
func (ps *ProductService) AdjustStock(ctx context.Context, id, ownerID uuid.UUID, expectedVersion, delta int) (*model.Product, error) {
	if expectedVersion < 1 {
		return nil, ErrInvalidInput
	}

	product, err := ps.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if product.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	if product.Version != expectedVersion {
		metrics.VersionConflicts.Inc()
		return nil, ErrVersionConflict
	}

	newStock := product.Stock + delta
	if newStock < 0 {
		newStock = 0
	}

	event, err := reposql.NewEvent(EventTypeStockAdjusted, sqs.StockMessage{
		Action:    "stock_adjusted",
		ProductID: product.ID.String(),
		Name:      product.Name,
		Stock:     newStock,
		Version:   expectedVersion + 1,
	})
	if err != nil {
		return nil, err
	}

	updated, err := ps.txRepo.UpdateStockWithEvent(ctx, id, expectedVersion, newStock, event)
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			// A racing writer committed between our read and the write.
			metrics.VersionConflicts.Inc()
			return nil, ErrVersionConflict
		}
		return nil, err
	}

	metrics.StockUpdates.Inc()
	slog.Info("stock updated",
		slog.String("product_id", updated.ID.String()),
		slog.Int("stock", updated.Stock),
		slog.Int("version", updated.Version),
	)

	return updated, nil
}

// DeleteProduct removes the owner's product and records a deletion event.
func (ps *ProductService) DeleteProduct(ctx context.Context, id, ownerID uuid.UUID) error {
	product, err := ps.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if product.OwnerID != ownerID {
		return ErrForbidden
	}

	event, err := reposql.NewEvent(EventTypeProductDeleted, sqs.StockMessage{
		Action:    "deleted",
		ProductID: product.ID.String(),
		Name:      product.Name,
		Stock:     product.Stock,
		Version:   product.Version,
	})
	if err != nil {
		return err
	}

	if err := ps.txRepo.DeleteProductWithEvent(ctx, id, event); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	metrics.ProductsDeleted.Inc()
	return nil
}
