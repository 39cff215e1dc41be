package sql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iyhunko/inventory-tracker/internal/model"
	"github.com/iyhunko/inventory-tracker/internal/repository"
)

// ProductRepository provides Postgres persistence for Product entities.
type ProductRepository struct {
	db  *sql.DB
	txn *sql.Tx
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// getExecutor returns the active executor (transaction if exists, otherwise db)
func (r *ProductRepository) getExecutor() dbExecutor {
	if r.txn != nil {
		return r.txn
	}
	return r.db
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	// Only initialize metadata if not already set
	if product.ID == uuid.Nil {
		product.InitMeta()
	}

	query := `INSERT INTO products (id, owner_id, name, stock, version, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, product.ID, product.OwnerID, product.Name, product.Stock, product.Version, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &repository.UniqueConstraintError{Detail: uniqueViolationDetail(err)}
		}
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// FindByID retrieves a single product by ID.
func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT id, owner_id, name, stock, version, created_at, updated_at
	          FROM products WHERE id = $1`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var result model.Product
	err = stmt.QueryRowContext(ctx, id).Scan(
		&result.ID, &result.OwnerID, &result.Name, &result.Stock, &result.Version, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &result, nil
}

// FindByOwnerAndName retrieves the owner's product whose name matches
// case-insensitively.
func (r *ProductRepository) FindByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (*model.Product, error) {
	query := `SELECT id, owner_id, name, stock, version, created_at, updated_at
	          FROM products WHERE owner_id = $1 AND lower(name) = $2`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var result model.Product
	err = stmt.QueryRowContext(ctx, ownerID, strings.ToLower(name)).Scan(
		&result.ID, &result.OwnerID, &result.Name, &result.Stock, &result.Version, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &result, nil
}

// ListByOwner retrieves the owner's products ordered by id ascending.
func (r *ProductRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, query repository.Query) ([]*model.Product, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, owner_id, name, stock, version, created_at, updated_at
	          FROM products WHERE owner_id = $1`)

	args := []interface{}{ownerID}
	argIndex := 2

	// Apply keyset pagination
	if query.Paginator != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND id > $%d", argIndex))
		args = append(args, query.Paginator.LastID)
		argIndex++
	}

	queryBuilder.WriteString(" ORDER BY id ASC")

	// Apply limit
	limit := query.Limit
	if limit <= 0 {
		limit = repository.DefaultPaginationLimit
	}
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argIndex))
	args = append(args, limit)

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, queryBuilder.String())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		var product model.Product
		err := rows.Scan(&product.ID, &product.OwnerID, &product.Name, &product.Stock, &product.Version, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, nil
}

// UpdateStock performs the optimistic-concurrency write: the row is updated
// only when its stored version still equals expectedVersion. The version
// check and the write are a single statement, so concurrent attempts against
// the same id are resolved by the database with exactly one winner per
// version; the rest match no row and get ErrVersionConflict.
func (r *ProductRepository) UpdateStock(ctx context.Context, id uuid.UUID, expectedVersion, newStock int) (*model.Product, error) {
	query := `UPDATE products
	          SET stock = $1, version = version + 1, updated_at = $2
	          WHERE id = $3 AND version = $4
	          RETURNING id, owner_id, name, stock, version, created_at, updated_at`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	var result model.Product
	err = stmt.QueryRowContext(ctx, newStock, time.Now(), id, expectedVersion).Scan(
		&result.ID, &result.OwnerID, &result.Name, &result.Stock, &result.Version, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrVersionConflict
		}
		return nil, fmt.Errorf("failed to update product stock: %w", err)
	}

	return &result, nil
}

// DeleteByID deletes a product by ID.
func (r *ProductRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
