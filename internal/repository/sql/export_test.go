package sql

import "database/sql"

// NewProductRepositoryWithTx is a test helper to build a repository bound to a transaction.
func NewProductRepositoryWithTx(db *sql.DB, tx *sql.Tx) *ProductRepository {
	return &ProductRepository{db: db, txn: tx}
}

// GetTxFromProductRepo is a test helper to extract transaction from ProductRepository.
func GetTxFromProductRepo(repo *ProductRepository) *sql.Tx {
	return repo.txn
}
