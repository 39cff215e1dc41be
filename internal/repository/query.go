package repository

import (
	"errors"
	"log/slog"
)

// Query carries listing parameters: page size and keyset position.
type Query struct {
	Limit int

	Paginator *Paginator
}

// NewQuery creates an empty Query.
func NewQuery() *Query {
	return &Query{}
}

// ApplyPagination sets the page size and decodes the keyset token, if any.
func (q *Query) ApplyPagination(limit int32, token string) error {
	queryLimit := DefaultPaginationLimit
	if limit > 0 {
		queryLimit = min(maxPaginationLimit, int(limit))
	}
	q.Limit = queryLimit

	if token == "" {
		return nil
	}

	paginator, err := DecodePageToken(token)
	if err != nil {
		slog.Error("failed to decode page token", slog.Any("err", err), slog.String("token", token))
		return errors.New("invalid page token")
	}
	q.Paginator = paginator
	return nil
}
