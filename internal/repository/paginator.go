package repository

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidPaginationToken is returned when a pagination token cannot be decoded.
	ErrInvalidPaginationToken = errors.New("token is invalid")
)

const (
	// DefaultPaginationLimit is the default number of items per page.
	DefaultPaginationLimit = 50
	maxPaginationLimit     = 100
)

// Paginator represents keyset pagination state. Listings are ordered by id
// ascending, so the cursor is the last id of the previous page.
type Paginator struct {
	LastID uuid.UUID
}

// Encode encodes the paginator state into a base64-encoded token.
func (t Paginator) Encode() string {
	return base64.StdEncoding.EncodeToString([]byte(t.LastID.String()))
}

// DecodePageToken decodes a base64-encoded pagination token into a Paginator.
func DecodePageToken(encodedToken string) (*Paginator, error) {
	bytes, err := base64.StdEncoding.DecodeString(encodedToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 token: %w", err)
	}

	id, err := uuid.Parse(string(bytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token ID: %w", ErrInvalidPaginationToken)
	}

	return &Paginator{LastID: id}, nil
}
