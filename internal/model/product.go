package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents an inventory item owned by a single user.
// Version starts at 1 and increases by exactly one on every successful
// mutation; it is the tag the optimistic-concurrency update compares against.
type Product struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Stock     int
	Version   int
	UpdatedAt time.Time
	CreatedAt time.Time
}

// InitMeta initializes the product metadata including ID, version and timestamps.
func (p *Product) InitMeta() {
	p.ID = uuid.New()
	if p.Version == 0 {
		p.Version = 1
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
}
