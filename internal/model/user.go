package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Password holds the bcrypt digest,
// never the plain secret.
type User struct {
	ID        uuid.UUID
	Email     string
	Password  string
	UpdatedAt time.Time
	CreatedAt time.Time
}

func (u *User) InitMeta() {
	u.ID = uuid.New()
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
}
