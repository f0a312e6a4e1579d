package repository

import (
	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
)

// SessionRepository holds live POS sessions in memory
type SessionRepository interface {
	Save(session *entity.Session) error
	// Get returns nil, nil when the session does not exist
	Get(id uuid.UUID) (*entity.Session, error)
	Delete(id uuid.UUID) bool
	Count() int
}
