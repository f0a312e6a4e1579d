package repository

import (
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/phonehub-pos/internal/domain/repository"
)

const defaultMaxSessions = 256

type sessionRepository struct {
	cache *lru.Cache
}

// NewSessionRepository keeps at most maxSessions live sessions. The least
// recently used session is evicted when a new one would exceed the bound.
func NewSessionRepository(maxSessions int) (domainRepo.SessionRepository, error) {
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	cache, err := lru.New(maxSessions)
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	return &sessionRepository{cache: cache}, nil
}

func (r *sessionRepository) Save(session *entity.Session) error {
	if session == nil {
		return fmt.Errorf("nil session")
	}
	r.cache.Add(session.ID, session)
	return nil
}

func (r *sessionRepository) Get(id uuid.UUID) (*entity.Session, error) {
	v, ok := r.cache.Get(id)
	if !ok {
		return nil, nil
	}
	return v.(*entity.Session), nil
}

func (r *sessionRepository) Delete(id uuid.UUID) bool {
	return r.cache.Remove(id)
}

func (r *sessionRepository) Count() int {
	return r.cache.Len()
}
