package repository

import (
	"context"

	"github.com/sangkips/phonehub-pos/internal/domain/entity"
)

// EventPublisher announces committed sales to other systems. Publishing is
// best effort and never affects a committed sale.
type EventPublisher interface {
	PublishSaleCommitted(ctx context.Context, event *entity.SaleCommittedEvent) error
	Close() error
}
