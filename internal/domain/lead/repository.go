package lead

import (
	"context"

	"github.com/RobertWLight/BSC/internal/domain/shared"
)

// Repository persists leads
type Repository interface {
	Save(ctx context.Context, lead *Lead) error
	// FindAll returns leads newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Lead, error)
	Count(ctx context.Context) (int64, error)
}
