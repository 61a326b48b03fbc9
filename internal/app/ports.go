package app

import (
	"context"

	"github.com/evanschultz/tack/internal/domain"
)

// Store persists board documents. The backing location is always passed explicitly.
type Store interface {
	Load(context.Context, string) (domain.Board, error)
	Save(context.Context, string, domain.Board) error
	Create(context.Context, string, domain.Board) error
}
