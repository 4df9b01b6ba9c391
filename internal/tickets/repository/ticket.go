package repository

import (
	"context"
	"sync"
	"time"

	apperrors "paysim/pkg/errors"
	"paysim/pkg/model"

	"github.com/google/uuid"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	FindByID(ctx context.Context, id string) (*model.Ticket, error)
	Count(ctx context.Context) (int64, error)
}

type memoryTicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]*model.Ticket
}

func NewMemoryTicketRepository() TicketRepository {
	return &memoryTicketRepository{
		tickets: make(map[string]*model.Ticket),
	}
}

func (r *memoryTicketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ticket.ID = uuid.New().String()
	ticket.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

func (r *memoryTicketRepository) FindByID(ctx context.Context, id string) (*model.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return nil, apperrors.NotFoundWithID("Ticket", id)
	}

	found := *ticket
	return &found, nil
}

func (r *memoryTicketRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.tickets)), nil
}
