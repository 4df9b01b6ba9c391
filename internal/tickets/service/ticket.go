package service

import (
	"context"

	"paysim/internal/tickets/repository"
	apperrors "paysim/pkg/errors"
	"paysim/pkg/logger"
	"paysim/pkg/model"
	"paysim/pkg/token"
)

type TicketService interface {
	Generate(ctx context.Context, clientToken string) (*model.Ticket, error)
	GetByID(ctx context.Context, id string) (*model.Ticket, error)
}

type ticketService struct {
	repo repository.TicketRepository
	log  *logger.Logger
}

func NewTicketService(repo repository.TicketRepository, log *logger.Logger) TicketService {
	return &ticketService{
		repo: repo,
		log:  log,
	}
}

// Generate books the ticket described by the claims of clientToken. The stub
// trusts the token as issued, so the signature is not checked.
func (s *ticketService) Generate(ctx context.Context, clientToken string) (*model.Ticket, error) {
	claims, err := token.Inspect(clientToken)
	if err != nil {
		return nil, apperrors.EntityCreationFailed("Client token could not be read.")
	}

	required := []struct {
		value   string
		message string
	}{
		{claims.PayerID, "User ID not found in client token."},
		{claims.PaymentID, "Payment ID not found in client token."},
		{claims.MovieShowID, "Movie show ID not found in client token."},
		{claims.SeatsBooked, "Seats booked not found in client token."},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, apperrors.EntityCreationFailed(r.message)
		}
	}

	ticket := &model.Ticket{
		PayerID:     claims.PayerID,
		PaymentID:   claims.PaymentID,
		ScreenID:    claims.ScreenID,
		MovieShowID: claims.MovieShowID,
		SeatsBooked: claims.SeatsBooked,
	}

	s.log.Info("Adding a new ticket", "payment_id", ticket.PaymentID, "seats", ticket.SeatsBooked)
	if err := s.repo.Create(ctx, ticket); err != nil {
		s.log.Error("Failed to store ticket", "payment_id", ticket.PaymentID, logger.Err(err))
		return nil, apperrors.Internal("An error occurred while adding a new ticket.", err)
	}

	s.log.Info("Successfully added a new ticket", "ticket_id", ticket.ID)
	return ticket, nil
}

func (s *ticketService) GetByID(ctx context.Context, id string) (*model.Ticket, error) {
	return s.repo.FindByID(ctx, id)
}
