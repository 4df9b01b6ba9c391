package model

import "time"

// GenerateTicketRequest is the body the payment gateway posts once a payment
// succeeded. The client token is opaque to the gateway.
type GenerateTicketRequest struct {
	ClientToken string `json:"clientToken" validate:"required"`
}

type Ticket struct {
	ID          string    `json:"id"`
	PayerID     string    `json:"payerId"`
	PaymentID   string    `json:"paymentId"`
	ScreenID    string    `json:"screenId,omitempty"`
	MovieShowID string    `json:"movieShowId"`
	SeatsBooked string    `json:"seatsBooked"`
	CreatedAt   time.Time `json:"createdAt"`
}
