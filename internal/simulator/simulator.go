// Package simulator plays the payment gateway's part at the end of a
// successful payment: it asks the ticketing back-end to generate the ticket
// for a client token and reports the outcome on the console.
package simulator

import (
	"context"
	"fmt"
	"io"

	"paysim/pkg/client"
	"paysim/pkg/config"
	apperrors "paysim/pkg/errors"
	"paysim/pkg/logger"
	"paysim/pkg/token"
)

const (
	MessageSuccess = "Ticket booked successfully."
	MessageFailure = "Payment failed because your back-end failed to respond."
)

type Outcome string

const (
	OutcomeSkipped  Outcome = "skipped"
	OutcomeBooked   Outcome = "booked"
	OutcomeRejected Outcome = "rejected"
)

type Result struct {
	Outcome    Outcome
	StatusCode int
	Body       string
}

type TicketGenerator interface {
	Generate(ctx context.Context, clientToken string) (*client.Response, error)
	URL() string
}

type OutcomePublisher interface {
	PublishOutcome(ctx context.Context, clientToken string, result *Result) error
}

type Options struct {
	// PaymentSuccess gates the whole call. When false nothing is sent and
	// nothing is printed.
	PaymentSuccess bool
	// OutputMode is config.OutputModeLegacy or config.OutputModeStrict.
	// Legacy prints the success message even after a rejected request.
	OutputMode string
}

func DefaultOptions() Options {
	return Options{
		PaymentSuccess: config.DefaultPaymentSuccess,
		OutputMode:     config.DefaultOutputMode,
	}
}

type Simulator struct {
	tickets   TicketGenerator
	publisher OutcomePublisher
	opts      Options
	out       io.Writer
	log       *logger.Logger
}

func New(tickets TicketGenerator, opts Options, out io.Writer, log *logger.Logger) *Simulator {
	return &Simulator{
		tickets: tickets,
		opts:    opts,
		out:     out,
		log:     log,
	}
}

// WithPublisher makes every answered simulation publish its outcome.
func (s *Simulator) WithPublisher(p OutcomePublisher) *Simulator {
	s.publisher = p
	return s
}

// Simulate sends the ticket generation request for clientToken. A non-200
// answer is a Rejected result, not an error; only transport failures
// (refused connection, DNS, timeout, cancellation) are returned as errors, and
// in that case nothing is printed.
func (s *Simulator) Simulate(ctx context.Context, clientToken string) (*Result, error) {
	if !s.opts.PaymentSuccess {
		s.log.Debug("Payment gate disabled, skipping ticket generation")
		return &Result{Outcome: OutcomeSkipped}, nil
	}

	fingerprint := token.Fingerprint(clientToken)
	s.log.Info("Requesting ticket generation",
		"url", s.tickets.URL(),
		"client_token", fingerprint,
		"output_mode", s.opts.OutputMode,
	)

	resp, err := s.tickets.Generate(ctx, clientToken)
	if err != nil {
		s.log.Error("Ticket generation request failed",
			"url", s.tickets.URL(),
			"client_token", fingerprint,
			logger.Err(err),
		)
		return nil, apperrors.Unavailable("ticketing service", err)
	}

	result := &Result{
		StatusCode: resp.StatusCode,
		Body:       resp.Text(),
	}

	if resp.IsOK() {
		result.Outcome = OutcomeBooked
		s.println(MessageSuccess)
	} else {
		result.Outcome = OutcomeRejected
		s.log.Warn("Ticket generation rejected",
			"status", resp.StatusCode,
			"reason", client.GetErrorMessage(resp),
			"client_token", fingerprint,
		)
		s.println(result.Body)
		s.println(MessageFailure)
		if s.opts.OutputMode == config.OutputModeLegacy {
			// Kept for compatibility with the original gateway, which
			// reported success after any completed request.
			s.println(MessageSuccess)
		}
	}

	s.publish(ctx, clientToken, result)
	return result, nil
}

func (s *Simulator) publish(ctx context.Context, clientToken string, result *Result) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOutcome(ctx, clientToken, result); err != nil {
		s.log.Error("Failed to publish simulation outcome",
			"outcome", result.Outcome,
			logger.Err(err),
		)
	}
}

func (s *Simulator) println(line string) {
	if _, err := fmt.Fprintln(s.out, line); err != nil {
		s.log.Error("Failed to write console output", logger.Err(err))
	}
}
