package handler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yonfy/pagomedios-go/pagomedios"
)

// PaymentClient is the subset of the PagoMedios client the processor
// needs, kept narrow so tests can fake it.
type PaymentClient interface {
	CreatePaymentRequest(ctx context.Context, data pagomedios.Data) (*pagomedios.PaymentRequestResult, error)
	GetPaymentStatus(ctx context.Context, id string) (*pagomedios.PaymentRecord, error)
}

// PaymentLinkEvent is the payload sent to the Lambda function.
type PaymentLinkEvent struct {
	Payment pagomedios.Data `json:"payment"`
	// WaitForPayment keeps the invocation alive polling the payment
	// status until it settles or the poll timeout elapses.
	WaitForPayment bool           `json:"wait_for_payment,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// PaymentLinkResponse is emitted after processing completes.
type PaymentLinkResponse struct {
	Token   string                    `json:"token"`
	URL     string                    `json:"url"`
	Status  string                    `json:"status"`
	Paid    bool                      `json:"paid"`
	Record  *pagomedios.PaymentRecord `json:"record,omitempty"`
	Message string                    `json:"message,omitempty"`
	Request PaymentLinkEvent          `json:"request"`
}

// CallbackSender delivers payment outcomes to downstream systems.
type CallbackSender interface {
	Send(ctx context.Context, payload PaymentLinkResponse) error
}

// Processor coordinates payment-link creation and status polling.
type Processor struct {
	client       PaymentClient
	pollInterval time.Duration
	timeout      time.Duration
	log          zerolog.Logger
	callback     CallbackSender
}

// Option customizes the processor.
type Option func(*Processor)

// WithPollInterval adjusts the delay between status checks.
func WithPollInterval(d time.Duration) Option {
	return func(p *Processor) {
		if d > 0 {
			p.pollInterval = d
		}
	}
}

// WithTimeout overrides the total polling timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Processor) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger lets callers supply a custom logger.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Processor) {
		p.log = log
	}
}

// WithCallbackSender wires a callback destination invoked after
// processing concludes.
func WithCallbackSender(sender CallbackSender) Option {
	return func(p *Processor) {
		p.callback = sender
	}
}

// NewProcessor builds a Processor with sane defaults.
func NewProcessor(client PaymentClient, opts ...Option) *Processor {
	p := &Processor{
		client:       client,
		pollInterval: 5 * time.Second,
		timeout:      5 * time.Minute,
		log:          zerolog.New(os.Stdout).With().Timestamp().Str("service", "pagomedios-lambda").Logger(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Handle implements the AWS Lambda handler entry point.
func (p *Processor) Handle(ctx context.Context, event PaymentLinkEvent) (PaymentLinkResponse, error) {
	if err := validateEvent(event); err != nil {
		return PaymentLinkResponse{}, err
	}

	p.log.Info().
		Str("document", event.Payment.Document).
		Float64("amount", event.Payment.Amount).
		Msg("creating payment request")

	result, err := p.client.CreatePaymentRequest(ctx, event.Payment)
	if err != nil {
		return PaymentLinkResponse{}, fmt.Errorf("create payment request failed: %w", err)
	}

	resp := PaymentLinkResponse{
		Token:   result.Data.Token,
		URL:     result.Data.URL,
		Status:  pagomedios.StatusPending.Description(),
		Request: event,
	}

	if !event.WaitForPayment {
		p.emitCallback(ctx, resp)
		return resp, nil
	}

	p.log.Info().Str("token", resp.Token).Msg("payment link created; polling for settlement")

	record, err := p.pollPayment(ctx, resp.Token)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			resp.Status = "Timeout"
			resp.Message = fmt.Sprintf("payment not confirmed within %s", p.timeout)
			p.emitCallback(ctx, resp)
			return resp, nil
		}
		return PaymentLinkResponse{}, err
	}

	resp.Record = record
	resp.Status = record.StatusDescription
	resp.Paid = record.Status == pagomedios.StatusAuthorized
	p.emitCallback(ctx, resp)
	return resp, nil
}

// pollPayment waits for the payment to leave the pending state. A
// missing record is treated like pending: the provider registers the
// link asynchronously.
func (p *Processor) pollPayment(ctx context.Context, token string) (*pagomedios.PaymentRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		record, err := p.client.GetPaymentStatus(ctx, token)
		switch {
		case err == nil && record.Status != pagomedios.StatusPending:
			p.log.Info().Str("token", token).Str("status", record.StatusDescription).Msg("payment settled")
			return record, nil
		case err != nil && pagomedios.KindOf(err) != pagomedios.KindIDRequest:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, err
		}

		p.log.Debug().Str("token", token).Dur("wait", p.pollInterval).Msg("payment still pending")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func validateEvent(event PaymentLinkEvent) error {
	if strings.TrimSpace(event.Payment.Document) == "" {
		return errors.New("payment document is required")
	}
	if strings.TrimSpace(event.Payment.Email) == "" {
		return errors.New("payment email is required")
	}
	if event.Payment.Amount <= 0 {
		return errors.New("payment amount must be positive")
	}
	return nil
}

func (p *Processor) emitCallback(ctx context.Context, resp PaymentLinkResponse) {
	if p.callback == nil {
		return
	}
	if err := p.callback.Send(ctx, resp); err != nil {
		p.log.Warn().Err(err).Msg("callback delivery failed")
	}
}
