package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// SimulatedProcessor stands in for a payment integration. It waits for a
// fixed delay and always succeeds unless the context ends first.
type SimulatedProcessor struct {
	delay time.Duration
	log   zerolog.Logger
}

// NewSimulatedProcessor creates a new SimulatedProcessor.
func NewSimulatedProcessor(delay time.Duration, log zerolog.Logger) *SimulatedProcessor {
	return &SimulatedProcessor{
		delay: delay,
		log:   log.With().Str("component", "simulated_payment").Logger(),
	}
}

// Process waits for the configured delay.
func (p *SimulatedProcessor) Process(ctx context.Context, charge Charge) error {
	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("simulated payment: %w", ctx.Err())
	case <-timer.C:
	}

	p.log.Debug().
		Str("registration_id", charge.RegistrationID.String()).
		Str("payment_method", string(charge.PaymentMethod.ID)).
		Str("amount", charge.Quote.String()).
		Msg("Simulated payment accepted")
	return nil
}
