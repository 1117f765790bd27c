package worker

// email_worker.go
// Processes welcome email jobs from QueueEmail.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// maxAttempts bounds the SMTP attempts of one job before it goes to the DLQ.
const maxAttempts = 3

// BienvenidaPayload is the job payload of JobBienvenida.
type BienvenidaPayload struct {
	ToEmail string `json:"to_email"`
	Nombre  string `json:"nombre"`
	Rol     string `json:"rol"`
}

// BienvenidaSender delivers welcome emails. infra.Mailer implements it.
type BienvenidaSender interface {
	SendBienvenida(to, nombre, rol string) error
}

// EmailWorker sends the welcome email of newly created users.
type EmailWorker struct {
	mailer  BienvenidaSender
	backoff time.Duration
}

func NewEmailWorker(mailer BienvenidaSender) *EmailWorker {
	return &EmailWorker{mailer: mailer, backoff: time.Second}
}

// Handlers returns the job handlers this worker serves.
func (w *EmailWorker) Handlers() map[string]JobHandler {
	return map[string]JobHandler{JobBienvenida: w.Process}
}

// Process sends one welcome email, retrying with exponential backoff.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload BienvenidaPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: invalid payload: %w", err)
	}
	if payload.ToEmail == "" {
		return errors.New("email_worker: empty to_email")
	}

	err := withRetry(ctx, maxAttempts, w.backoff, func(int) error {
		return w.mailer.SendBienvenida(payload.ToEmail, payload.Nombre, payload.Rol)
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send welcome email")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: welcome email sent")
	return nil
}

// withRetry calls fn up to maxAttempts times.
// Backoff schedule: attempt 1 = immediate, 2 = base, 3 = 2*base.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, base time.Duration, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * base
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
