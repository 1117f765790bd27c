package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueEmail = "jobs:email"

	JobBienvenida = "bienvenida"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// JobHandler processes the payload of one job type. A returned error sends
// the job to the dead letter queue.
type JobHandler func(ctx context.Context, payload json.RawMessage) error

// Dispatcher enqueues async jobs into Redis lists and receives the side
// notifications of the user workflows. The worker pool dequeues via BRPOP.
type Dispatcher struct {
	rdb               redis.Cmdable
	bienvenidaEnabled bool
}

func NewDispatcher(rdb redis.Cmdable, bienvenidaEnabled bool) *Dispatcher {
	return &Dispatcher{rdb: rdb, bienvenidaEnabled: bienvenidaEnabled}
}

// Bienvenida enqueues the welcome email of a newly created user.
func (d *Dispatcher) Bienvenida(ctx context.Context, email, nombre, rol string) error {
	if !d.bienvenidaEnabled {
		return nil
	}
	return d.enqueue(ctx, QueueEmail, JobBienvenida, BienvenidaPayload{
		ToEmail: email,
		Nombre:  nombre,
		Rol:     rol,
	})
}

// IdentidadHuerfana records an identity that could not be compensated so an
// operator can remove it by hand. Nothing retries it automatically.
func (d *Dispatcher) IdentidadHuerfana(ctx context.Context, id uuid.UUID, motivo string) error {
	payload, err := json.Marshal(IdentidadHuerfanaPayload{UserID: id.String()})
	if err != nil {
		return err
	}
	return SendToDLQ(ctx, d.rdb, QueueIdentidades, JobIdentidadHuerfana, payload, motivo, 1)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the job queues.
// Each goroutine blocks on BRPOP, zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb redis.Cmdable, numWorkers int, handlers map[string]JobHandler) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb redis.Cmdable, id int, handlers map[string]JobHandler) {
	queues := []string{QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop, waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb redis.Cmdable, handlers map[string]JobHandler, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		quoted, _ := json.Marshal(raw)
		_ = SendToDLQ(ctx, rdb, queue, "", quoted, "invalid envelope: "+err.Error(), 0)
		return
	}

	handler, ok := handlers[job.Type]
	if !ok {
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("no handler for job type")
		_ = SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, "no handler registered", 0)
		return
	}

	log.Debug().Str("type", job.Type).Str("queue", queue).Msg("processing job")
	if err := handler(ctx, job.Payload); err != nil {
		_ = SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), maxAttempts)
	}
}
