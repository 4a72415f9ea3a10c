package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sadriving/sadriving-backend/internal/config"
	"github.com/sadriving/sadriving-backend/internal/model"
)

const (
	RegistrationBatchSize    = 50
	RegistrationBatchTimeout = 2 * time.Second
	RegistrationPollTimeout  = 1 * time.Second

	// RegistrationMaxAttempts is how many failed inserts a registration
	// gets before it is moved to the failed queue.
	RegistrationMaxAttempts = 5
	RegistrationRetryDelay  = 2 * time.Second
)

// RegistrationStore writes registrations to durable storage.
type RegistrationStore interface {
	Record(ctx context.Context, reg *model.Registration) error
	RecordBatch(ctx context.Context, regs []*model.Registration) error
}

// Queue is the subset of the Redis client the worker uses.
type Queue interface {
	BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// queuedRegistration is a registration as carried on the queue. Attempts
// counts failed inserts and is absent on first submission.
type queuedRegistration struct {
	*model.Registration
	Attempts int `json:"attempts,omitempty"`
}

// RegistrationWorker drains the registration queue into the store in batches.
type RegistrationWorker struct {
	store      RegistrationStore
	queue      Queue
	retryDelay time.Duration
	log        zerolog.Logger
}

func NewRegistrationWorker(store RegistrationStore, queue Queue, log zerolog.Logger) *RegistrationWorker {
	return &RegistrationWorker{
		store:      store,
		queue:      queue,
		retryDelay: RegistrationRetryDelay,
		log:        log.With().Str("component", "registration_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *RegistrationWorker) Start(ctx context.Context) {
	w.log.Info().Msg("RegistrationWorker started")

	batch := make([]queuedRegistration, 0, RegistrationBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= RegistrationBatchSize || time.Since(lastFlush) >= RegistrationBatchTimeout) {

			// Requeued rows come straight back; give the database time to recover.
			if retried := w.flushSafe(ctx, batch); retried > 0 {
				w.pause(ctx)
			}
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Int("pending", len(batch)).Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.queue.BLPop(ctx, RegistrationPollTimeout, config.WorkerKey.PersistRegistrationsQueue).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			reg, err := decodeRegistration(item[1])
			if err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}
			batch = append(batch, reg)
		}
	}
}

func (w *RegistrationWorker) pause(ctx context.Context) {
	timer := time.NewTimer(w.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func decodeRegistration(raw string) (queuedRegistration, error) {
	q := queuedRegistration{Registration: &model.Registration{}}
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return queuedRegistration{}, err
	}
	return q, nil
}

// ----------------------------------------------------------------
// Batch insert with per-row fallback
// ----------------------------------------------------------------

// flushSafe persists the batch and returns how many rows were requeued for
// another attempt.
func (w *RegistrationWorker) flushSafe(ctx context.Context, batch []queuedRegistration) int {
	if len(batch) == 0 {
		return 0
	}

	regs := make([]*model.Registration, len(batch))
	for i, q := range batch {
		regs[i] = q.Registration
	}

	err := w.store.RecordBatch(ctx, regs)
	if err == nil {
		w.log.Debug().Int("count", len(batch)).Msg("Registrations persisted")
		return 0
	}
	w.log.Warn().Err(err).Msg("batch registration insert failed, using fallback")

	retried := 0
	for _, q := range batch {
		err := w.store.Record(ctx, q.Registration)
		if err == nil {
			continue
		}

		q.Attempts++
		rowLog := w.log.With().
			Str("registration_id", q.ID.String()).
			Int("attempts", q.Attempts).
			Logger()

		if isPermanent(err) || q.Attempts >= RegistrationMaxAttempts {
			rowLog.Error().Err(err).Msg("Record failed permanently, moving to failed queue")
			w.push(config.WorkerKey.FailedRegistrationsQueue, q)
			continue
		}

		rowLog.Warn().Err(err).Msg("Record failed, requeueing")
		w.push(config.WorkerKey.PersistRegistrationsQueue, q)
		retried++
	}
	return retried
}

func (w *RegistrationWorker) push(key string, q queuedRegistration) {
	raw, err := json.Marshal(q)
	if err != nil {
		w.log.Error().Err(err).Str("registration_id", q.ID.String()).Msg("Failed to encode registration")
		return
	}
	if err := w.queue.RPush(context.Background(), key, raw).Err(); err != nil {
		// Last copy of the registration; keep it in the log.
		w.log.Error().Err(err).Str("queue", key).RawJSON("registration", raw).Msg("RPush failed")
	}
}

// isPermanent reports whether err is a Postgres data exception (class 22)
// or integrity constraint violation (class 23), which no retry can fix.
func isPermanent(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23")
}
