package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sadriving/sadriving-backend/internal/config"
	"github.com/sadriving/sadriving-backend/internal/model"
)

const insertRegistrationSQL = `
	INSERT INTO registrations (
		id, first_name, last_name, email, student_phone, parent_phone, address,
		permit_date_issued, date_of_birth, course_id, course_name, payment_method,
		amount_cents, contact_for_price, comments, submitted_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::text::date, $9::text::date, $10, $11, $12, $13, $14, $15, $16)
	ON CONFLICT (id) DO NOTHING`

// RegistrationRepository handles registration data access.
type RegistrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository creates a new RegistrationRepository.
func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

// Record inserts a single registration.
func (r *RegistrationRepository) Record(ctx context.Context, reg *model.Registration) error {
	_, err := r.pool.Exec(ctx, insertRegistrationSQL, registrationArgs(reg)...)
	return err
}

// RecordBatch inserts registrations in one round trip. Rows already present
// are skipped, so a batch can be retried safely.
func (r *RegistrationRepository) RecordBatch(ctx context.Context, regs []*model.Registration) error {
	if len(regs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, reg := range regs {
		batch.Queue(insertRegistrationSQL, registrationArgs(reg)...)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range regs {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a registration by its ID.
func (r *RegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	reg := &model.Registration{}
	f := &reg.Form
	var paymentMethod string
	err := r.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, student_phone, parent_phone, address,
		        permit_date_issued::text, date_of_birth::text, course_id, course_name, payment_method,
		        amount_cents, contact_for_price, comments, submitted_at
		 FROM registrations WHERE id = $1`, id,
	).Scan(&reg.ID, &f.FirstName, &f.LastName, &f.Email, &f.StudentPhone, &f.ParentPhone, &f.Address,
		&f.PermitDateIssued, &f.DateOfBirth, &f.Course, &reg.CourseName, &paymentMethod,
		&reg.AmountCents, &reg.ContactForPrice, &f.Comments, &reg.SubmittedAt)
	if err != nil {
		return nil, err
	}
	f.PaymentMethod = model.PaymentMethodID(paymentMethod)
	return reg, nil
}

func registrationArgs(reg *model.Registration) []any {
	f := reg.Form
	return []any{
		reg.ID, f.FirstName, f.LastName, f.Email, f.StudentPhone, f.ParentPhone, f.Address,
		f.PermitDateIssued, f.DateOfBirth, f.Course, reg.CourseName, string(f.PaymentMethod),
		reg.AmountCents, reg.ContactForPrice, f.Comments, reg.SubmittedAt,
	}
}

// RegistrationQueue hands registrations to the persistence worker through a
// Redis list.
type RegistrationQueue struct {
	rdb *redis.Client
}

// NewRegistrationQueue creates a new RegistrationQueue.
func NewRegistrationQueue(rdb *redis.Client) *RegistrationQueue {
	return &RegistrationQueue{rdb: rdb}
}

// Record pushes the registration onto the persistence queue.
func (q *RegistrationQueue) Record(ctx context.Context, reg *model.Registration) error {
	raw, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("marshal registration: %w", err)
	}
	return q.rdb.RPush(ctx, config.WorkerKey.PersistRegistrationsQueue, raw).Err()
}
