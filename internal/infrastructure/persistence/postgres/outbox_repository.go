package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/domain"
	"github.com/jackc/pgx/v5"
)

var ErrMailJobNotFound = errors.New("mail job not found")

// OutboxRepository persists queued digital mail in mail_outbox.
type OutboxRepository struct {
	q Executor
}

func NewOutboxRepository(db *DB) *OutboxRepository {
	return &OutboxRepository{q: db.Pool}
}

func (r *OutboxRepository) Create(ctx context.Context, job *domain.MailJob) error {
	query := `
		INSERT INTO mail_outbox (` + mailJobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	m := toMailJobModel(job)
	_, err := r.q.Exec(ctx, query,
		m.ID, m.RecipientCPR, m.SenderID, m.Subject, m.Body, m.Status,
		m.MessageID, m.BrokerStatus, m.BrokerStatusCode,
		m.AttemptCount, m.NextAttemptAt, m.LastErrorCode, m.LastError,
		m.CreatedAt, m.UpdatedAt, m.SentAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("mail job %s already exists: %w", job.ID, err)
		}
		return fmt.Errorf("failed to create mail job: %w", err)
	}
	return nil
}

func (r *OutboxRepository) FindByID(ctx context.Context, id string) (*domain.MailJob, error) {
	query := `SELECT ` + mailJobColumns + ` FROM mail_outbox WHERE id = $1`

	var m MailJobModel
	err := r.q.QueryRow(ctx, query, id).Scan(m.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMailJobNotFound
		}
		return nil, fmt.Errorf("failed to scan mail job: %w", err)
	}
	return toDomainMailJob(m), nil
}

// ClaimDue leases up to limit pending jobs whose next attempt is due. A
// claimed job is invisible to other claimers until lease elapses or Update
// releases it; SKIP LOCKED keeps concurrent workers from blocking each other.
func (r *OutboxRepository) ClaimDue(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]*domain.MailJob, error) {
	query := `
		UPDATE mail_outbox
		SET locked_until = $2
		WHERE id IN (
			SELECT id FROM mail_outbox
			WHERE status = 'PENDING'
			  AND next_attempt_at <= $1
			  AND (locked_until IS NULL OR locked_until < $1)
			ORDER BY next_attempt_at ASC
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + mailJobColumns

	rows, err := r.q.Query(ctx, query, now, now.Add(lease), limit)
	if err != nil {
		return nil, fmt.Errorf("claim due mail jobs: %w", err)
	}

	jobs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.MailJob, error) {
		var m MailJobModel
		err := row.Scan(m.scanTargets()...)
		return toDomainMailJob(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("scan claimed mail jobs: %w", err)
	}
	return jobs, nil
}

// Update writes the job's mutable state and releases its lease.
func (r *OutboxRepository) Update(ctx context.Context, job *domain.MailJob) error {
	query := `
		UPDATE mail_outbox
		SET status = $1,
			message_id = $2, broker_status = $3, broker_status_code = $4,
			attempt_count = $5, next_attempt_at = $6, last_error_code = $7, last_error = $8,
			updated_at = $9, sent_at = $10, locked_until = NULL
		WHERE id = $11
	`

	m := toMailJobModel(job)
	tag, err := r.q.Exec(ctx, query,
		m.Status,
		m.MessageID, m.BrokerStatus, m.BrokerStatusCode,
		m.AttemptCount, m.NextAttemptAt, m.LastErrorCode, m.LastError,
		m.UpdatedAt, m.SentAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update mail job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMailJobNotFound
	}
	return nil
}
