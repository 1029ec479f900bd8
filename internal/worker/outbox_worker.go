package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/application"
	"github.com/DanielPopoola/broker-gateway/internal/broker"
	"github.com/DanielPopoola/broker-gateway/internal/domain"
)

// defaultLease covers a full dispatch with the default retry policy
// (three 30s attempts plus 6s of backoff) with room to spare.
const defaultLease = 5 * time.Minute

// OutboxWorker drains mail_outbox: it claims due jobs, sends them through the
// Broker and records the outcome, rescheduling retryable failures.
type OutboxWorker struct {
	outbox      application.MailOutboxRepository
	broker      application.BrokerClient
	interval    time.Duration
	batchSize   int
	maxAttempts int
	lease       time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

func NewOutboxWorker(
	outbox application.MailOutboxRepository,
	brokerClient application.BrokerClient,
	interval time.Duration,
	batchSize int,
	maxAttempts int,
	logger *slog.Logger,
) *OutboxWorker {
	return &OutboxWorker{
		outbox:      outbox,
		broker:      brokerClient,
		interval:    interval,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		lease:       defaultLease,
		logger:      logger,
		now:         time.Now,
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	w.logger.Info("outbox worker started", "interval", w.interval, "batch_size", w.batchSize)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopping")
			return
		case <-ticker.C:
			if err := w.ProcessDue(ctx); err != nil {
				w.logger.Error("outbox processing failed", "error", err)
			}
		}
	}
}

// ProcessDue runs one claim-and-send pass.
func (w *OutboxWorker) ProcessDue(ctx context.Context) error {
	jobs, err := w.outbox.ClaimDue(ctx, w.now().UTC(), w.lease, w.batchSize)
	if err != nil {
		return fmt.Errorf("claim due mail jobs: %w", err)
	}

	var processed int
	for _, job := range jobs {
		if err := w.dispatch(ctx, job); err != nil {
			w.logger.Error("mail dispatch failed",
				"job_id", job.ID,
				"attempt", job.AttemptCount,
				"error", err)
			continue
		}
		processed++
	}

	if processed > 0 {
		w.logger.Info("processed mail jobs", "count", processed)
	}
	return nil
}

func (w *OutboxWorker) dispatch(ctx context.Context, job *domain.MailJob) error {
	res, err := w.broker.SendMessage(ctx, broker.MailMessage{
		RecipientCPR: string(job.RecipientCPR),
		SenderID:     job.SenderID,
		Subject:      job.Subject,
		Body:         job.Body,
	})
	now := w.now().UTC()

	if err != nil {
		if err := w.recordFailure(job, err, now); err != nil {
			return err
		}
		return w.outbox.Update(ctx, job)
	}

	if res == nil {
		res = &broker.MailSendResult{}
	}
	if res.Sent {
		err = job.MarkSent(res.MessageID, res.Status, res.StatusCode, now)
	} else {
		w.logger.Warn("broker did not accept mail",
			"job_id", job.ID,
			"message_id", res.MessageID,
			"status", res.Status,
			"status_code", res.StatusCode)
		err = job.MarkRejected(res.MessageID, res.Status, res.StatusCode, now)
	}
	if err != nil {
		return err
	}
	return w.outbox.Update(ctx, job)
}

func (w *OutboxWorker) recordFailure(job *domain.MailJob, sendErr error, now time.Time) error {
	code := string(application.CategorizeError(sendErr))
	if brokerErr, ok := broker.IsBrokerError(sendErr); ok {
		code = string(brokerErr.Code)
	}

	if application.IsRetryable(sendErr) && job.AttemptCount+1 < w.maxAttempts {
		backoff := time.Duration(1<<job.AttemptCount) * time.Minute
		w.logger.Warn("mail dispatch will be retried",
			"job_id", job.ID,
			"attempt", job.AttemptCount+1,
			"backoff", backoff,
			"code", code,
			"error", sendErr)
		return job.ScheduleRetry(backoff, code, sendErr.Error(), now)
	}

	w.logger.Error("mail job failed",
		"job_id", job.ID,
		"attempt", job.AttemptCount+1,
		"code", code,
		"error", sendErr)
	return job.Fail(code, sendErr.Error(), now)
}
