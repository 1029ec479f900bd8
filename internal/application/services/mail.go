package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/application"
	"github.com/DanielPopoola/broker-gateway/internal/domain"
	"github.com/DanielPopoola/broker-gateway/internal/infrastructure/persistence/postgres"
	"github.com/google/uuid"
)

type SendMailCommand struct {
	RecipientCPR string
	SenderID     string
	Subject      string
	Body         string
}

// MailService queues digital mail in the outbox. Dispatch happens in the
// outbox worker so callers never wait out Broker retries.
type MailService struct {
	outbox application.MailOutboxRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewMailService(outbox application.MailOutboxRepository, logger *slog.Logger) *MailService {
	return &MailService{
		outbox: outbox,
		logger: logger,
		now:    time.Now,
	}
}

func (s *MailService) Enqueue(ctx context.Context, cmd SendMailCommand) (*domain.MailJob, error) {
	job, err := domain.NewMailJob(
		uuid.NewString(),
		domain.CPR(cmd.RecipientCPR),
		cmd.SenderID,
		cmd.Subject,
		cmd.Body,
		s.now().UTC(),
	)
	if err != nil {
		return nil, application.NewInvalidInputError(err)
	}

	if err := s.outbox.Create(ctx, job); err != nil {
		s.logger.Error("failed to queue mail job", "job_id", job.ID, "error", err)
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("mail job queued", "job_id", job.ID, "sender_id", job.SenderID)
	return job, nil
}

func (s *MailService) GetJob(ctx context.Context, id string) (*domain.MailJob, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, application.NewNotFoundError("mail job")
	}

	job, err := s.outbox.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrMailJobNotFound) {
			return nil, application.NewNotFoundError("mail job")
		}
		return nil, application.NewInternalError(err)
	}
	return job, nil
}
