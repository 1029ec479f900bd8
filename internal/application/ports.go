package application

import (
	"context"
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/broker"
	"github.com/DanielPopoola/broker-gateway/internal/domain"
)

// BrokerClient is the port for the government integration Broker.
type BrokerClient interface {
	LookupPerson(ctx context.Context, cpr string, opts broker.RequestOptions) (*broker.PersonResult, error)
	LookupCompany(ctx context.Context, cvr string, opts broker.RequestOptions) (*broker.CompanyResult, error)
	SendMessage(ctx context.Context, msg broker.MailMessage) (*broker.MailSendResult, error)
}

// MailOutboxRepository is the port for queued digital mail.
type MailOutboxRepository interface {
	Create(ctx context.Context, job *domain.MailJob) error
	FindByID(ctx context.Context, id string) (*domain.MailJob, error)
	ClaimDue(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]*domain.MailJob, error)
	Update(ctx context.Context, job *domain.MailJob) error
}
