package postgres

import (
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/domain"
)

// MailJobModel mirrors a mail_outbox row.
type MailJobModel struct {
	ID               string
	RecipientCPR     string
	SenderID         string
	Subject          string
	Body             string
	Status           string
	MessageID        *string
	BrokerStatus     *string
	BrokerStatusCode *int
	AttemptCount     int
	NextAttemptAt    time.Time
	LastErrorCode    *string
	LastError        *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	SentAt           *time.Time
}

const mailJobColumns = `
	id, recipient_cpr, sender_id, subject, body, status,
	message_id, broker_status, broker_status_code,
	attempt_count, next_attempt_at, last_error_code, last_error,
	created_at, updated_at, sent_at`

func (m *MailJobModel) scanTargets() []any {
	return []any{
		&m.ID, &m.RecipientCPR, &m.SenderID, &m.Subject, &m.Body, &m.Status,
		&m.MessageID, &m.BrokerStatus, &m.BrokerStatusCode,
		&m.AttemptCount, &m.NextAttemptAt, &m.LastErrorCode, &m.LastError,
		&m.CreatedAt, &m.UpdatedAt, &m.SentAt,
	}
}

func toDomainMailJob(m MailJobModel) *domain.MailJob {
	return &domain.MailJob{
		ID:               m.ID,
		RecipientCPR:     domain.CPR(m.RecipientCPR),
		SenderID:         m.SenderID,
		Subject:          m.Subject,
		Body:             m.Body,
		Status:           domain.MailStatus(m.Status),
		MessageID:        m.MessageID,
		BrokerStatus:     m.BrokerStatus,
		BrokerStatusCode: m.BrokerStatusCode,
		AttemptCount:     m.AttemptCount,
		NextAttemptAt:    m.NextAttemptAt,
		LastErrorCode:    m.LastErrorCode,
		LastError:        m.LastError,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		SentAt:           m.SentAt,
	}
}

func toMailJobModel(j *domain.MailJob) MailJobModel {
	return MailJobModel{
		ID:               j.ID,
		RecipientCPR:     string(j.RecipientCPR),
		SenderID:         j.SenderID,
		Subject:          j.Subject,
		Body:             j.Body,
		Status:           string(j.Status),
		MessageID:        j.MessageID,
		BrokerStatus:     j.BrokerStatus,
		BrokerStatusCode: j.BrokerStatusCode,
		AttemptCount:     j.AttemptCount,
		NextAttemptAt:    j.NextAttemptAt,
		LastErrorCode:    j.LastErrorCode,
		LastError:        j.LastError,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
		SentAt:           j.SentAt,
	}
}
