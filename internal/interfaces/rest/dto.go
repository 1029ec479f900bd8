package rest

import (
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/domain"
)

type MailJob struct {
	ID               string     `json:"id"`
	RecipientCPR     string     `json:"recipient_cpr"`
	SenderID         string     `json:"sender_id,omitempty"`
	Subject          string     `json:"subject"`
	Status           string     `json:"status"`
	AttemptCount     int        `json:"attempt_count"`
	NextAttemptAt    *time.Time `json:"next_attempt_at,omitempty"`
	MessageID        string     `json:"message_id,omitempty"`
	BrokerStatus     string     `json:"broker_status,omitempty"`
	BrokerStatusCode *int       `json:"broker_status_code,omitempty"`
	LastErrorCode    string     `json:"last_error_code,omitempty"`
	LastError        string     `json:"last_error,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	SentAt           *time.Time `json:"sent_at,omitempty"`
}

func ToMailJob(j *domain.MailJob) MailJob {
	out := MailJob{
		ID:               j.ID,
		RecipientCPR:     string(j.RecipientCPR),
		SenderID:         j.SenderID,
		Subject:          j.Subject,
		Status:           string(j.Status),
		AttemptCount:     j.AttemptCount,
		BrokerStatusCode: j.BrokerStatusCode,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
		SentAt:           j.SentAt,
	}

	if !j.IsTerminal() {
		next := j.NextAttemptAt
		out.NextAttemptAt = &next
	}
	if j.MessageID != nil {
		out.MessageID = *j.MessageID
	}
	if j.BrokerStatus != nil {
		out.BrokerStatus = *j.BrokerStatus
	}
	if j.LastErrorCode != nil {
		out.LastErrorCode = *j.LastErrorCode
	}
	if j.LastError != nil {
		out.LastError = *j.LastError
	}

	return out
}
