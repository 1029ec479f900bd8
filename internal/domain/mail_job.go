// Package domain holds the digital mail job and the identifiers the gateway accepts.
package domain

import (
	"slices"
	"strings"
	"time"
)

// MailStatus is the lifecycle state of an outbox job.
type MailStatus string

const (
	MailPending  MailStatus = "PENDING"
	MailSent     MailStatus = "SENT"
	MailRejected MailStatus = "REJECTED"
	MailFailed   MailStatus = "FAILED"
)

// MailJob is one queued digital mail dispatch.
type MailJob struct {
	ID           string
	RecipientCPR CPR
	SenderID     string
	Subject      string
	Body         string
	Status       MailStatus

	MessageID        *string
	BrokerStatus     *string
	BrokerStatusCode *int

	AttemptCount  int
	NextAttemptAt time.Time
	LastErrorCode *string
	LastError     *string

	CreatedAt time.Time
	UpdatedAt time.Time
	SentAt    *time.Time
}

func NewMailJob(id string, recipient CPR, senderID, subject, body string, now time.Time) (*MailJob, error) {
	if id == "" {
		return nil, NewMissingRequiredFieldError("id")
	}
	if err := recipient.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(subject) == "" {
		return nil, NewMissingRequiredFieldError("subject")
	}
	if strings.TrimSpace(body) == "" {
		return nil, NewMissingRequiredFieldError("body")
	}

	return &MailJob{
		ID:            id,
		RecipientCPR:  recipient,
		SenderID:      senderID,
		Subject:       subject,
		Body:          body,
		Status:        MailPending,
		NextAttemptAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// MarkSent records a dispatch the Broker accepted.
func (j *MailJob) MarkSent(messageID, brokerStatus string, statusCode int, at time.Time) error {
	if err := j.transition(MailSent); err != nil {
		return err
	}
	j.AttemptCount++
	j.recordReceipt(messageID, brokerStatus, statusCode)
	j.SentAt = &at
	j.UpdatedAt = at
	return nil
}

// MarkRejected records a dispatch the Broker answered but did not accept.
func (j *MailJob) MarkRejected(messageID, brokerStatus string, statusCode int, at time.Time) error {
	if err := j.transition(MailRejected); err != nil {
		return err
	}
	j.AttemptCount++
	j.recordReceipt(messageID, brokerStatus, statusCode)
	j.UpdatedAt = at
	return nil
}

// ScheduleRetry counts the failed attempt and pushes the job back by backoff.
func (j *MailJob) ScheduleRetry(backoff time.Duration, errorCode, message string, now time.Time) error {
	if j.Status != MailPending {
		return NewInvalidTransitionError(j.Status, MailPending)
	}
	j.AttemptCount++
	j.NextAttemptAt = now.Add(backoff)
	j.LastErrorCode = &errorCode
	j.LastError = &message
	j.UpdatedAt = now
	return nil
}

// Fail counts the failed attempt and closes the job.
func (j *MailJob) Fail(errorCode, message string, now time.Time) error {
	if err := j.transition(MailFailed); err != nil {
		return err
	}
	j.AttemptCount++
	j.LastErrorCode = &errorCode
	j.LastError = &message
	j.UpdatedAt = now
	return nil
}

func (j *MailJob) IsTerminal() bool {
	return j.Status != MailPending
}

func (j *MailJob) recordReceipt(messageID, brokerStatus string, statusCode int) {
	if messageID != "" {
		j.MessageID = &messageID
	}
	j.BrokerStatus = &brokerStatus
	j.BrokerStatusCode = &statusCode
}

func (j *MailJob) transition(target MailStatus) error {
	if err := j.canTransitionTo(target); err != nil {
		return err
	}
	j.Status = target
	return nil
}

// only a pending job moves, and only to a terminal state
func (j *MailJob) canTransitionTo(target MailStatus) error {
	if j.Status == MailPending && slices.Contains([]MailStatus{MailSent, MailRejected, MailFailed}, target) {
		return nil
	}
	return NewInvalidTransitionError(j.Status, target)
}
