package domain_test

import (
	"testing"
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jobTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func createPendingJob(t *testing.T) *domain.MailJob {
	t.Helper()
	job, err := domain.NewMailJob("job-123", "0101701234", "aarhus-kommune", "Afgørelse", "Se vedhæftede", jobTime)
	require.NoError(t, err)
	return job
}

func TestNewMailJob(t *testing.T) {
	t.Run("creates pending job", func(t *testing.T) {
		job := createPendingJob(t)

		assert.Equal(t, domain.MailPending, job.Status)
		assert.Equal(t, domain.CPR("0101701234"), job.RecipientCPR)
		assert.Equal(t, jobTime, job.NextAttemptAt)
		assert.Zero(t, job.AttemptCount)
		assert.False(t, job.IsTerminal())
	})

	t.Run("rejects malformed cpr", func(t *testing.T) {
		_, err := domain.NewMailJob("job-1", "010170-1234", "", "s", "b", jobTime)

		assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidCPR))
	})

	t.Run("rejects blank subject", func(t *testing.T) {
		_, err := domain.NewMailJob("job-1", "0101701234", "", "  ", "b", jobTime)

		assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
		assert.Contains(t, err.Error(), "subject is required")
	})

	t.Run("rejects empty body", func(t *testing.T) {
		_, err := domain.NewMailJob("job-1", "0101701234", "", "s", "", jobTime)

		assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
	})
}

func TestMailJob_Transitions(t *testing.T) {
	t.Run("PENDING -> SENT", func(t *testing.T) {
		job := createPendingJob(t)
		at := jobTime.Add(time.Minute)

		require.NoError(t, job.MarkSent("msg_123456", "OK", 200, at))

		assert.Equal(t, domain.MailSent, job.Status)
		assert.Equal(t, "msg_123456", *job.MessageID)
		assert.Equal(t, 200, *job.BrokerStatusCode)
		assert.Equal(t, at, *job.SentAt)
		assert.Equal(t, 1, job.AttemptCount)
		assert.True(t, job.IsTerminal())
	})

	t.Run("PENDING -> REJECTED", func(t *testing.T) {
		job := createPendingJob(t)

		require.NoError(t, job.MarkRejected("", "REJECTED", 400, jobTime))

		assert.Equal(t, domain.MailRejected, job.Status)
		assert.Nil(t, job.MessageID)
		assert.Equal(t, "REJECTED", *job.BrokerStatus)
		assert.Nil(t, job.SentAt)
	})

	t.Run("PENDING -> FAILED", func(t *testing.T) {
		job := createPendingJob(t)

		require.NoError(t, job.Fail("application_fault", "recipient opted out", jobTime))

		assert.Equal(t, domain.MailFailed, job.Status)
		assert.Equal(t, "application_fault", *job.LastErrorCode)
	})

	t.Run("retry keeps job pending", func(t *testing.T) {
		job := createPendingJob(t)

		require.NoError(t, job.ScheduleRetry(2*time.Minute, "connection_error", "refused", jobTime))

		assert.Equal(t, domain.MailPending, job.Status)
		assert.Equal(t, 1, job.AttemptCount)
		assert.Equal(t, jobTime.Add(2*time.Minute), job.NextAttemptAt)
		assert.Equal(t, "refused", *job.LastError)
	})
}

func TestMailJob_TerminalStatesAreFinal(t *testing.T) {
	job := createPendingJob(t)
	require.NoError(t, job.MarkSent("msg_1", "OK", 200, jobTime))

	assert.ErrorIs(t, job.Fail("x", "y", jobTime), domain.ErrInvalidTransition)
	assert.ErrorIs(t, job.MarkRejected("", "", 0, jobTime), domain.ErrInvalidTransition)
	assert.ErrorIs(t, job.ScheduleRetry(time.Minute, "x", "y", jobTime), domain.ErrInvalidTransition)
	assert.Equal(t, domain.MailSent, job.Status)
	assert.Equal(t, 1, job.AttemptCount)
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		valid bool
	}{
		{"cpr ok", domain.CPR("0101701234").Validate(), true},
		{"cpr short", domain.CPR("010170123").Validate(), false},
		{"cpr letters", domain.CPR("01017012ab").Validate(), false},
		{"cvr ok", domain.CVR("12345678").Validate(), true},
		{"cvr long", domain.CVR("123456789").Validate(), false},
		{"cvr empty", domain.CVR("").Validate(), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.valid {
				assert.NoError(t, tc.err)
			} else {
				assert.ErrorIs(t, tc.err, domain.ErrInvalidIdentifier)
			}
		})
	}
}
