package testhelpers

import (
	"testing"
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// NewPendingMailJob builds a valid pending job due at now.
func NewPendingMailJob(t *testing.T, now time.Time) *domain.MailJob {
	t.Helper()

	job, err := domain.NewMailJob(
		uuid.NewString(),
		"0101701234",
		"aarhus-kommune",
		"Afgørelse om boligstøtte",
		"Du kan se afgørelsen i vedhæftede dokument.",
		now,
	)
	require.NoError(t, err)
	return job
}
