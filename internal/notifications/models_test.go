package notifications

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationBuilder(t *testing.T) {
	userID := uuid.New()
	requestID := uuid.New()
	benchID := uuid.New()

	notification := NewNotificationBuilder().
		WithType(NotificationTypeScheduleApproved).
		WithRecipient(userID, "ada@lab.example", "Ada Lovelace").
		WithSubject("Your reservation request is approved").
		WithRequestContext(requestID).
		WithBenchContext(benchID).
		Build()

	assert.Equal(t, NotificationTypeScheduleApproved, notification.Type)
	assert.Equal(t, NotificationPriorityMedium, notification.Priority)
	assert.Equal(t, userID, notification.RecipientID)
	assert.Equal(t, NotificationStatusPending, notification.Status)
	require.NotNil(t, notification.RequestID)
	assert.Equal(t, requestID, *notification.RequestID)
	require.NotNil(t, notification.BenchID)
	assert.Equal(t, benchID, *notification.BenchID)

	// Partition key routes by recipient so one user's mail stays ordered.
	assert.Equal(t, userID.String(), notification.GetPartitionKey())
}

func TestDefaultPriorities(t *testing.T) {
	tests := []struct {
		notType  NotificationType
		priority NotificationPriority
	}{
		{NotificationTypeAccountApproved, NotificationPriorityHigh},
		{NotificationTypeAccountRejected, NotificationPriorityHigh},
		{NotificationTypeScheduleApproved, NotificationPriorityMedium},
		{NotificationTypeScheduleRejected, NotificationPriorityMedium},
		{NotificationType("UNKNOWN"), NotificationPriorityLow},
	}

	for _, tt := range tests {
		t.Run(string(tt.notType), func(t *testing.T) {
			assert.Equal(t, tt.priority, GetDefaultPriority(tt.notType))
		})
	}
}

func TestNotificationJSONRoundTrip(t *testing.T) {
	original := NewNotificationBuilder().
		WithType(NotificationTypeAccountRejected).
		WithRecipient(uuid.New(), "ada@lab.example", "Ada Lovelace").
		WithSubject("Your lab workbench registration was not approved").
		WithTemplateData(map[string]interface{}{"Comment": "missing affiliation"}).
		Build()

	data, err := original.ToJSON()
	require.NoError(t, err)

	var decoded EmailNotification
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Type, decoded.Type)
	assert.Equal(t, "missing affiliation", decoded.TemplateData["Comment"])
}

func TestMarkFailed(t *testing.T) {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeScheduleRejected).
		WithRecipient(uuid.New(), "ada@lab.example", "Ada").
		Build()

	notification.MarkFailed(errors.New("smtp timeout"))
	assert.Equal(t, NotificationStatusFailed, notification.Status)
	require.NotNil(t, notification.LastError)
	assert.Equal(t, "smtp timeout", *notification.LastError)

	notification.MarkSent()
	assert.Equal(t, NotificationStatusSent, notification.Status)
	assert.NotNil(t, notification.SentAt)
}
