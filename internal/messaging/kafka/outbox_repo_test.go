package kafka_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-payroll/internal/messaging/kafka"
)

func pendingEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     uuid.New().String(),
		AggregateType: "payroll",
		AggregateID:   "EMP-001",
		EventType:     "payroll_processed",
		Topic:         "payroll.processed",
		Payload:       []byte(`{"employee_id":"EMP-001"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)
	event := pendingEvent()

	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(
			event.ID, event.RequestID, event.AggregateType,
			event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_Create_RejectsInvalidEvents(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)

	cases := map[string]func(*kafka.OutboxEvent){
		"missing id":     func(e *kafka.OutboxEvent) { e.ID = "" },
		"missing topic":  func(e *kafka.OutboxEvent) { e.Topic = "" },
		"empty payload":  func(e *kafka.OutboxEvent) { e.Payload = nil },
		"unknown status": func(e *kafka.OutboxEvent) { e.Status = "queued" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			event := pendingEvent()
			mutate(&event)

			err := repo.Create(context.Background(), event)
			assert.Error(t, err)
		})
	}

	// No INSERT may reach the database for a rejected event.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)
	id := uuid.New().String()

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs(id, kafka.OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkSent(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)
	id := uuid.New().String()

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs(id, kafka.OutboxStatusFailed, "broker unreachable").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkFailed(context.Background(), id, "broker unreachable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
