package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-payroll/internal/events"
	"go-payroll/internal/graph"
)

func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	mirror graph.MirrorStore,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_mirror")
	log.Info("employee mirror consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee mirror consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		err = mirror.UpsertEmployee(ctx, graph.EmployeeNode{
			EmployeeID:  event.EmployeeID,
			Name:        event.Name,
			Department:  event.Department,
			Designation: event.Designation,
		})
		if err != nil {
			log.Error("mirror employee write failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("employee mirrored to graph store", zap.String("employee_id", event.EmployeeID))
	}
}
