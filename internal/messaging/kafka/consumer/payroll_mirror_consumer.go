package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-payroll/internal/events"
	"go-payroll/internal/graph"
)

// ConsumePayrollLifecycle applies graph-mirror writes for committed payroll
// records. The MERGE is idempotent, so redelivery after a missed commit is
// harmless; a failing mirror store only delays the mirror, never the payroll.
func ConsumePayrollLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	mirror graph.MirrorStore,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_mirror")
	log.Info("payroll mirror consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll mirror consumer stopped")
				return
			}
			log.Error("fetch payroll lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.PayrollProcessedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll_processed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		err = mirror.UpsertPayroll(ctx, graph.PayrollNode{
			EmployeeID: event.EmployeeID,
			Month:      event.Month,
			Year:       event.Year,
			BaseSalary: event.BaseSalary,
			Bonuses:    event.Bonuses,
			Deductions: event.Deductions,
			Tax:        event.Tax,
			NetSalary:  event.NetSalary,
		})
		if err != nil {
			log.Error("mirror payroll write failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("month", event.Month),
				zap.Int("year", event.Year),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("payroll mirrored to graph store",
			zap.String("employee_id", event.EmployeeID),
			zap.String("month", event.Month),
			zap.Int("year", event.Year),
		)
	}
}
