package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-payroll/internal/events"
	"go-payroll/internal/graph"
	"go-payroll/internal/messaging/kafka/consumer"
	"go-payroll/internal/shared/connection"
)

// RunConsumer applies graph-mirror writes for payroll and employee lifecycle
// events until interrupted. The mirror is derived state: this process can lag
// or restart freely without touching the primary store.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	driver, err := connection.ConnectNeo4j(
		os.Getenv("NEO4J_URI"),
		os.Getenv("NEO4J_USER"),
		os.Getenv("NEO4J_PASSWORD"),
	)
	if err != nil {
		return err
	}
	defer driver.Close(context.Background())

	mirror := graph.NewMirrorStore(driver, logger)

	payrollReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PayrollProcessedTopic,
		GroupID:        "go-payroll-graph-mirror",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer payrollReader.Close()

	employeeReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.EmployeeCreatedTopic,
		GroupID:        "go-payroll-graph-mirror",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer employeeReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePayrollLifecycle(ctx, payrollReader, mirror, logger)
	go consumer.ConsumeEmployeeLifecycle(ctx, employeeReader, mirror, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
