// Package kafka publishes run reports for downstream warehouse monitoring.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/aerosol-aod-etl/internal/domain"
)

// ReportWriter produces quality reports to a Kafka topic.
// It implements pipeline.ReportPublisher.
type ReportWriter struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewReportWriter creates a Kafka producer for the report topic.
func NewReportWriter(brokers []string, topic string, logger *slog.Logger) *ReportWriter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &ReportWriter{writer: w, logger: logger}
}

// Publish serializes the quality report and writes it keyed by run ID.
func (w *ReportWriter) Publish(ctx context.Context, report domain.QualityReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("serialize run report: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(report.RunID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "source_file", Value: []byte(report.SourceFile)},
			{Key: "generated_at", Value: []byte(report.GeneratedAt.Format(time.RFC3339))},
		},
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}
	w.logger.Info("run report published", "run_id", report.RunID, "topic", w.writer.Topic)
	return nil
}

func (w *ReportWriter) Close() error {
	return w.writer.Close()
}
