package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/harborbank/servicing/internal/domain/port"
	pkgkafka "github.com/harborbank/servicing/pkg/kafka"
)

// TermsChangedTopic carries notifications from origination and modification
// systems that a loan's terms have changed.
const TermsChangedTopic = "servicing.loan_terms.changed"

type termsChangedMessage struct {
	LoanID   string `json:"loan_id"`
	TenantID string `json:"tenant_id"`
}

// InvalidationConsumer drops cached schedules when upstream systems report a
// terms change, so the next read recomputes against the new terms.
type InvalidationConsumer struct {
	consumer *pkgkafka.Consumer
	logger   *slog.Logger
}

// NewInvalidationConsumer creates a consumer bound to the terms-changed topic.
func NewInvalidationConsumer(cfg pkgkafka.Config, cache port.ScheduleCache, logger *slog.Logger) *InvalidationConsumer {
	handler := func(ctx context.Context, msg pkgkafka.Message) error {
		var m termsChangedMessage
		if err := json.Unmarshal(msg.Value, &m); err != nil {
			return fmt.Errorf("decode terms-changed message: %w", err)
		}
		if m.LoanID == "" {
			// Fall back to the message key, which publishers set to the
			// aggregate ID.
			m.LoanID = string(msg.Key)
		}
		if m.LoanID == "" {
			return fmt.Errorf("terms-changed message without loan ID")
		}
		if err := cache.Invalidate(ctx, m.LoanID); err != nil {
			return fmt.Errorf("invalidate schedule for loan %s: %w", m.LoanID, err)
		}
		logger.InfoContext(ctx, "schedule cache invalidated",
			"loan_id", m.LoanID,
			"tenant_id", m.TenantID,
		)
		return nil
	}

	return &InvalidationConsumer{
		consumer: pkgkafka.NewConsumer(cfg, TermsChangedTopic, handler, logger),
		logger:   logger,
	}
}

// Start blocks consuming until the context is canceled.
func (c *InvalidationConsumer) Start(ctx context.Context) error {
	return c.consumer.Start(ctx)
}

// Close closes the underlying reader.
func (c *InvalidationConsumer) Close() error {
	return c.consumer.Close()
}
