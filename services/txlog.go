package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/models"
	"github.com/apexsim/storefront-backend/repository"
)

// TransactionLogger appends immutable lifecycle records to the transaction
// log. It never returns an error: a logging outage must not block checkout,
// so persistence failures are logged and swallowed.
type TransactionLogger struct {
	repo repository.TransactionLogRepository
	log  *zap.Logger
}

func NewTransactionLogger(repo repository.TransactionLogRepository, log *zap.Logger) *TransactionLogger {
	return &TransactionLogger{repo: repo, log: log}
}

// Log appends one success record with a server timestamp.
func (l *TransactionLogger) Log(ctx context.Context, eventType models.EventType, data *models.EventData) {
	l.append(ctx, eventType, models.LogStatusSuccess, data, nil)
}

// LogError appends one error record carrying the raw failure for
// operator-side diagnosis.
func (l *TransactionLogger) LogError(ctx context.Context, eventType models.EventType, data *models.EventData, err error) {
	var entryErr *models.EventError
	if err != nil {
		entryErr = &models.EventError{Message: err.Error()}
	}
	l.append(ctx, eventType, models.LogStatusError, data, entryErr)
}

func (l *TransactionLogger) append(ctx context.Context, eventType models.EventType, status string, data *models.EventData, entryErr *models.EventError) {
	entry := &models.TransactionLogEntry{
		ID:        uuid.New(),
		Type:      eventType,
		Status:    status,
		Timestamp: time.Now().UTC(),
		Data:      data,
		Error:     entryErr,
	}

	if err := l.repo.Append(ctx, entry); err != nil {
		l.log.Warn("Transaction log append failed",
			zap.String("event_type", string(eventType)),
			zap.String("entry_id", entry.ID.String()),
			zap.Error(err),
		)
	}
}
