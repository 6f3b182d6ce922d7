package pubmed

import (
	"context"
	"log/slog"
	"time"
)

var _ Service = (*LoggingService)(nil)

// LoggingService wraps a Service with debug logging.
type LoggingService struct {
	next   Service
	logger *slog.Logger
}

// NewLoggingService creates a new LoggingService.
func NewLoggingService(next Service, logger *slog.Logger) *LoggingService {
	return &LoggingService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the call.
func (s *LoggingService) Search(ctx context.Context, term string, limit int) (ids []string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("esearch",
			"term", term,
			"limit", limit,
			"count", len(ids),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, term, limit)
}

// Fetch delegates to the wrapped service and logs the call.
func (s *LoggingService) Fetch(ctx context.Context, ids []string) (records []*Record, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("efetch",
			"ids", len(ids),
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Fetch(ctx, ids)
}
