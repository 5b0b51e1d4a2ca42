package ports

import (
	"context"

	"github.com/resourcehub/resource-api/internal/core/domain"
)

// AuditSink accepts audit events for asynchronous persistence. Record must
// not block the request path; a full or failed sink never affects the
// outcome of the mutation it describes.
type AuditSink interface {
	Record(event domain.AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
