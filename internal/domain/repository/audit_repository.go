package repository

import "context"

// AuditEntry records an authentication event for later inspection.
type AuditEntry struct {
	UserID    string
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
}

// AuditRepository persists auth audit events. Writes are best-effort; a
// failed audit insert never fails the request.
type AuditRepository interface {
	Insert(ctx context.Context, e AuditEntry) error
}
