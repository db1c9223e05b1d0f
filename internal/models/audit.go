package models

import (
	"bytes"
	"encoding/json"
)

// AuditAction enumerates the mutation kinds recorded in the audit log.
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// AuditDiff holds before/after snapshots of the mutated record. Either side
// may be null depending on the action (before=null for create, after=null
// for delete).
type AuditDiff struct {
	Before json.RawMessage `json:"before"`
	After  json.RawMessage `json:"after"`
}

// An absent snapshot may be a nil RawMessage in memory or a JSON null after a
// round trip through the store's JSON serializer; both read as absent.
func snapshotPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// HasBefore reports whether a pre-mutation snapshot was recorded.
func (d AuditDiff) HasBefore() bool { return snapshotPresent(d.Before) }

// HasAfter reports whether a post-mutation snapshot was recorded.
func (d AuditDiff) HasAfter() bool { return snapshotPresent(d.After) }

// AuditLogEntry is an append-only record of an admin mutation. Entries are
// never mutated or merged.
type AuditLogEntry struct {
	Base
	Actor       string      `json:"actor"      gorm:"not null;index"`
	Action      AuditAction `json:"action"     gorm:"type:varchar(16);not null"`
	TargetTable string      `json:"table_name" gorm:"column:table_name;not null;index"`
	RecordID    uint        `json:"record_id"  gorm:"index"`
	Diff        AuditDiff   `json:"diff"       gorm:"type:json;serializer:json"`
}

func (AuditLogEntry) TableName() string { return "audit_logs" }
