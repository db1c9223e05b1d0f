package audit

import (
	"encoding/json"

	"github.com/lumen-studio/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Recorder appends audit entries for admin mutations. Writes are best-effort:
// a failed append is logged and never fails the parent request.
type Recorder struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewRecorder(db *gorm.DB, log *zap.Logger) *Recorder {
	return &Recorder{db: db, log: log}
}

// Record appends one entry. before/after are the pre- and post-mutation
// record states; pass nil for the missing side (create has no before, delete
// has no after).
func (r *Recorder) Record(actor string, action models.AuditAction, table string, recordID uint, before, after interface{}) {
	entry := models.AuditLogEntry{
		Actor:       actor,
		Action:      action,
		TargetTable: table,
		RecordID:    recordID,
		Diff: models.AuditDiff{
			Before: marshalSnapshot(r.log, before),
			After:  marshalSnapshot(r.log, after),
		},
	}

	if err := r.db.Create(&entry).Error; err != nil {
		r.log.Warn("audit append failed",
			zap.String("actor", actor),
			zap.String("action", string(action)),
			zap.String("table", table),
			zap.Uint("record_id", recordID),
			zap.Error(err),
		)
	}
}

func marshalSnapshot(log *zap.Logger, v interface{}) json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Warn("audit snapshot marshal failed", zap.Error(err))
		return nil
	}
	return data
}
