package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"surveikita_web/internals/features/surveys/model"
)

// GormAuditStore menyimpan AuditEntry ke tabel survey_relay_audits.
type GormAuditStore struct {
	DB *gorm.DB
}

func NewGormAuditStore(db *gorm.DB) *GormAuditStore {
	return &GormAuditStore{DB: db}
}

func (s *GormAuditStore) Record(ctx context.Context, entry AuditEntry) error {
	row := model.RelayAuditModel{
		RelayAuditID:            uuid.New(),
		RelayAuditSurveyID:      entry.SurveyID,
		RelayAuditRequestID:     entry.RequestID,
		RelayAuditStatusCode:    entry.StatusCode,
		RelayAuditResponseCount: entry.ResponseCount,
		RelayAuditDurationMs:    entry.Duration.Milliseconds(),
		RelayAuditMeta: datatypes.JSONMap{
			"content_type": entry.ContentType,
			"body_bytes":   entry.BodyBytes,
		},
	}
	if entry.Err != nil {
		msg := entry.Err.Error()
		row.RelayAuditError = &msg
	}
	return s.DB.WithContext(ctx).Create(&row).Error
}

// PurgeBefore menghapus audit yang lebih tua dari cutoff, mengembalikan jumlah baris.
func (s *GormAuditStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).
		Where("relay_audit_created_at < ?", cutoff).
		Delete(&model.RelayAuditModel{})
	return res.RowsAffected, res.Error
}
