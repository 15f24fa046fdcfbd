package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RelayAuditModel mencatat setiap respon survey yang diteruskan ke backend.
// Isi jawaban & data responden TIDAK disimpan di sini.
type RelayAuditModel struct {
	RelayAuditID            uuid.UUID         `gorm:"column:relay_audit_id;type:uuid;primaryKey" json:"relay_audit_id"`
	RelayAuditSurveyID      string            `gorm:"column:relay_audit_survey_id;type:varchar(160);not null;index" json:"relay_audit_survey_id"`
	RelayAuditRequestID     string            `gorm:"column:relay_audit_request_id;type:varchar(64)" json:"relay_audit_request_id"`
	RelayAuditStatusCode    int               `gorm:"column:relay_audit_status_code;not null" json:"relay_audit_status_code"`
	RelayAuditResponseCount int               `gorm:"column:relay_audit_response_count;not null;default:0" json:"relay_audit_response_count"`
	RelayAuditDurationMs    int64             `gorm:"column:relay_audit_duration_ms;not null" json:"relay_audit_duration_ms"`
	RelayAuditError         *string           `gorm:"column:relay_audit_error;type:text" json:"relay_audit_error,omitempty"`
	RelayAuditMeta          datatypes.JSONMap `gorm:"column:relay_audit_meta;type:jsonb" json:"relay_audit_meta,omitempty"`
	RelayAuditCreatedAt     time.Time         `gorm:"column:relay_audit_created_at;autoCreateTime;index" json:"relay_audit_created_at"`
}

func (RelayAuditModel) TableName() string {
	return "survey_relay_audits"
}
