package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Audit event types written by the indexing pipeline.
const (
	EventWebhookReceived        = "WEBHOOK_RECEIVED"
	EventWebhookProcessed       = "WEBHOOK_PROCESSED"
	EventWebhookProcessingError = "WEBHOOK_PROCESSING_ERROR"
	EventDataIndexed            = "DATA_INDEXED"
	EventDataIndexingError      = "DATA_INDEXING_ERROR"
	EventConfigCreated          = "CONFIG_CREATED"
	EventConfigUpdated          = "CONFIG_UPDATED"
	EventConfigDeleted          = "CONFIG_DELETED"
)

const (
	LogStatusSuccess = "SUCCESS"
	LogStatusError   = "ERROR"
)

// IndexingLog is an append-only audit record. Rows are created by every
// pipeline operation and never updated or deleted afterwards.
type IndexingLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	EventType string         `gorm:"type:varchar(50);index" json:"event_type"`
	Status    string         `gorm:"type:varchar(20);index" json:"status"`
	Message   string         `gorm:"type:text" json:"message"`
	Metadata  datatypes.JSON `gorm:"type:json" json:"metadata"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// NewIndexingLog builds an audit record. Metadata that cannot be marshaled is
// dropped; the record itself is still written.
func NewIndexingLog(userID uint, eventType, status, message string, metadata map[string]any) *IndexingLog {
	log := &IndexingLog{
		UserID:    userID,
		EventType: eventType,
		Status:    status,
		Message:   message,
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	if raw, err := json.Marshal(metadata); err == nil {
		log.Metadata = datatypes.JSON(raw)
	}
	return log
}
