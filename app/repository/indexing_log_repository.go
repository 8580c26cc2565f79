package repository

import (
	"github.com/mitgajera/Blockchain-indexer/app/models"
	"gorm.io/gorm"
)

// indexingLogRepository implements the IndexingLogRepository interface
type indexingLogRepository struct {
	db *gorm.DB
}

// NewIndexingLogRepository creates a new audit log repository instance
func NewIndexingLogRepository(db *gorm.DB) IndexingLogRepository {
	return &indexingLogRepository{db: db}
}

// Create appends an audit record
func (r *indexingLogRepository) Create(log *models.IndexingLog) error {
	return r.db.Create(log).Error
}

// ListByUser returns a filtered, paginated page of audit records plus the
// total count matching the filter.
func (r *indexingLogRepository) ListByUser(userID uint, filter LogFilter) ([]models.IndexingLog, int64, error) {
	query := r.db.Model(&models.IndexingLog{}).Where("user_id = ?", userID)
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	var logs []models.IndexingLog
	err := query.Order("created_at DESC").Offset(filter.Offset).Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
