package repository

import (
	"github.com/mitgajera/Blockchain-indexer/app/models"
	"gorm.io/gorm"
)

// indexingConfigRepository implements the IndexingConfigRepository interface
type indexingConfigRepository struct {
	db *gorm.DB
}

// NewIndexingConfigRepository creates a new indexing config repository instance
func NewIndexingConfigRepository(db *gorm.DB) IndexingConfigRepository {
	return &indexingConfigRepository{db: db}
}

// Create stores a new indexing configuration
func (r *indexingConfigRepository) Create(config *models.IndexingConfig) error {
	return r.db.Create(config).Error
}

// GetByID retrieves a config owned by the given user
func (r *indexingConfigRepository) GetByID(userID, id uint) (*models.IndexingConfig, error) {
	var config models.IndexingConfig
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// GetActiveByUser retrieves the user's single active configuration
func (r *indexingConfigRepository) GetActiveByUser(userID uint) (*models.IndexingConfig, error) {
	var config models.IndexingConfig
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// ListByUser retrieves all configs owned by the given user
func (r *indexingConfigRepository) ListByUser(userID uint) ([]models.IndexingConfig, error) {
	var configs []models.IndexingConfig
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&configs).Error
	return configs, err
}

// Update saves changes to an existing configuration
func (r *indexingConfigRepository) Update(config *models.IndexingConfig) error {
	return r.db.Save(config).Error
}

// Delete removes a configuration owned by the given user
func (r *indexingConfigRepository) Delete(userID, id uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.IndexingConfig{}).Error
}

// SetActive activates one configuration and deactivates all siblings within
// a single transaction.
func (r *indexingConfigRepository) SetActive(userID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var config models.IndexingConfig
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&config).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.IndexingConfig{}).
			Where("user_id = ? AND id <> ?", userID, id).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&config).Update("is_active", true).Error
	})
}
