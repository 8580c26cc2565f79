package repository

import (
	"github.com/mitgajera/Blockchain-indexer/app/models"
	"gorm.io/gorm"
)

// dbConnectionRepository implements the DbConnectionRepository interface
type dbConnectionRepository struct {
	db *gorm.DB
}

// NewDbConnectionRepository creates a new target connection repository instance
func NewDbConnectionRepository(db *gorm.DB) DbConnectionRepository {
	return &dbConnectionRepository{db: db}
}

// Create stores a new target connection
func (r *dbConnectionRepository) Create(conn *models.DbConnection) error {
	return r.db.Create(conn).Error
}

// GetByID retrieves a connection owned by the given user
func (r *dbConnectionRepository) GetByID(userID, id uint) (*models.DbConnection, error) {
	var conn models.DbConnection
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&conn).Error
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// GetActiveByUser retrieves the user's single active connection
func (r *dbConnectionRepository) GetActiveByUser(userID uint) (*models.DbConnection, error) {
	var conn models.DbConnection
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).First(&conn).Error
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// ListByUser retrieves all connections owned by the given user
func (r *dbConnectionRepository) ListByUser(userID uint) ([]models.DbConnection, error) {
	var conns []models.DbConnection
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&conns).Error
	return conns, err
}

// Update saves changes to an existing connection
func (r *dbConnectionRepository) Update(conn *models.DbConnection) error {
	return r.db.Save(conn).Error
}

// Delete removes a connection owned by the given user
func (r *dbConnectionRepository) Delete(userID, id uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.DbConnection{}).Error
}

// SetActive activates one connection and deactivates all siblings within a
// single transaction so there is never a window with two active records.
func (r *dbConnectionRepository) SetActive(userID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var conn models.DbConnection
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&conn).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.DbConnection{}).
			Where("user_id = ? AND id <> ?", userID, id).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&conn).Update("is_active", true).Error
	})
}
