package repository

import (
	"github.com/mitgajera/Blockchain-indexer/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, error)
	Update(user *models.User) error
}

// DbConnectionRepository defines the interface for target database connection
// records. All lookups are owner-scoped: a connection is only visible to the
// user that created it.
type DbConnectionRepository interface {
	Create(conn *models.DbConnection) error
	GetByID(userID, id uint) (*models.DbConnection, error)
	GetActiveByUser(userID uint) (*models.DbConnection, error)
	ListByUser(userID uint) ([]models.DbConnection, error)
	Update(conn *models.DbConnection) error
	Delete(userID, id uint) error
	// SetActive marks one connection active and all siblings inactive in a
	// single transaction.
	SetActive(userID, id uint) error
}

// IndexingConfigRepository defines the interface for indexing configuration
// records, owner-scoped like DbConnectionRepository.
type IndexingConfigRepository interface {
	Create(config *models.IndexingConfig) error
	GetByID(userID, id uint) (*models.IndexingConfig, error)
	GetActiveByUser(userID uint) (*models.IndexingConfig, error)
	ListByUser(userID uint) ([]models.IndexingConfig, error)
	Update(config *models.IndexingConfig) error
	Delete(userID, id uint) error
	// SetActive marks one config active and all siblings inactive in a
	// single transaction.
	SetActive(userID, id uint) error
}

// LogFilter narrows audit log listings.
type LogFilter struct {
	EventType string
	Status    string
	Limit     int
	Offset    int
}

// IndexingLogRepository appends and lists audit records. There are no update
// or delete operations; the log is append-only.
type IndexingLogRepository interface {
	Create(log *models.IndexingLog) error
	ListByUser(userID uint, filter LogFilter) ([]models.IndexingLog, int64, error)
}

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	DbConnection DbConnectionRepository
	Config       IndexingConfigRepository
	Log          IndexingLogRepository
}
