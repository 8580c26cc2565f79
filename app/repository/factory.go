package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// NewRepositories creates all repository instances backed by the given DB.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		DbConnection: NewDbConnectionRepository(db),
		Config:       NewIndexingConfigRepository(db),
		Log:          NewIndexingLogRepository(db),
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetDbConnectionRepository returns the target connection repository instance
func (f *Factory) GetDbConnectionRepository() DbConnectionRepository {
	return f.GetRepositories().DbConnection
}

// GetIndexingConfigRepository returns the indexing config repository instance
func (f *Factory) GetIndexingConfigRepository() IndexingConfigRepository {
	return f.GetRepositories().Config
}

// GetIndexingLogRepository returns the audit log repository instance
func (f *Factory) GetIndexingLogRepository() IndexingLogRepository {
	return f.GetRepositories().Log
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
