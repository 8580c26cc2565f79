package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/mitgajera/Blockchain-indexer/app/models"
	"github.com/mitgajera/Blockchain-indexer/app/repository"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/queryguard"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/targetdb"
)

// TargetExecutor runs parameterized statements against a user's target
// database. Implemented by targetdb.Pool; tests substitute fakes.
type TargetExecutor interface {
	Exec(ctx context.Context, conn *models.DbConnection, query string, args ...any) error
	// Invalidate drops any pooled state for a connection record after its
	// credentials changed or the record was deleted.
	Invalidate(connID uint)
}

// Cache is the slice of the cache layer the service uses for hot active-state
// lookups. A nil cache disables caching.
type Cache interface {
	Get(key string) (string, error)
	Set(key string, value interface{}, expiration time.Duration) error
	Delete(key string) error
}

const activeStateTTL = 30 * time.Second

// Service owns the indexing pipeline: connection and config registries,
// subscription sync, and batch ingestion.
type Service struct {
	conns   repository.DbConnectionRepository
	configs repository.IndexingConfigRepository
	logs    repository.IndexingLogRepository
	sync    *SubscriptionSync
	targets TargetExecutor
	cache   Cache
}

// NewService wires the pipeline from its collaborators. cache may be nil.
func NewService(
	repos *repository.Repositories,
	subSync *SubscriptionSync,
	targets TargetExecutor,
	cache Cache,
) *Service {
	return &Service{
		conns:   repos.DbConnection,
		configs: repos.Config,
		logs:    repos.Log,
		sync:    subSync,
		targets: targets,
		cache:   cache,
	}
}

// Global service instance, initialized at startup like the repository factory.
var globalService *Service
var serviceOnce sync.Once

// Initialize sets the global pipeline service.
func Initialize(service *Service) {
	serviceOnce.Do(func() {
		globalService = service
	})
}

// GetService returns the global pipeline service instance.
func GetService() *Service {
	if globalService == nil {
		panic("Indexer service not initialized. Call Initialize first.")
	}
	return globalService
}

// audit appends an audit record. Audit writes are best-effort: a failing
// write is logged but never fails the operation that produced it.
func (s *Service) audit(userID uint, eventType, status, message string, metadata map[string]any) {
	record := models.NewIndexingLog(userID, eventType, status, message, metadata)
	if err := s.logs.Create(record); err != nil {
		log.Errorf("failed to write audit record %s for user %d: %v", eventType, userID, err)
	}
}

// --- Connection registry -----------------------------------------------

// CreateConnection validates and stores a new target connection. New
// connections always start inactive.
func (s *Service) CreateConnection(ctx context.Context, conn *models.DbConnection) error {
	conn.IsActive = false
	if err := conn.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.conns.Create(conn)
}

// ConnectionPatch carries the partial-update fields for a connection. Nil
// fields are left untouched.
type ConnectionPatch struct {
	Host     *string `json:"host"`
	Port     *int    `json:"port"`
	Database *string `json:"database"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	SSL      *bool   `json:"ssl"`
	IsActive *bool   `json:"is_active"`
}

// UpdateConnection applies a partial update. Activating a connection
// atomically deactivates its siblings.
func (s *Service) UpdateConnection(ctx context.Context, userID, connID uint, patch ConnectionPatch) (*models.DbConnection, error) {
	conn, err := s.conns.GetByID(userID, connID)
	if err != nil {
		return nil, wrapLookupErr(err)
	}

	if patch.Host != nil {
		conn.Host = *patch.Host
	}
	if patch.Port != nil {
		conn.Port = *patch.Port
	}
	if patch.Database != nil {
		conn.Database = *patch.Database
	}
	if patch.Username != nil {
		conn.Username = *patch.Username
	}
	if patch.Password != nil {
		conn.Password = *patch.Password
	}
	if patch.SSL != nil {
		conn.SSL = *patch.SSL
	}
	if err := conn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.conns.Update(conn); err != nil {
		return nil, err
	}
	if patch.IsActive != nil && *patch.IsActive && !conn.IsActive {
		if err := s.conns.SetActive(userID, connID); err != nil {
			return nil, wrapLookupErr(err)
		}
		conn.IsActive = true
	}

	s.invalidateActiveState(userID)
	s.targets.Invalidate(connID)
	return conn, nil
}

// SetActiveConnection marks one connection active and its siblings inactive.
func (s *Service) SetActiveConnection(ctx context.Context, userID, connID uint) error {
	if err := s.conns.SetActive(userID, connID); err != nil {
		return wrapLookupErr(err)
	}
	s.invalidateActiveState(userID)
	return nil
}

// DeleteConnection removes an inactive connection. The active connection
// cannot be deleted; indexing depends on it, so it must be deactivated or
// replaced first.
func (s *Service) DeleteConnection(ctx context.Context, userID, connID uint) error {
	conn, err := s.conns.GetByID(userID, connID)
	if err != nil {
		return wrapLookupErr(err)
	}
	if conn.IsActive {
		return fmt.Errorf("%w: connection is active; deactivate it first", ErrInvalidState)
	}
	if err := s.conns.Delete(userID, connID); err != nil {
		return err
	}
	s.targets.Invalidate(connID)
	return nil
}

// TestConnection checks connectivity of the given parameters without storing
// anything. Always returns a result, never an error or panic.
func (s *Service) TestConnection(ctx context.Context, params targetdb.ConnectionParams) targetdb.TestResult {
	return targetdb.TestConnection(ctx, params)
}

// --- Config registry ---------------------------------------------------

// ConfigInput carries the creation fields for an indexing config.
type ConfigInput struct {
	Name             string   `json:"name"`
	NftBids          bool     `json:"nft_bids"`
	TokenPrices      bool     `json:"token_prices"`
	BorrowableTokens bool     `json:"borrowable_tokens"`
	CustomAddresses  []string `json:"custom_addresses"`
}

// CreateConfig validates input, materializes the provider subscription and
// stores the config. New configs always start inactive.
func (s *Service) CreateConfig(ctx context.Context, userID uint, input ConfigInput) (*models.IndexingConfig, error) {
	config := &models.IndexingConfig{
		UserID:           userID,
		Name:             input.Name,
		NftBids:          input.NftBids,
		TokenPrices:      input.TokenPrices,
		BorrowableTokens: input.BorrowableTokens,
	}
	if err := config.SetAddresses(input.CustomAddresses); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if config.SelectionEmpty() {
		return nil, fmt.Errorf("%w: select at least one transaction type or custom address", ErrValidation)
	}
	if _, err := s.conns.GetActiveByUser(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: an active database connection is required first", ErrInvalidState)
		}
		return nil, err
	}

	handle, err := s.sync.Reconcile(ctx, userID, "", Selection{}, SelectionFromConfig(config))
	if err != nil {
		s.audit(userID, models.EventConfigCreated, models.LogStatusError,
			fmt.Sprintf("Failed to create subscription for config %q: %v", config.Name, err), nil)
		return nil, err
	}
	config.WebhookID = handle

	if err := s.configs.Create(config); err != nil {
		return nil, err
	}
	s.audit(userID, models.EventConfigCreated, models.LogStatusSuccess,
		fmt.Sprintf("Created indexing config %q", config.Name),
		map[string]any{"config_id": config.ID})
	return config, nil
}

// ConfigPatch carries the partial-update fields for a config. Nil fields are
// left untouched.
type ConfigPatch struct {
	Name             *string   `json:"name"`
	NftBids          *bool     `json:"nft_bids"`
	TokenPrices      *bool     `json:"token_prices"`
	BorrowableTokens *bool     `json:"borrowable_tokens"`
	CustomAddresses  *[]string `json:"custom_addresses"`
	IsActive         *bool     `json:"is_active"`
}

func (p ConfigPatch) metadata() map[string]any {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return map[string]any{"patch": m}
}

// UpdateConfig applies a partial update, reconciling the provider
// subscription when the selection changed. Every update attempt emits a
// CONFIG_UPDATED audit record.
func (s *Service) UpdateConfig(ctx context.Context, userID, configID uint, patch ConfigPatch) (*models.IndexingConfig, error) {
	config, err := s.configs.GetByID(userID, configID)
	if err != nil {
		return nil, wrapLookupErr(err)
	}
	previous := SelectionFromConfig(config)

	if patch.Name != nil {
		config.Name = *patch.Name
	}
	if patch.NftBids != nil {
		config.NftBids = *patch.NftBids
	}
	if patch.TokenPrices != nil {
		config.TokenPrices = *patch.TokenPrices
	}
	if patch.BorrowableTokens != nil {
		config.BorrowableTokens = *patch.BorrowableTokens
	}
	if patch.CustomAddresses != nil {
		if err := config.SetAddresses(*patch.CustomAddresses); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if config.SelectionEmpty() {
		return nil, fmt.Errorf("%w: select at least one transaction type or custom address", ErrValidation)
	}

	if patch.IsActive != nil && *patch.IsActive && !config.IsActive {
		if err := s.configs.SetActive(userID, configID); err != nil {
			return nil, wrapLookupErr(err)
		}
		config.IsActive = true
	}
	if patch.IsActive != nil && !*patch.IsActive {
		config.IsActive = false
	}

	var reconcileErr error
	effective := SelectionFromConfig(config)
	if !previous.Equal(effective) {
		handle, err := s.sync.Reconcile(ctx, userID, config.WebhookID, previous, effective)
		if err != nil {
			// The local mutation is still persisted; the user asked for this
			// selection and the next reconcile can recreate the subscription.
			reconcileErr = err
			handle = ""
		}
		config.WebhookID = handle
	}

	if err := s.configs.Update(config); err != nil {
		return nil, err
	}
	s.invalidateActiveState(userID)

	if reconcileErr != nil {
		s.audit(userID, models.EventConfigUpdated, models.LogStatusError,
			fmt.Sprintf("Updated config %q but subscription sync failed: %v", config.Name, reconcileErr),
			patch.metadata())
		return config, reconcileErr
	}
	s.audit(userID, models.EventConfigUpdated, models.LogStatusSuccess,
		fmt.Sprintf("Updated indexing config %q", config.Name),
		map[string]any{"config_id": config.ID})
	return config, nil
}

// DeleteConfig removes an inactive config. The provider subscription is torn
// down best-effort: an orphaned subscription is recoverable by manual
// cleanup, a stuck local config would block the user.
func (s *Service) DeleteConfig(ctx context.Context, userID, configID uint) error {
	config, err := s.configs.GetByID(userID, configID)
	if err != nil {
		return wrapLookupErr(err)
	}
	if config.IsActive {
		return fmt.Errorf("%w: config is active; deactivate it first", ErrInvalidState)
	}

	if err := s.sync.Teardown(ctx, config.WebhookID); err != nil {
		log.Errorf("failed to delete subscription %s for config %d: %v", config.WebhookID, configID, err)
		s.audit(userID, models.EventConfigDeleted, models.LogStatusError,
			fmt.Sprintf("Subscription cleanup failed for config %q: %v", config.Name, err),
			map[string]any{"config_id": config.ID})
	}

	if err := s.configs.Delete(userID, configID); err != nil {
		return err
	}
	s.audit(userID, models.EventConfigDeleted, models.LogStatusSuccess,
		fmt.Sprintf("Deleted indexing config %q", config.Name),
		map[string]any{"config_id": config.ID})
	return nil
}

// --- Ad-hoc queries ----------------------------------------------------

// Query validates and runs a read-only query against the user's active
// target connection on a short-lived connection.
func (s *Service) Query(ctx context.Context, userID uint, sqlText string) ([]map[string]any, error) {
	if err := queryguard.Validate(sqlText); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsafeInput, err)
	}
	conn, err := s.conns.GetActiveByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no active database connection", ErrInvalidState)
		}
		return nil, err
	}
	rows, err := targetdb.RunQuery(ctx, targetdb.ParamsFromModel(conn), sqlText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return rows, nil
}

// --- Shared helpers ----------------------------------------------------

func wrapLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

func activeStateKey(userID uint) string {
	return fmt.Sprintf("indexer:active_state:%d", userID)
}

func (s *Service) invalidateActiveState(userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(activeStateKey(userID)); err != nil {
		log.Debugf("failed to invalidate active state cache for user %d: %v", userID, err)
	}
}
