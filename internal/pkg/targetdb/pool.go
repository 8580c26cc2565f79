package targetdb

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/mitgajera/Blockchain-indexer/app/models"
)

const (
	poolMaxOpen     = 5
	poolMaxIdle     = 2
	poolMaxIdleTime = 5 * time.Minute
)

type pooledHandle struct {
	db          *gorm.DB
	fingerprint string
}

// Pool keeps one bounded connection pool per target connection record for
// routine inserts. Handles are reopened when the stored credentials change.
type Pool struct {
	mu      sync.Mutex
	handles map[uint]*pooledHandle
}

// NewPool creates an empty target connection pool.
func NewPool() *Pool {
	return &Pool{handles: make(map[uint]*pooledHandle)}
}

// Exec runs a parameterized statement against the owner's pooled target
// connection. Pool exhaustion or timeouts surface as the statement error.
func (p *Pool) Exec(ctx context.Context, conn *models.DbConnection, query string, args ...any) error {
	db, err := p.get(conn)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(query, args...).Error
}

// Invalidate closes and drops the pooled handle for a connection record.
// Called when a connection is updated or deleted.
func (p *Pool) Invalidate(connID uint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if handle, ok := p.handles[connID]; ok {
		closeHandle(handle.db)
		delete(p.handles, connID)
	}
}

// Close tears down all pooled handles.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, handle := range p.handles {
		closeHandle(handle.db)
		delete(p.handles, id)
	}
}

func (p *Pool) get(conn *models.DbConnection) (*gorm.DB, error) {
	params := ParamsFromModel(conn)
	fp := fingerprint(params)

	p.mu.Lock()
	defer p.mu.Unlock()

	if handle, ok := p.handles[conn.ID]; ok {
		if handle.fingerprint == fp {
			return handle.db, nil
		}
		closeHandle(handle.db)
		delete(p.handles, conn.ID)
	}

	db, err := open(params)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		closeHandle(db)
		return nil, err
	}
	sqlDB.SetMaxOpenConns(poolMaxOpen)
	sqlDB.SetMaxIdleConns(poolMaxIdle)
	sqlDB.SetConnMaxIdleTime(poolMaxIdleTime)

	p.handles[conn.ID] = &pooledHandle{db: db, fingerprint: fp}
	return db, nil
}

func fingerprint(params ConnectionParams) string {
	sum := sha256.Sum256([]byte(params.DSN()))
	return hex.EncodeToString(sum[:])
}
