package targetdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitgajera/Blockchain-indexer/app/models"
)

func TestDSN(t *testing.T) {
	params := ConnectionParams{
		Host:     "db.example.com",
		Port:     5432,
		Database: "analytics",
		Username: "indexer",
		Password: "secret",
	}
	assert.Equal(t,
		"host=db.example.com port=5432 user=indexer password=secret dbname=analytics sslmode=disable",
		params.DSN())

	params.SSL = true
	assert.Contains(t, params.DSN(), "sslmode=require")
}

func TestParamsFromModel(t *testing.T) {
	conn := &models.DbConnection{
		Host:     "db.example.com",
		Port:     5432,
		Database: "analytics",
		Username: "indexer",
		Password: "secret",
		SSL:      true,
	}
	params := ParamsFromModel(conn)
	assert.Equal(t, conn.Host, params.Host)
	assert.Equal(t, conn.Port, params.Port)
	assert.Equal(t, conn.Database, params.Database)
	assert.Equal(t, conn.Username, params.Username)
	assert.Equal(t, conn.Password, params.Password)
	assert.True(t, params.SSL)
}

func TestTestConnectionUnreachableHost(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result := TestConnection(ctx, ConnectionParams{
		Host:     "127.0.0.1",
		Port:     1, // nothing listens here
		Database: "analytics",
		Username: "indexer",
		Password: "secret",
	})
	require.False(t, result.OK)
	assert.Contains(t, result.Message, "Connection failed")
}

func TestFingerprintChangesWithCredentials(t *testing.T) {
	a := ConnectionParams{Host: "db", Port: 5432, Database: "d", Username: "u", Password: "one"}
	b := a
	b.Password = "two"

	assert.NotEqual(t, fingerprint(a), fingerprint(b))
	assert.Equal(t, fingerprint(a), fingerprint(a))
}
