package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConnectionConfig(t *testing.T) {
	cfg := DefaultConnectionConfig()

	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 1*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxIdleTime)
}

func TestDialect_DriverName(t *testing.T) {
	tests := []struct {
		dialect Dialect
		want    string
		wantErr bool
	}{
		{DialectPostgres, "pgx", false},
		{DialectSQLite, "sqlite3", false},
		{Dialect("oracle"), "", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			got, err := tt.dialect.DriverName()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPoolFor(t *testing.T) {
	t.Run("postgres fills unset values", func(t *testing.T) {
		cfg := poolFor(DialectPostgres, ConnectionConfig{MaxOpenConns: 50})
		assert.Equal(t, 50, cfg.MaxOpenConns)
		assert.Equal(t, 10, cfg.MaxIdleConns)
		assert.Equal(t, 1*time.Hour, cfg.ConnMaxLifetime)
	})

	t.Run("sqlite uses one connection", func(t *testing.T) {
		cfg := poolFor(DialectSQLite, ConnectionConfig{MaxOpenConns: 50, MaxIdleConns: 20})
		assert.Equal(t, 1, cfg.MaxOpenConns)
		assert.Equal(t, 1, cfg.MaxIdleConns)
		assert.Zero(t, cfg.ConnMaxLifetime)
	})
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(DialectPostgres, "", DefaultConnectionConfig())
	assert.Error(t, err)

	_, err = Open(Dialect("oracle"), "dsn", DefaultConnectionConfig())
	assert.Error(t, err)
}

func TestOpen_SQLiteMemory(t *testing.T) {
	db, err := Open(DialectSQLite, ":memory:", ConnectionConfig{})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}
