package repositories

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	intconfig "along/internal/config"
	intdb "along/internal/db"
)

const kvTable = "along_kv"

// MySQLKV keeps values in the along_kv table.
type MySQLKV struct {
	DB *sql.DB

	schemaOnce sync.Once
	schemaErr  error
}

func (r *MySQLKV) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// EnsureSchema creates along_kv when it is missing.
func (r *MySQLKV) EnsureSchema(ctx context.Context) error {
	r.schemaOnce.Do(func() {
		db := r.db()
		if db == nil {
			r.schemaErr = storageErr("schema", kvTable, errors.New("database not connected"))
			return
		}
		if intdb.HasTable(ctx, db, kvTable) {
			return
		}
		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS along_kv (
				k VARCHAR(191) NOT NULL PRIMARY KEY,
				v MEDIUMTEXT NOT NULL,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
			) CHARACTER SET utf8mb4`)
		if err != nil {
			r.schemaErr = storageErr("schema", kvTable, err)
		}
	})
	return r.schemaErr
}

func (r *MySQLKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	db := r.db()
	if db == nil {
		return nil, false, storageErr("get", key, errors.New("database not connected"))
	}
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM along_kv WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storageErr("get", key, err)
	}
	return []byte(v), true, nil
}

func (r *MySQLKV) Set(ctx context.Context, key string, value []byte) error {
	db := r.db()
	if db == nil {
		return storageErr("set", key, errors.New("database not connected"))
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO along_kv (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)`,
		key, string(value))
	if err != nil {
		return storageErr("set", key, err)
	}
	return nil
}
