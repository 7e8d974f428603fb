package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/xxxsen/jotty/internal/pkg/dbutil"
	appErr "github.com/xxxsen/jotty/internal/pkg/errors"
)

const kvTable = "jotty_kv"

type sqliteConfig struct {
	Path string `json:"path"`
}

type postgresConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type sqlStore struct {
	db     *sqlx.DB
	driver string
}

func init() {
	Register("sqlite", createSQLiteStore)
	Register("postgres", createPostgresStore)
}

func createSQLiteStore(args interface{}) (Store, error) {
	config := &sqliteConfig{}
	if err := decodeConfig(args, config); err != nil {
		return nil, err
	}
	if config.Path == "" {
		return nil, fmt.Errorf("sqlite storage path is required")
	}
	return OpenSQL(dbutil.DriverSQLite, config.Path)
}

func createPostgresStore(args interface{}) (Store, error) {
	config := &postgresConfig{}
	if err := decodeConfig(args, config); err != nil {
		return nil, err
	}
	dsn := config.DSN
	if dsn == "" {
		if config.Host == "" || config.DBName == "" {
			return nil, fmt.Errorf("postgres storage requires dsn or host/dbname")
		}
		sslmode := config.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		port := config.Port
		if port == 0 {
			port = 5432
		}
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			config.Host, port, config.User, config.Password, config.DBName, sslmode)
	}
	return OpenSQL(dbutil.DriverPostgres, dsn)
}

// OpenSQL connects to driver and makes sure the key-value table exists.
func OpenSQL(driver, dsn string) (Store, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if driver == dbutil.DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	s := &sqlStore{db: db, driver: driver}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", kvTable, err)
	}
	return s, nil
}

func (s *sqlStore) migrate() error {
	valueType := "BLOB"
	if s.driver == dbutil.DriverPostgres {
		valueType = "BYTEA"
	}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	k TEXT PRIMARY KEY,
	v %s NOT NULL,
	mtime BIGINT NOT NULL
)`, kvTable, valueType)
	_, err := s.db.Exec(ddl)
	return err
}

func (s *sqlStore) Get(ctx context.Context, key string) ([]byte, error) {
	where := map[string]interface{}{"k": key}
	sqlStr, args, err := builder.BuildSelect(kvTable, where, []string{"v"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(s.driver, sqlStr, args)
	var value []byte
	if err := s.db.GetContext(ctx, &value, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *sqlStore) Set(ctx context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	// gendry has no portable upsert; both drivers accept ON CONFLICT.
	sqlStr := fmt.Sprintf("INSERT INTO %s (k, v, mtime) VALUES (?, ?, ?) ON CONFLICT (k) DO UPDATE SET v = excluded.v, mtime = excluded.mtime", kvTable)
	sqlStr, args := dbutil.Finalize(s.driver, sqlStr, []interface{}{key, value, time.Now().UnixMilli()})
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsFull(err) {
			return fmt.Errorf("write %s: %w", key, appErr.ErrStorageQuota)
		}
		return err
	}
	return nil
}

func (s *sqlStore) Delete(ctx context.Context, key string) error {
	where := map[string]interface{}{"k": key}
	sqlStr, args, err := builder.BuildDelete(kvTable, where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(s.driver, sqlStr, args)
	_, err = s.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
