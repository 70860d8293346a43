package config

import (
	"context"
	"database/sql"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
)

var (
	DB   *sql.DB
	dbMu sync.Mutex
)

// ConnectDB opens and pings the shared pool. Calling it again returns the
// existing pool.
func ConnectDB(env Env) (*sql.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		return DB, nil
	}

	db, err := sql.Open("mysql", env.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	DB = db
	log.Info().Str("host", env.DBHost).Str("db", env.DBName).Msg("connected to MySQL")
	return DB, nil
}

// PingDB checks db with a short timeout, falling back to the shared pool
// when db is nil.
func PingDB(ctx context.Context, db *sql.DB) error {
	if db == nil {
		dbMu.Lock()
		db = DB
		dbMu.Unlock()
	}
	if db == nil {
		return sql.ErrConnDone
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		_ = DB.Close()
		DB = nil
	}
}
