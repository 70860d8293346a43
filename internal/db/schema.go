package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"strings"

	"adminhub/internal/utils"
)

//go:embed schema.sql
var schemaSQL string

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// HasTable looks up information_schema for table in the current database.
// Any error, including a dead connection, reads as "missing".
func HasTable(ctx context.Context, q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

func HasColumn(ctx context.Context, q QueryRower, table, column string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// Statements splits the embedded schema into executable statements.
func Statements() []string {
	out := []string{}
	for _, s := range strings.Split(schemaSQL, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type Migrator interface {
	QueryRower
	Execer
}

// Migrate creates the tables that are not there yet. Existing tables are
// left alone; column changes are out of its reach.
func Migrate(ctx context.Context, db Migrator) (created []string, err error) {
	for _, stmt := range Statements() {
		table := tableName(stmt)
		if table == "" {
			return created, errors.New("schema: cannot find table name in statement")
		}
		if HasTable(ctx, db, table) {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			utils.LogError("", "db", "migrate_"+table, err)
			return created, err
		}
		created = append(created, table)
	}
	if len(created) > 0 {
		utils.LogEvent("", "db", "migrate", "created="+strings.Join(created, ","))
	}
	return created, nil
}

func tableName(stmt string) string {
	const marker = "CREATE TABLE IF NOT EXISTS "
	i := strings.Index(stmt, marker)
	if i < 0 {
		return ""
	}
	rest := strings.TrimSpace(stmt[i+len(marker):])
	if j := strings.IndexAny(rest, " ("); j > 0 {
		return rest[:j]
	}
	return ""
}

// NullIfEmpty stores optional strings as NULL.
func NullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
