package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// ownedTable builds statements against a table where every WHERE clause is
// pinned to a single owner. The owner ID is always bound as $1, so callers
// number their own placeholders from $2.
type ownedTable struct {
	pool    *pgxpool.Pool
	name    string
	columns string
}

func (t ownedTable) where(cond string) string {
	if cond == "" {
		return "WHERE user_id = $1"
	}
	return "WHERE user_id = $1 AND (" + cond + ")"
}

func (t ownedTable) selectSQL(cond, suffix string) string {
	return strings.TrimSpace(fmt.Sprintf("SELECT %s FROM %s %s %s", t.columns, t.name, t.where(cond), suffix))
}

func (t ownedTable) query(ctx context.Context, ownerID, cond, suffix string, args ...interface{}) (pgx.Rows, error) {
	return t.pool.Query(ctx, t.selectSQL(cond, suffix), append([]interface{}{ownerID}, args...)...)
}

func (t ownedTable) queryRow(ctx context.Context, ownerID, cond string, args ...interface{}) pgx.Row {
	return t.pool.QueryRow(ctx, t.selectSQL(cond, ""), append([]interface{}{ownerID}, args...)...)
}

// update runs "UPDATE <table> SET <set> WHERE user_id = $1 AND id = $2" and
// reports whether a row matched. SET placeholders start at $3.
func (t ownedTable) update(ctx context.Context, ownerID, id, set string, args ...interface{}) (bool, error) {
	sql := fmt.Sprintf("UPDATE %s SET %s %s", t.name, set, t.where("id = $2"))
	tag, err := t.pool.Exec(ctx, sql, append([]interface{}{ownerID, id}, args...)...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (t ownedTable) delete(ctx context.Context, ownerID, id string) (bool, error) {
	sql := fmt.Sprintf("DELETE FROM %s %s", t.name, t.where("id = $2"))
	tag, err := t.pool.Exec(ctx, sql, ownerID, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (t ownedTable) exists(ctx context.Context, ownerID, cond string, args ...interface{}) (bool, error) {
	sql := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s %s)", t.name, t.where(cond))
	var exists bool
	err := t.pool.QueryRow(ctx, sql, append([]interface{}{ownerID}, args...)...).Scan(&exists)
	return exists, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// likePattern wraps s for a substring ILIKE match, escaping wildcards.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func limitOffset(limit, offset int) (interface{}, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return nil, offset // LIMIT NULL means no limit
	}
	return limit, offset
}
