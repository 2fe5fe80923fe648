package localstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var QB = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostgresStore persists local storage in a single local_storage table,
// created by the migrations run from main.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ Store = (*PostgresStore)(nil)

func (p *PostgresStore) Namespace(sessionID string) KV {
	return &postgresKV{db: p.db, sessionID: sessionID}
}

func (p *PostgresStore) DropSession(ctx context.Context, sessionID string) error {
	query, args, err := QB.Delete("local_storage").
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, query, args...)
	return err
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}

type postgresKV struct {
	db        *sqlx.DB
	sessionID string
}

func (kv *postgresKV) Get(ctx context.Context, key string) (string, error) {
	query, args, err := QB.Select("value").
		From("local_storage").
		Where(squirrel.Eq{"session_id": kv.sessionID, "key": key}).
		ToSql()
	if err != nil {
		return "", err
	}

	var value string
	if err := kv.db.GetContext(ctx, &value, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoValue
		}
		return "", err
	}
	return value, nil
}

func (kv *postgresKV) Set(ctx context.Context, key, value string) error {
	query, args, err := QB.Insert("local_storage").
		Columns("session_id", "key", "value").
		Values(kv.sessionID, key, value).
		Suffix("ON CONFLICT (session_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
		ToSql()
	if err != nil {
		return err
	}
	_, err = kv.db.ExecContext(ctx, query, args...)
	return err
}

func (kv *postgresKV) Remove(ctx context.Context, key string) error {
	query, args, err := QB.Delete("local_storage").
		Where(squirrel.Eq{"session_id": kv.sessionID, "key": key}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = kv.db.ExecContext(ctx, query, args...)
	return err
}
