// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/seesee/jottery/models"
)

type postgresClientRepository struct {
	db *sql.DB
}

func (r *postgresClientRepository) Create(ctx context.Context, c models.RegisteredClient) error {
	query, args, err := sq.Insert("clients").
		Columns("id", "api_key_hash", "device_name", "device_type", "created_at", "last_seen_at", "active").
		Values(c.ID, c.APIKeyHash, c.DeviceName, c.DeviceType, c.CreatedAt, c.LastSeenAt, true).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("server store: build create client query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateAPIKey
		}
		return fmt.Errorf("server store: create client: %w", err)
	}
	return nil
}

func (r *postgresClientRepository) FindByAPIKeyHash(ctx context.Context, hash string) (models.RegisteredClient, error) {
	return r.scanOne(ctx, sq.Eq{"api_key_hash": hash, "active": true})
}

func (r *postgresClientRepository) Get(ctx context.Context, clientID string) (models.RegisteredClient, error) {
	return r.scanOne(ctx, sq.Eq{"id": clientID})
}

func (r *postgresClientRepository) scanOne(ctx context.Context, pred sq.Eq) (models.RegisteredClient, error) {
	query, args, err := sq.Select("id", "api_key_hash", "device_name", "device_type", "created_at", "last_seen_at", "active").
		From("clients").
		Where(pred).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return models.RegisteredClient{}, fmt.Errorf("server store: build get client query: %w", err)
	}

	var c models.RegisteredClient
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&c.ID, &c.APIKeyHash, &c.DeviceName, &c.DeviceType, &c.CreatedAt, &c.LastSeenAt, &c.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RegisteredClient{}, ErrClientNotFound
	}
	if err != nil {
		return models.RegisteredClient{}, fmt.Errorf("server store: get client: %w", err)
	}
	return c, nil
}

func (r *postgresClientRepository) UpdateLastSeen(ctx context.Context, clientID string, seenAt time.Time) error {
	query, args, err := sq.Update("clients").
		Set("last_seen_at", seenAt).
		Where(sq.Eq{"id": clientID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("server store: build update last seen query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("server store: update last seen: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrClientNotFound
	}
	return nil
}
