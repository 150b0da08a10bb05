// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

type settingsRepository struct {
	db *DB
}

// NewSettingsRepository constructs a [SettingsRepository] backed by the
// local SQLite database.
func NewSettingsRepository(db *DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, key string) (string, error) {
	query, args, err := sq.Select("value").
		From("settings").
		Where(sq.Eq{"key": key}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("store: build get setting query: %w", err)
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("store: get setting: %w", err)
	}
	return value, nil
}

func (r *settingsRepository) Set(ctx context.Context, key, value string) error {
	query, args, err := sq.Insert("settings").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("store: build set setting query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("store: set setting: %w", err)
	}
	return nil
}
