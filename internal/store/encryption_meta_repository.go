// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/seesee/jottery/models"
)

type encryptionMetaRepository struct {
	db *DB
}

// NewEncryptionMetaRepository constructs an [EncryptionMetaRepository]
// backed by the local SQLite database.
func NewEncryptionMetaRepository(db *DB) EncryptionMetaRepository {
	return &encryptionMetaRepository{db: db}
}

func (r *encryptionMetaRepository) Save(ctx context.Context, meta models.EncryptionMetadata) error {
	query, args, err := sq.Insert("encryption_metadata").
		Columns("id", "salt", "iterations", "created_at", "algorithm").
		Values(1, meta.Salt, meta.Iterations, meta.CreatedAt, meta.Algorithm).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("store: build save encryption metadata query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %v", ErrEncryptionMetadataExists, err)
	}
	return nil
}

func (r *encryptionMetaRepository) Get(ctx context.Context) (models.EncryptionMetadata, error) {
	query, args, err := sq.Select("salt", "iterations", "created_at", "algorithm").
		From("encryption_metadata").
		Where(sq.Eq{"id": 1}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return models.EncryptionMetadata{}, fmt.Errorf("store: build get encryption metadata query: %w", err)
	}

	var meta models.EncryptionMetadata
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&meta.Salt, &meta.Iterations, &meta.CreatedAt, &meta.Algorithm)
	if errors.Is(err, sql.ErrNoRows) {
		return models.EncryptionMetadata{}, ErrEncryptionMetadataNotFound
	}
	if err != nil {
		return models.EncryptionMetadata{}, fmt.Errorf("store: get encryption metadata: %w", err)
	}
	return meta, nil
}
