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

	"github.com/seesee/jottery/internal/logger"
	"github.com/seesee/jottery/models"
)

type noteRepository struct {
	db *DB
}

// NewNoteRepository constructs a [NoteRepository] backed by the local
// SQLite database.
func NewNoteRepository(db *DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, n models.Note) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Insert("notes").
		Columns("id", "created_at", "modified_at", "synced_at",
			"content_ciphertext", "content_iv", "tags_ciphertext", "tags_iv",
			"pinned", "deleted", "deleted_at", "content_hash", "version",
			"word_wrap", "syntax_language").
		Values(n.ID, n.CreatedAt, n.ModifiedAt, n.SyncedAt,
			n.Content.Ciphertext, n.Content.IV, n.Tags.Ciphertext, n.Tags.IV,
			n.Pinned, n.Deleted, n.DeletedAt, n.ContentHash, n.Version,
			n.WordWrap, n.SyntaxLanguage).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("store: build insert note query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "noteRepository.Create").Msg("insert note failed")
		return fmt.Errorf("store: insert note: %w", err)
	}
	return nil
}

func (r *noteRepository) Get(ctx context.Context, id string) (models.Note, error) {
	query, args, err := selectNotes().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Note{}, fmt.Errorf("store: build select note query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNoteNotFound
	}
	if err != nil {
		return models.Note{}, fmt.Errorf("store: scan note: %w", err)
	}
	return n, nil
}

func (r *noteRepository) List(ctx context.Context, includeDeleted bool) ([]models.Note, error) {
	qb := selectNotes()
	if !includeDeleted {
		qb = qb.Where(sq.Eq{"deleted": false})
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("store: build list notes query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan note row: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate note rows: %w", err)
	}
	return notes, nil
}

func (r *noteRepository) Update(ctx context.Context, n models.Note) error {
	query, args, err := sq.Update("notes").
		Set("modified_at", n.ModifiedAt).
		Set("synced_at", n.SyncedAt).
		Set("content_ciphertext", n.Content.Ciphertext).
		Set("content_iv", n.Content.IV).
		Set("tags_ciphertext", n.Tags.Ciphertext).
		Set("tags_iv", n.Tags.IV).
		Set("pinned", n.Pinned).
		Set("deleted", n.Deleted).
		Set("deleted_at", n.DeletedAt).
		Set("content_hash", n.ContentHash).
		Set("version", n.Version).
		Set("word_wrap", n.WordWrap).
		Set("syntax_language", n.SyntaxLanguage).
		Where(sq.Eq{"id": n.ID}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("store: build update note query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("store: update note: %w", err)
	}
	return requireRowsAffected(res, ErrNoteNotFound)
}

func (r *noteRepository) SoftDelete(ctx context.Context, id string, deletedAt, modifiedAt time.Time) error {
	query, args, err := sq.Update("notes").
		Set("deleted", true).
		Set("deleted_at", deletedAt).
		Set("modified_at", modifiedAt).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("store: build soft-delete note query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("store: soft-delete note: %w", err)
	}
	return requireRowsAffected(res, ErrNoteNotFound)
}

func (r *noteRepository) Restore(ctx context.Context, id string, modifiedAt time.Time) error {
	query, args, err := sq.Update("notes").
		Set("deleted", false).
		Set("deleted_at", nil).
		Set("modified_at", modifiedAt).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("store: build restore note query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("store: restore note: %w", err)
	}
	return requireRowsAffected(res, ErrNoteNotFound)
}

func (r *noteRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	query, args, err := sq.Delete("notes").
		Where(sq.Eq{"deleted": true}).
		Where(sq.Lt{"deleted_at": cutoff}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("store: build purge notes query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("store: purge notes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("store: purge notes rows affected: %w", err)
	}
	return int(n), nil
}

func (r *noteRepository) Delete(ctx context.Context, id string) error {
	query, args, err := sq.Delete("notes").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("store: build delete note query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("store: delete note: %w", err)
	}
	return requireRowsAffected(res, ErrNoteNotFound)
}

func selectNotes() sq.SelectBuilder {
	return sq.Select("id", "created_at", "modified_at", "synced_at",
		"content_ciphertext", "content_iv", "tags_ciphertext", "tags_iv",
		"pinned", "deleted", "deleted_at", "content_hash", "version",
		"word_wrap", "syntax_language").
		From("notes").
		PlaceholderFormat(sq.Question)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (models.Note, error) {
	var n models.Note
	err := row.Scan(&n.ID, &n.CreatedAt, &n.ModifiedAt, &n.SyncedAt,
		&n.Content.Ciphertext, &n.Content.IV, &n.Tags.Ciphertext, &n.Tags.IV,
		&n.Pinned, &n.Deleted, &n.DeletedAt, &n.ContentHash, &n.Version,
		&n.WordWrap, &n.SyntaxLanguage)
	return n, err
}

func requireRowsAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
