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

	"github.com/seesee/jottery/models"
)

type sqliteNoteRepository struct {
	db    *sql.DB
	locks *keyedMutex
}

// Upsert serializes on the (clientID, note.ID) pair via the repository's
// keyed mutex, then performs a read-decide-write round trip: a note with no
// existing row is inserted at server_version 1; a note whose ModifiedAt
// exactly matches the stored row's ModifiedAt is an idempotent no-op
// (already-applied resend); a note whose ModifiedAt is strictly newer than
// the stored row's ServerModifiedAt is accepted, bumping server_version;
// anything else is ErrVersionConflict ("Server version is newer" at the
// service layer), since the server has already recorded a write the caller
// hasn't seen yet. Because SetMaxOpenConns(1) already limits the process to
// a single active connection, the mutex's job is less about mutual
// exclusion against other connections and more about giving this decision a
// stable read, and about bounding how long a request waits behind a slow
// peer before giving up with ErrLockTimeout.
func (r *sqliteNoteRepository) Upsert(ctx context.Context, note models.ServerNote) (models.ServerNote, error) {
	unlock, err := r.locks.Lock(ctx, note.ClientID+"/"+note.ID)
	if err != nil {
		return models.ServerNote{}, fmt.Errorf("%w: %v", ErrLockTimeout, err)
	}
	defer unlock()

	current, err := r.Get(ctx, note.ClientID, note.ID)
	exists := true
	if err != nil {
		if !errors.Is(err, ErrNoteNotFound) {
			return models.ServerNote{}, err
		}
		exists = false
	}

	if exists {
		if note.ModifiedAt.Equal(current.ModifiedAt) {
			return current, nil
		}
		if !note.ModifiedAt.After(current.ServerModifiedAt) {
			return current, ErrVersionConflict
		}
		note.ServerVersion = current.ServerVersion + 1
	} else {
		note.ServerVersion = 1
	}
	note.ServerModifiedAt = time.Now().UTC()

	if exists {
		query, args, err := sq.Update("server_notes").
			Set("modified_at", note.ModifiedAt).
			Set("content_ciphertext", note.Content.Ciphertext).
			Set("content_iv", note.Content.IV).
			Set("tags_ciphertext", note.Tags.Ciphertext).
			Set("tags_iv", note.Tags.IV).
			Set("pinned", note.Pinned).
			Set("deleted", note.Deleted).
			Set("deleted_at", note.DeletedAt).
			Set("content_hash", note.ContentHash).
			Set("word_wrap", note.WordWrap).
			Set("syntax_language", note.SyntaxLanguage).
			Set("server_version", note.ServerVersion).
			Set("server_modified_at", note.ServerModifiedAt).
			Where(sq.Eq{"client_id": note.ClientID, "id": note.ID}).
			PlaceholderFormat(sq.Question).
			ToSql()
		if err != nil {
			return models.ServerNote{}, fmt.Errorf("server store: build update note query: %w", err)
		}
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return models.ServerNote{}, fmt.Errorf("server store: update note: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return models.ServerNote{}, fmt.Errorf("server store: update note: no rows affected")
		}
		return note, nil
	}

	query, args, err := sq.Insert("server_notes").
		Columns("client_id", "id", "created_at", "modified_at", "content_ciphertext", "content_iv",
			"tags_ciphertext", "tags_iv", "pinned", "deleted", "deleted_at", "content_hash",
			"word_wrap", "syntax_language", "server_version", "server_modified_at").
		Values(note.ClientID, note.ID, note.CreatedAt, note.ModifiedAt, note.Content.Ciphertext, note.Content.IV,
			note.Tags.Ciphertext, note.Tags.IV, note.Pinned, note.Deleted, note.DeletedAt, note.ContentHash,
			note.WordWrap, note.SyntaxLanguage, note.ServerVersion, note.ServerModifiedAt).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return models.ServerNote{}, fmt.Errorf("server store: build insert note query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return models.ServerNote{}, fmt.Errorf("server store: insert note: %w", err)
	}
	return note, nil
}

func (r *sqliteNoteRepository) Get(ctx context.Context, clientID, noteID string) (models.ServerNote, error) {
	query, args, err := selectServerNotes().
		Where(sq.Eq{"client_id": clientID, "id": noteID}).
		ToSql()
	if err != nil {
		return models.ServerNote{}, fmt.Errorf("server store: build get note query: %w", err)
	}

	note, err := scanServerNote(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ServerNote{}, ErrNoteNotFound
	}
	if err != nil {
		return models.ServerNote{}, fmt.Errorf("server store: get note: %w", err)
	}
	return note, nil
}

func (r *sqliteNoteRepository) ListSince(ctx context.Context, clientID string, since *time.Time) ([]models.ServerNote, error) {
	b := selectServerNotes().Where(sq.Eq{"client_id": clientID})
	if since != nil {
		b = b.Where(sq.Gt{"server_modified_at": *since})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("server store: build list notes query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("server store: list notes: %w", err)
	}
	defer rows.Close()

	var notes []models.ServerNote
	for rows.Next() {
		n, err := scanServerNote(rows)
		if err != nil {
			return nil, fmt.Errorf("server store: scan note row: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Delete hard-deletes the server row for (clientID, noteID). Attachment
// cascade is the caller's responsibility (the service layer owns both
// repositories).
func (r *sqliteNoteRepository) Delete(ctx context.Context, clientID, noteID string) error {
	unlock, err := r.locks.Lock(ctx, clientID+"/"+noteID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLockTimeout, err)
	}
	defer unlock()

	query, args, err := sq.Delete("server_notes").
		Where(sq.Eq{"client_id": clientID, "id": noteID}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("server store: build delete note query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("server store: delete note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *sqliteNoteRepository) Count(ctx context.Context, clientID string) (int, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("server_notes").
		Where(sq.Eq{"client_id": clientID, "deleted": false}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("server store: build count notes query: %w", err)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("server store: count notes: %w", err)
	}
	return n, nil
}

func (r *sqliteNoteRepository) LastModified(ctx context.Context, clientID string) (*time.Time, error) {
	query, args, err := sq.Select("MAX(server_modified_at)").
		From("server_notes").
		Where(sq.Eq{"client_id": clientID}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("server store: build last modified query: %w", err)
	}
	var t sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&t); err != nil {
		return nil, fmt.Errorf("server store: last modified: %w", err)
	}
	if !t.Valid {
		return nil, nil
	}
	return &t.Time, nil
}

func selectServerNotes() sq.SelectBuilder {
	return sq.Select("client_id", "id", "created_at", "modified_at", "content_ciphertext", "content_iv",
		"tags_ciphertext", "tags_iv", "pinned", "deleted", "deleted_at", "content_hash",
		"word_wrap", "syntax_language", "server_version", "server_modified_at").
		From("server_notes").
		PlaceholderFormat(sq.Question)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanServerNote(row rowScanner) (models.ServerNote, error) {
	var n models.ServerNote
	var deletedAt sql.NullTime
	var contentHash sql.NullString
	err := row.Scan(&n.ClientID, &n.ID, &n.CreatedAt, &n.ModifiedAt, &n.Content.Ciphertext, &n.Content.IV,
		&n.Tags.Ciphertext, &n.Tags.IV, &n.Pinned, &n.Deleted, &deletedAt, &contentHash,
		&n.WordWrap, &n.SyntaxLanguage, &n.ServerVersion, &n.ServerModifiedAt)
	if err != nil {
		return models.ServerNote{}, err
	}
	if deletedAt.Valid {
		n.DeletedAt = &deletedAt.Time
	}
	if contentHash.Valid {
		n.ContentHash = &contentHash.String
	}
	return n, nil
}
