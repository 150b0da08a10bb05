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

type attachmentRepository struct {
	db *DB
}

// NewAttachmentRepository constructs an [AttachmentRepository] backed by
// the local SQLite database.
func NewAttachmentRepository(db *DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Save(ctx context.Context, noteID string, b models.AttachmentBlob) error {
	query, args, err := sq.Insert("attachment_blobs").
		Columns("id", "note_id", "encrypted_name_ciphertext", "encrypted_name_iv",
			"mime_type", "size", "blob_ciphertext", "blob_iv",
			"thumbnail_ciphertext", "thumbnail_iv").
		Values(b.ID, noteID, b.EncryptedName.Ciphertext, b.EncryptedName.IV,
			b.MimeType, b.Size, b.BlobCiphertext, b.BlobIV,
			nullableBytes(b.ThumbnailCiphertext), nullableString(b.ThumbnailIV)).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("store: build insert attachment query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("store: insert attachment: %w", err)
	}
	return nil
}

func (r *attachmentRepository) Get(ctx context.Context, id string) (models.AttachmentBlob, error) {
	query, args, err := selectAttachments().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.AttachmentBlob{}, fmt.Errorf("store: build select attachment query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	b, err := scanAttachment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AttachmentBlob{}, ErrAttachmentNotFound
	}
	if err != nil {
		return models.AttachmentBlob{}, fmt.Errorf("store: scan attachment: %w", err)
	}
	return b, nil
}

func (r *attachmentRepository) ListByNote(ctx context.Context, noteID string) ([]models.AttachmentBlob, error) {
	query, args, err := selectAttachments().Where(sq.Eq{"note_id": noteID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("store: build list attachments query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list attachments: %w", err)
	}
	defer rows.Close()

	var blobs []models.AttachmentBlob
	for rows.Next() {
		b, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan attachment row: %w", err)
		}
		blobs = append(blobs, b)
	}
	return blobs, rows.Err()
}

func (r *attachmentRepository) Delete(ctx context.Context, id string) error {
	query, args, err := sq.Delete("attachment_blobs").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("store: build delete attachment query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("store: delete attachment: %w", err)
	}
	return requireRowsAffected(res, ErrAttachmentNotFound)
}

func selectAttachments() sq.SelectBuilder {
	return sq.Select("id", "note_id", "encrypted_name_ciphertext", "encrypted_name_iv",
		"mime_type", "size", "blob_ciphertext", "blob_iv",
		"thumbnail_ciphertext", "thumbnail_iv").
		From("attachment_blobs").
		PlaceholderFormat(sq.Question)
}

func scanAttachment(row rowScanner) (models.AttachmentBlob, error) {
	var b models.AttachmentBlob
	var thumbCiphertext []byte
	var thumbIV sql.NullString
	err := row.Scan(&b.ID, &b.NoteID, &b.EncryptedName.Ciphertext, &b.EncryptedName.IV,
		&b.MimeType, &b.Size, &b.BlobCiphertext, &b.BlobIV,
		&thumbCiphertext, &thumbIV)
	if err != nil {
		return models.AttachmentBlob{}, err
	}
	b.ThumbnailCiphertext = thumbCiphertext
	b.ThumbnailIV = thumbIV.String
	return b, nil
}

func nullableBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
