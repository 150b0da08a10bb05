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

type postgresAttachmentRepository struct {
	db *sql.DB
}

func (r *postgresAttachmentRepository) Save(ctx context.Context, clientID string, att models.AttachmentBlob) error {
	query, args, err := sq.Insert("server_note_attachments").
		Columns("client_id", "note_id", "id", "encrypted_name_ciphertext", "encrypted_name_iv",
			"mime_type", "size", "blob").
		Values(clientID, att.NoteID, att.ID, att.EncryptedName.Ciphertext, att.EncryptedName.IV,
			att.MimeType, att.Size, att.BlobCiphertext).
		Suffix(`ON CONFLICT(client_id, note_id, id) DO UPDATE SET
			encrypted_name_ciphertext = excluded.encrypted_name_ciphertext,
			encrypted_name_iv = excluded.encrypted_name_iv,
			mime_type = excluded.mime_type,
			size = excluded.size,
			blob = excluded.blob`).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("server store: build save attachment query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("server store: save attachment: %w", err)
	}
	return nil
}

func (r *postgresAttachmentRepository) Get(ctx context.Context, clientID, attachmentID string) (models.AttachmentBlob, error) {
	query, args, err := selectAttachmentsPg().
		Where(sq.Eq{"client_id": clientID, "id": attachmentID}).
		ToSql()
	if err != nil {
		return models.AttachmentBlob{}, fmt.Errorf("server store: build get attachment query: %w", err)
	}
	att, err := scanAttachment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.AttachmentBlob{}, ErrAttachmentNotFound
	}
	if err != nil {
		return models.AttachmentBlob{}, fmt.Errorf("server store: get attachment: %w", err)
	}
	return att, nil
}

func (r *postgresAttachmentRepository) ListByNote(ctx context.Context, clientID, noteID string) ([]models.AttachmentBlob, error) {
	query, args, err := selectAttachmentsPg().
		Where(sq.Eq{"client_id": clientID, "note_id": noteID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("server store: build list attachments query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("server store: list attachments: %w", err)
	}
	defer rows.Close()

	var atts []models.AttachmentBlob
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("server store: scan attachment row: %w", err)
		}
		atts = append(atts, a)
	}
	return atts, rows.Err()
}

func (r *postgresAttachmentRepository) Delete(ctx context.Context, clientID, attachmentID string) error {
	query, args, err := sq.Delete("server_note_attachments").
		Where(sq.Eq{"client_id": clientID, "id": attachmentID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("server store: build delete attachment query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("server store: delete attachment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAttachmentNotFound
	}
	return nil
}

func selectAttachmentsPg() sq.SelectBuilder {
	return sq.Select("note_id", "id", "encrypted_name_ciphertext", "encrypted_name_iv",
		"mime_type", "size", "blob").
		From("server_note_attachments").
		PlaceholderFormat(sq.Dollar)
}
