// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seesee/jottery/internal/server/store"
	"github.com/seesee/jottery/models"
)

// reasonServerVersionNewer is returned to the client when a pushed note's
// ModifiedAt does not exceed the server's recorded ServerModifiedAt: the
// server has already accepted a write the client hasn't pulled yet.
const reasonServerVersionNewer = "Server version is newer"

type noteSyncService struct {
	notes       store.NoteRepository
	attachments store.AttachmentRepository
}

// NewNoteSyncService constructs a NoteSyncService over the given
// server-side note and attachment repositories.
func NewNoteSyncService(notes store.NoteRepository, attachments store.AttachmentRepository) NoteSyncService {
	return &noteSyncService{notes: notes, attachments: attachments}
}

// Push implements NoteSyncService. Each note is applied independently via
// NoteRepository.Upsert's timestamp-arbitrated last-write-wins rule: a
// version conflict rejects only that note, not the whole batch. Attachment
// blobs referenced by the batch are saved before the notes that reference
// them, so a pulling peer never observes a note whose attachment is
// missing.
func (s *noteSyncService) Push(ctx context.Context, clientID string, req models.PushRequest) (models.PushResponse, error) {
	var resp models.PushResponse

	for _, payload := range req.Attachments {
		blob, err := models.DecodeAttachmentPayload(payload)
		if err != nil {
			return models.PushResponse{}, fmt.Errorf("service: decode attachment %s: %w", payload.ID, err)
		}
		if err := s.attachments.Save(ctx, clientID, blob); err != nil {
			return models.PushResponse{}, fmt.Errorf("service: save attachment %s: %w", payload.ID, err)
		}
	}

	for _, note := range req.Notes {
		serverNote := clientNoteToServerNote(clientID, note)

		saved, err := s.notes.Upsert(ctx, serverNote)
		if err != nil {
			if errors.Is(err, store.ErrVersionConflict) {
				resp.Rejected = append(resp.Rejected, models.PushRejected{
					ID:               note.ID,
					Reason:           reasonServerVersionNewer,
					ServerModifiedAt: saved.ServerModifiedAt,
				})
				continue
			}
			if errors.Is(err, store.ErrLockTimeout) {
				resp.Errors = append(resp.Errors, fmt.Sprintf("%s: lock timeout", note.ID))
				continue
			}
			return models.PushResponse{}, fmt.Errorf("service: upsert note %s: %w", note.ID, err)
		}

		resp.Accepted = append(resp.Accepted, models.PushAccepted{
			ID:            saved.ID,
			ServerVersion: saved.ServerVersion,
			SyncedAt:      saved.ServerModifiedAt,
		})
	}

	return resp, nil
}

// Pull implements NoteSyncService. Attachments are only returned for notes
// the caller doesn't already know about (req.KnownNoteIDs), so a peer that
// has synced before re-downloads a note's blobs only when it's seeing that
// note for the first time.
func (s *noteSyncService) Pull(ctx context.Context, clientID string, req models.PullRequest) (models.PullResponse, error) {
	notes, err := s.notes.ListSince(ctx, clientID, req.LastSyncAt)
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("service: list notes since: %w", err)
	}

	known := make(map[string]struct{}, len(req.KnownNoteIDs))
	for _, id := range req.KnownNoteIDs {
		known[id] = struct{}{}
	}

	resp := models.PullResponse{SyncedAt: time.Now().UTC()}
	for _, n := range notes {
		if n.Deleted {
			resp.Deletions = append(resp.Deletions, models.PullDeletion{ID: n.ID, DeletedAt: derefTime(n.DeletedAt, n.ServerModifiedAt)})
			continue
		}
		resp.Notes = append(resp.Notes, n)

		if _, ok := known[n.ID]; ok {
			continue
		}
		blobs, err := s.attachments.ListByNote(ctx, clientID, n.ID)
		if err != nil {
			return models.PullResponse{}, fmt.Errorf("service: list attachments for note %s: %w", n.ID, err)
		}
		for _, blob := range blobs {
			payload, err := models.EncodeAttachmentPayload(blob)
			if err != nil {
				return models.PullResponse{}, fmt.Errorf("service: encode attachment %s: %w", blob.ID, err)
			}
			resp.Attachments = append(resp.Attachments, payload)
		}
	}

	return resp, nil
}

// Status implements NoteSyncService.
func (s *noteSyncService) Status(ctx context.Context, clientID string) (models.SyncStatusResponse, error) {
	count, err := s.notes.Count(ctx, clientID)
	if err != nil {
		return models.SyncStatusResponse{}, fmt.Errorf("service: count notes: %w", err)
	}
	lastModified, err := s.notes.LastModified(ctx, clientID)
	if err != nil {
		return models.SyncStatusResponse{}, fmt.Errorf("service: last modified: %w", err)
	}

	return models.SyncStatusResponse{
		ClientID:           clientID,
		ServerLastModified: lastModified,
		NoteCount:          count,
	}, nil
}

// Delete implements NoteSyncService. It hard-deletes a note and cascades
// to its attachments, for administrative/compliance use — callers that
// need the regular soft-delete tombstone pathway should instead push a
// note with Deleted set.
func (s *noteSyncService) Delete(ctx context.Context, clientID, noteID string) error {
	if _, err := s.notes.Get(ctx, clientID, noteID); err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return ErrServerNoteNotFound
		}
		return fmt.Errorf("service: load note for delete: %w", err)
	}

	blobs, err := s.attachments.ListByNote(ctx, clientID, noteID)
	if err != nil {
		return fmt.Errorf("service: list attachments for delete: %w", err)
	}
	for _, blob := range blobs {
		if err := s.attachments.Delete(ctx, clientID, blob.ID); err != nil {
			return fmt.Errorf("service: delete attachment %s: %w", blob.ID, err)
		}
	}

	if err := s.notes.Delete(ctx, clientID, noteID); err != nil {
		return fmt.Errorf("service: delete note: %w", err)
	}
	return nil
}

func clientNoteToServerNote(clientID string, note models.Note) models.ServerNote {
	return models.ServerNote{
		ClientID:       clientID,
		ID:             note.ID,
		CreatedAt:      note.CreatedAt,
		ModifiedAt:     note.ModifiedAt,
		Content:        note.Content,
		Tags:           note.Tags,
		Attachments:    note.Attachments,
		Pinned:         note.Pinned,
		Deleted:        note.Deleted,
		DeletedAt:      note.DeletedAt,
		ContentHash:    note.ContentHash,
		WordWrap:       note.WordWrap,
		SyntaxLanguage: note.SyntaxLanguage,
	}
}

func derefTime(t *time.Time, fallback time.Time) time.Time {
	if t != nil {
		return *t
	}
	return fallback
}
