// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seesee/jottery/internal/server/store"
	"github.com/seesee/jottery/models"
)

type fakeServerNoteRepository struct {
	notes map[string]models.ServerNote // keyed by clientID+"/"+id
}

func newFakeServerNoteRepository() *fakeServerNoteRepository {
	return &fakeServerNoteRepository{notes: map[string]models.ServerNote{}}
}

func (f *fakeServerNoteRepository) key(clientID, noteID string) string { return clientID + "/" + noteID }

// Upsert mirrors the real repositories' rule: insert if absent, no-op on an
// exact ModifiedAt resend, accept (bumping ServerVersion) if the incoming
// ModifiedAt is after the stored ServerModifiedAt, otherwise
// ErrVersionConflict.
func (f *fakeServerNoteRepository) Upsert(_ context.Context, note models.ServerNote) (models.ServerNote, error) {
	k := f.key(note.ClientID, note.ID)
	existing, ok := f.notes[k]
	if ok {
		if note.ModifiedAt.Equal(existing.ModifiedAt) {
			return existing, nil
		}
		if !note.ModifiedAt.After(existing.ServerModifiedAt) {
			return existing, store.ErrVersionConflict
		}
		note.ServerVersion = existing.ServerVersion + 1
	} else {
		note.ServerVersion = 1
	}
	note.ServerModifiedAt = time.Now().UTC()
	f.notes[k] = note
	return note, nil
}

func (f *fakeServerNoteRepository) Get(_ context.Context, clientID, noteID string) (models.ServerNote, error) {
	n, ok := f.notes[f.key(clientID, noteID)]
	if !ok {
		return models.ServerNote{}, store.ErrNoteNotFound
	}
	return n, nil
}

func (f *fakeServerNoteRepository) ListSince(_ context.Context, clientID string, since *time.Time) ([]models.ServerNote, error) {
	var out []models.ServerNote
	for _, n := range f.notes {
		if n.ClientID != clientID {
			continue
		}
		if since != nil && !n.ServerModifiedAt.After(*since) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeServerNoteRepository) Delete(_ context.Context, clientID, noteID string) error {
	k := f.key(clientID, noteID)
	if _, ok := f.notes[k]; !ok {
		return store.ErrNoteNotFound
	}
	delete(f.notes, k)
	return nil
}

func (f *fakeServerNoteRepository) Count(_ context.Context, clientID string) (int, error) {
	n := 0
	for _, note := range f.notes {
		if note.ClientID == clientID && !note.Deleted {
			n++
		}
	}
	return n, nil
}

func (f *fakeServerNoteRepository) LastModified(_ context.Context, clientID string) (*time.Time, error) {
	var latest *time.Time
	for _, note := range f.notes {
		if note.ClientID != clientID {
			continue
		}
		if latest == nil || note.ServerModifiedAt.After(*latest) {
			t := note.ServerModifiedAt
			latest = &t
		}
	}
	return latest, nil
}

type fakeServerAttachmentRepository struct {
	blobs map[string]models.AttachmentBlob // keyed by clientID+"/"+id
}

func newFakeServerAttachmentRepository() *fakeServerAttachmentRepository {
	return &fakeServerAttachmentRepository{blobs: map[string]models.AttachmentBlob{}}
}

func (f *fakeServerAttachmentRepository) Save(_ context.Context, clientID string, att models.AttachmentBlob) error {
	f.blobs[clientID+"/"+att.ID] = att
	return nil
}

func (f *fakeServerAttachmentRepository) Get(_ context.Context, clientID, attachmentID string) (models.AttachmentBlob, error) {
	b, ok := f.blobs[clientID+"/"+attachmentID]
	if !ok {
		return models.AttachmentBlob{}, store.ErrAttachmentNotFound
	}
	return b, nil
}

func (f *fakeServerAttachmentRepository) ListByNote(_ context.Context, clientID, noteID string) ([]models.AttachmentBlob, error) {
	var out []models.AttachmentBlob
	for k, b := range f.blobs {
		if len(k) > len(clientID) && k[:len(clientID)] == clientID && b.NoteID == noteID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeServerAttachmentRepository) Delete(_ context.Context, clientID, attachmentID string) error {
	k := clientID + "/" + attachmentID
	if _, ok := f.blobs[k]; !ok {
		return store.ErrAttachmentNotFound
	}
	delete(f.blobs, k)
	return nil
}

func TestNoteSyncService_Push_AcceptsNewNote(t *testing.T) {
	notes := newFakeServerNoteRepository()
	svc := NewNoteSyncService(notes, newFakeServerAttachmentRepository())

	now := time.Now().UTC()
	resp, err := svc.Push(context.Background(), "client-1", models.PushRequest{
		Notes: []models.Note{{ID: "note-1", CreatedAt: now, ModifiedAt: now}},
	})

	require.NoError(t, err)
	require.Len(t, resp.Accepted, 1)
	assert.Empty(t, resp.Rejected)
	assert.Equal(t, int64(1), resp.Accepted[0].ServerVersion)
}

func TestNoteSyncService_Push_IdempotentResendIsNoop(t *testing.T) {
	notes := newFakeServerNoteRepository()
	svc := NewNoteSyncService(notes, newFakeServerAttachmentRepository())
	ctx := context.Background()

	now := time.Now().UTC()
	note := models.Note{ID: "note-1", CreatedAt: now, ModifiedAt: now}

	first, err := svc.Push(ctx, "client-1", models.PushRequest{Notes: []models.Note{note}})
	require.NoError(t, err)
	require.Len(t, first.Accepted, 1)

	second, err := svc.Push(ctx, "client-1", models.PushRequest{Notes: []models.Note{note}})
	require.NoError(t, err)
	require.Len(t, second.Accepted, 1)
	assert.Empty(t, second.Rejected)
	assert.Equal(t, int64(1), second.Accepted[0].ServerVersion, "resend of an unchanged note must not bump the version")
}

func TestNoteSyncService_Push_RejectsStaleModifiedAt(t *testing.T) {
	notes := newFakeServerNoteRepository()
	svc := NewNoteSyncService(notes, newFakeServerAttachmentRepository())
	ctx := context.Background()

	base := time.Now().UTC()
	_, err := svc.Push(ctx, "client-1", models.PushRequest{
		Notes: []models.Note{{ID: "note-1", CreatedAt: base, ModifiedAt: base}},
	})
	require.NoError(t, err)

	// A second device's push whose edit timestamp precedes the server's
	// already-recorded ServerModifiedAt must be rejected, not silently
	// overwritten.
	stale := base.Add(-time.Hour)
	resp, err := svc.Push(ctx, "client-1", models.PushRequest{
		Notes: []models.Note{{ID: "note-1", CreatedAt: base, ModifiedAt: stale}},
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Accepted)
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, "note-1", resp.Rejected[0].ID)
	assert.Equal(t, reasonServerVersionNewer, resp.Rejected[0].Reason)
}

func TestNoteSyncService_Push_SavesAttachments(t *testing.T) {
	notes := newFakeServerNoteRepository()
	attachments := newFakeServerAttachmentRepository()
	svc := NewNoteSyncService(notes, attachments)

	payload, err := models.EncodeAttachmentPayload(models.AttachmentBlob{
		ID:             "att-1",
		NoteID:         "note-1",
		BlobCiphertext: []byte("ciphertext"),
		BlobIV:         "iv",
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	resp, err := svc.Push(context.Background(), "client-1", models.PushRequest{
		Notes:       []models.Note{{ID: "note-1", CreatedAt: now, ModifiedAt: now}},
		Attachments: []models.AttachmentPayload{payload},
	})

	require.NoError(t, err)
	require.Len(t, resp.Accepted, 1)
	saved, err := attachments.Get(context.Background(), "client-1", "att-1")
	require.NoError(t, err)
	assert.Equal(t, "note-1", saved.NoteID)
}

func TestNoteSyncService_Pull_SplitsLiveAndDeleted(t *testing.T) {
	notes := newFakeServerNoteRepository()
	now := time.Now().UTC()
	notes.notes["client-1/note-1"] = models.ServerNote{ClientID: "client-1", ID: "note-1", ServerModifiedAt: now}
	notes.notes["client-1/note-2"] = models.ServerNote{ClientID: "client-1", ID: "note-2", Deleted: true, ServerModifiedAt: now}

	svc := NewNoteSyncService(notes, newFakeServerAttachmentRepository())
	resp, err := svc.Pull(context.Background(), "client-1", models.PullRequest{})

	require.NoError(t, err)
	assert.Len(t, resp.Notes, 1)
	assert.Len(t, resp.Deletions, 1)
}

func TestNoteSyncService_Pull_IncludesAttachmentsForUnknownNotes(t *testing.T) {
	notes := newFakeServerNoteRepository()
	attachments := newFakeServerAttachmentRepository()
	now := time.Now().UTC()
	notes.notes["client-1/note-1"] = models.ServerNote{ClientID: "client-1", ID: "note-1", ServerModifiedAt: now}
	require.NoError(t, attachments.Save(context.Background(), "client-1", models.AttachmentBlob{ID: "att-1", NoteID: "note-1"}))

	svc := NewNoteSyncService(notes, attachments)
	resp, err := svc.Pull(context.Background(), "client-1", models.PullRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Attachments, 1)
	assert.Equal(t, "att-1", resp.Attachments[0].ID)

	// A peer that already knows about note-1 doesn't need its attachments
	// resent.
	resp2, err := svc.Pull(context.Background(), "client-1", models.PullRequest{KnownNoteIDs: []string{"note-1"}})
	require.NoError(t, err)
	assert.Empty(t, resp2.Attachments)
}

func TestNoteSyncService_Status_ReportsCount(t *testing.T) {
	notes := newFakeServerNoteRepository()
	notes.notes["client-1/note-1"] = models.ServerNote{ClientID: "client-1", ID: "note-1"}
	notes.notes["client-1/note-2"] = models.ServerNote{ClientID: "client-1", ID: "note-2"}

	svc := NewNoteSyncService(notes, newFakeServerAttachmentRepository())
	status, err := svc.Status(context.Background(), "client-1")

	require.NoError(t, err)
	assert.Equal(t, 2, status.NoteCount)
}

func TestNoteSyncService_Delete_NotFound(t *testing.T) {
	notes := newFakeServerNoteRepository()
	svc := NewNoteSyncService(notes, newFakeServerAttachmentRepository())

	err := svc.Delete(context.Background(), "client-1", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServerNoteNotFound)
}

func TestNoteSyncService_Delete_CascadesAttachments(t *testing.T) {
	notes := newFakeServerNoteRepository()
	attachments := newFakeServerAttachmentRepository()
	notes.notes["client-1/note-1"] = models.ServerNote{ClientID: "client-1", ID: "note-1"}
	require.NoError(t, attachments.Save(context.Background(), "client-1", models.AttachmentBlob{ID: "att-1", NoteID: "note-1"}))

	svc := NewNoteSyncService(notes, attachments)
	require.NoError(t, svc.Delete(context.Background(), "client-1", "note-1"))

	_, err := attachments.Get(context.Background(), "client-1", "att-1")
	assert.ErrorIs(t, err, store.ErrAttachmentNotFound)
	_, err = notes.Get(context.Background(), "client-1", "note-1")
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}
