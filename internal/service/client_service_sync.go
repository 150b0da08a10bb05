// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/seesee/jottery/internal/adapter"
	"github.com/seesee/jottery/internal/store"
	"github.com/seesee/jottery/models"
)

type clientSyncService struct {
	repos   *store.Repositories
	adapter adapter.ServerAdapter

	mu         sync.Mutex
	inProgress bool
}

// NewClientSyncService constructs a ClientSyncService over the local
// repositories and the given server transport.
func NewClientSyncService(repos *store.Repositories, serverAdapter adapter.ServerAdapter) ClientSyncService {
	return &clientSyncService{repos: repos, adapter: serverAdapter}
}

// FullSync implements ClientSyncService. It is serialized by a single
// in-flight flag: a concurrent call while a round is already running
// returns ErrSyncInProgress rather than blocking.
func (s *clientSyncService) FullSync(ctx context.Context) error {
	s.mu.Lock()
	if s.inProgress {
		s.mu.Unlock()
		return ErrSyncInProgress
	}
	s.inProgress = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inProgress = false
		s.mu.Unlock()
	}()

	global, err := s.repos.Sync.GetGlobal(ctx)
	if err != nil {
		return fmt.Errorf("service: load sync metadata: %w", err)
	}
	if !global.SyncEnabled {
		return ErrSyncDisabled
	}
	if global.APIKey.Kind == models.APIKeyAbsent {
		return ErrNotRegistered
	}

	plan, err := s.buildPlan(ctx, global)
	if err != nil {
		return fmt.Errorf("service: build sync plan: %w", err)
	}

	return s.ExecutePlan(ctx, plan)
}

func (s *clientSyncService) buildPlan(ctx context.Context, global models.GlobalSyncMeta) (models.SyncPlan, error) {
	pending, err := s.repos.Sync.ListPending(ctx)
	if err != nil {
		return models.SyncPlan{}, fmt.Errorf("list pending sync meta: %w", err)
	}

	toPush := make([]models.Note, 0, len(pending))
	for _, meta := range pending {
		note, err := s.repos.Notes.Get(ctx, meta.NoteID)
		if err != nil {
			continue // purged locally since being marked pending
		}
		toPush = append(toPush, note)
	}

	allNotes, err := s.repos.Notes.List(ctx, true)
	if err != nil {
		return models.SyncPlan{}, fmt.Errorf("list all notes: %w", err)
	}
	knownIDs := make([]string, 0, len(allNotes))
	for _, n := range allNotes {
		knownIDs = append(knownIDs, n.ID)
	}

	return models.SyncPlan{ToPush: toPush, LastSyncAt: global.LastSyncAt, KnownNoteIDs: knownIDs}, nil
}

// ExecutePlan implements ClientSyncService: push plan.ToPush, then pull
// everything modified since plan.LastSyncAt and merge with last-write-wins
// on ModifiedAt (ties favor the local copy).
func (s *clientSyncService) ExecutePlan(ctx context.Context, plan models.SyncPlan) error {
	if err := s.push(ctx, plan.ToPush); err != nil {
		return fmt.Errorf("push phase: %w", err)
	}

	syncedAt, err := s.pull(ctx, plan.LastSyncAt, plan.KnownNoteIDs)
	if err != nil {
		return fmt.Errorf("pull phase: %w", err)
	}

	global, err := s.repos.Sync.GetGlobal(ctx)
	if err != nil {
		return fmt.Errorf("reload sync metadata: %w", err)
	}
	global.LastSyncAt = &syncedAt
	now := time.Now().UTC()
	global.LastPushAttemptAt = &now
	global.LastPullAttemptAt = &now
	if err := s.repos.Sync.SaveGlobal(ctx, global); err != nil {
		return fmt.Errorf("save sync metadata: %w", err)
	}

	return nil
}

func (s *clientSyncService) push(ctx context.Context, notes []models.Note) error {
	if len(notes) == 0 {
		return nil
	}

	payloads, err := s.collectAttachmentPayloads(ctx, notes)
	if err != nil {
		return fmt.Errorf("collect attachment payloads: %w", err)
	}

	resp, err := s.adapter.Push(ctx, models.PushRequest{Notes: notes, Attachments: payloads})
	if err != nil {
		for _, note := range notes {
			if markErr := s.markNoteError(ctx, note.ID, err.Error()); markErr != nil {
				return fmt.Errorf("mark note %s error after push failure: %w", note.ID, markErr)
			}
		}
		return err
	}

	for _, accepted := range resp.Accepted {
		meta, err := s.repos.Sync.GetNote(ctx, accepted.ID)
		if err != nil {
			meta = models.NoteSyncMeta{NoteID: accepted.ID}
		}
		meta.Status = models.StatusSynced
		meta.LastSyncedAt = &accepted.SyncedAt
		meta.ServerVersionAtSync = accepted.ServerVersion
		meta.ErrorMessage = nil
		if err := s.repos.Sync.SaveNote(ctx, meta); err != nil {
			return fmt.Errorf("save accepted sync meta for %s: %w", accepted.ID, err)
		}
	}

	for _, rejected := range resp.Rejected {
		meta, err := s.repos.Sync.GetNote(ctx, rejected.ID)
		if err != nil {
			meta = models.NoteSyncMeta{NoteID: rejected.ID}
		}
		meta.Status = models.StatusConflict
		reason := rejected.Reason
		meta.ErrorMessage = &reason
		if err := s.repos.Sync.SaveNote(ctx, meta); err != nil {
			return fmt.Errorf("save rejected sync meta for %s: %w", rejected.ID, err)
		}
	}

	for _, errLine := range resp.Errors {
		noteID, reason := splitNoteError(errLine)
		if noteID == "" {
			continue
		}
		if err := s.markNoteError(ctx, noteID, reason); err != nil {
			return fmt.Errorf("mark note %s error from server: %w", noteID, err)
		}
	}

	return nil
}

// collectAttachmentPayloads gathers every attachment blob referenced by
// notes, deduplicated within the batch by BlobHandle. A referenced blob the
// local store no longer has (e.g. it was trimmed locally) is left out of the
// payloads rather than failing the whole push; its note is still pushed.
func (s *clientSyncService) collectAttachmentPayloads(ctx context.Context, notes []models.Note) ([]models.AttachmentPayload, error) {
	seen := make(map[string]struct{})
	var payloads []models.AttachmentPayload

	for _, note := range notes {
		for _, ref := range note.Attachments {
			if _, ok := seen[ref.BlobHandle]; ok {
				continue
			}
			blob, err := s.repos.Attachments.Get(ctx, ref.BlobHandle)
			if err != nil {
				if errors.Is(err, store.ErrAttachmentNotFound) {
					continue
				}
				return nil, fmt.Errorf("load attachment %s: %w", ref.BlobHandle, err)
			}
			payload, err := models.EncodeAttachmentPayload(blob)
			if err != nil {
				return nil, fmt.Errorf("encode attachment %s: %w", ref.BlobHandle, err)
			}
			seen[ref.BlobHandle] = struct{}{}
			payloads = append(payloads, payload)
		}
	}

	return payloads, nil
}

func (s *clientSyncService) markNoteError(ctx context.Context, noteID, reason string) error {
	meta, err := s.repos.Sync.GetNote(ctx, noteID)
	if err != nil {
		meta = models.NoteSyncMeta{NoteID: noteID}
	}
	meta.Status = models.StatusError
	meta.ErrorMessage = &reason
	return s.repos.Sync.SaveNote(ctx, meta)
}

// splitNoteError parses a "<id>: reason" server error line.
func splitNoteError(line string) (id, reason string) {
	idx := strings.Index(line, ": ")
	if idx < 0 {
		return "", line
	}
	return line[:idx], line[idx+2:]
}

func (s *clientSyncService) pull(ctx context.Context, lastSyncAt *time.Time, knownIDs []string) (time.Time, error) {
	resp, err := s.adapter.Pull(ctx, models.PullRequest{LastSyncAt: lastSyncAt, KnownNoteIDs: knownIDs})
	if err != nil {
		return time.Time{}, err
	}

	for _, payload := range resp.Attachments {
		if err := s.saveRemoteAttachment(ctx, payload); err != nil {
			return time.Time{}, fmt.Errorf("merge remote attachment %s: %w", payload.ID, err)
		}
	}

	for _, remote := range resp.Notes {
		if err := s.mergeRemoteNote(ctx, remote); err != nil {
			return time.Time{}, fmt.Errorf("merge remote note %s: %w", remote.ID, err)
		}
	}

	for _, deletion := range resp.Deletions {
		if err := s.mergeRemoteDeletion(ctx, deletion); err != nil {
			return time.Time{}, fmt.Errorf("merge remote deletion %s: %w", deletion.ID, err)
		}
	}

	return resp.SyncedAt, nil
}

// saveRemoteAttachment stores a pulled attachment blob, skipping it if
// already present: the client-side AttachmentRepository.Save is a plain
// INSERT rather than an upsert, so re-saving an already-stored blob would
// fail on the unique constraint.
func (s *clientSyncService) saveRemoteAttachment(ctx context.Context, payload models.AttachmentPayload) error {
	if _, err := s.repos.Attachments.Get(ctx, payload.ID); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrAttachmentNotFound) {
		return err
	}

	blob, err := models.DecodeAttachmentPayload(payload)
	if err != nil {
		return err
	}
	return s.repos.Attachments.Save(ctx, blob.NoteID, blob)
}

// mergeRemoteNote applies last-write-wins: the remote note replaces the
// local one only if it is strictly newer. A tie keeps the local copy.
func (s *clientSyncService) mergeRemoteNote(ctx context.Context, remote models.ServerNote) error {
	local, err := s.repos.Notes.Get(ctx, remote.ID)
	if err != nil {
		note := serverNoteToNote(remote)
		if err := s.repos.Notes.Create(ctx, note); err != nil {
			return err
		}
		return s.markSynced(ctx, remote)
	}

	if !remote.ModifiedAt.After(local.ModifiedAt) {
		return nil
	}

	note := serverNoteToNote(remote)
	if err := s.repos.Notes.Update(ctx, note); err != nil {
		return err
	}
	return s.markSynced(ctx, remote)
}

func (s *clientSyncService) mergeRemoteDeletion(ctx context.Context, deletion models.PullDeletion) error {
	local, err := s.repos.Notes.Get(ctx, deletion.ID)
	if err != nil {
		return nil // already gone locally
	}
	if local.Deleted || local.ModifiedAt.After(deletion.DeletedAt) {
		return nil
	}
	return s.repos.Notes.SoftDelete(ctx, deletion.ID, deletion.DeletedAt, deletion.DeletedAt)
}

func (s *clientSyncService) markSynced(ctx context.Context, remote models.ServerNote) error {
	meta, err := s.repos.Sync.GetNote(ctx, remote.ID)
	if err != nil {
		meta = models.NoteSyncMeta{NoteID: remote.ID}
	}
	meta.Status = models.StatusSynced
	meta.ServerVersionAtSync = remote.ServerVersion
	meta.LastSyncedAt = &remote.ServerModifiedAt
	meta.ErrorMessage = nil
	return s.repos.Sync.SaveNote(ctx, meta)
}

func serverNoteToNote(remote models.ServerNote) models.Note {
	return models.Note{
		ID:             remote.ID,
		CreatedAt:      remote.CreatedAt,
		ModifiedAt:     remote.ModifiedAt,
		Content:        remote.Content,
		Tags:           remote.Tags,
		Attachments:    remote.Attachments,
		Pinned:         remote.Pinned,
		Deleted:        remote.Deleted,
		DeletedAt:      remote.DeletedAt,
		ContentHash:    remote.ContentHash,
		WordWrap:       remote.WordWrap,
		SyntaxLanguage: remote.SyntaxLanguage,
		Version:        remote.ServerVersion,
	}
}
