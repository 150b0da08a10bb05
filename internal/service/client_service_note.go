// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/seesee/jottery/internal/crypto"
	"github.com/seesee/jottery/internal/store"
	"github.com/seesee/jottery/internal/utils"
	"github.com/seesee/jottery/models"
)

type clientNoteService struct {
	repos      *store.Repositories
	keyManager *crypto.KeyManager
	idGen      *utils.UUIDGenerator
}

// NewClientNoteService constructs a ClientNoteService over the local
// repositories, encrypting and decrypting under keyManager's current
// master key. Every call that encrypts or decrypts (Create, Get, List,
// Update, AddAttachment, TogglePin) requires keyManager to be unlocked;
// otherwise it fails with [crypto.ErrLocked]. SoftDelete, Restore,
// PermanentDelete, and PurgeOld do not use the key.
func NewClientNoteService(repos *store.Repositories, keyManager *crypto.KeyManager) ClientNoteService {
	return &clientNoteService{repos: repos, keyManager: keyManager, idGen: utils.NewUUIDGenerator()}
}

func (s *clientNoteService) Create(ctx context.Context, content string, tags []string) (models.DecryptedNote, error) {
	key, err := s.keyManager.GetMasterKey()
	if err != nil {
		return models.DecryptedNote{}, err
	}

	normalizedTags := normalizeTags(tags)

	contentEnv, err := crypto.SealString(key, content)
	if err != nil {
		return models.DecryptedNote{}, fmt.Errorf("service: encrypt content: %w", err)
	}
	tagsEnv, err := sealTags(key, normalizedTags)
	if err != nil {
		return models.DecryptedNote{}, err
	}

	now := time.Now().UTC()
	hash := crypto.ContentHash(content)

	note := models.Note{
		ID:          s.idGen.Generate(),
		CreatedAt:   now,
		ModifiedAt:  now,
		Content:     contentEnv,
		Tags:        tagsEnv,
		ContentHash: &hash,
		Version:     1,
	}

	if err := s.repos.Notes.Create(ctx, note); err != nil {
		return models.DecryptedNote{}, fmt.Errorf("service: create note: %w", err)
	}
	if err := s.markPending(ctx, note.ID); err != nil {
		return models.DecryptedNote{}, err
	}

	return s.decrypt(key, note, content, normalizedTags)
}

func (s *clientNoteService) Get(ctx context.Context, id string) (models.DecryptedNote, error) {
	key, err := s.keyManager.GetMasterKey()
	if err != nil {
		return models.DecryptedNote{}, err
	}

	note, err := s.repos.Notes.Get(ctx, id)
	if err != nil {
		return models.DecryptedNote{}, mapStoreNoteErr(err)
	}

	return s.decryptNote(key, note)
}

func (s *clientNoteService) List(ctx context.Context, includeDeleted bool, order models.SortOrder) ([]models.DecryptedNote, error) {
	key, err := s.keyManager.GetMasterKey()
	if err != nil {
		return nil, err
	}

	notes, err := s.repos.Notes.List(ctx, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("service: list notes: %w", err)
	}

	decrypted := make([]models.DecryptedNote, 0, len(notes))
	for _, n := range notes {
		d, err := s.decryptNote(key, n)
		if err != nil {
			return nil, err
		}
		decrypted = append(decrypted, d)
	}

	sortDecryptedNotes(decrypted, order)
	return decrypted, nil
}

func (s *clientNoteService) Update(ctx context.Context, id string, update models.NoteUpdate) (models.DecryptedNote, error) {
	key, err := s.keyManager.GetMasterKey()
	if err != nil {
		return models.DecryptedNote{}, err
	}

	note, err := s.repos.Notes.Get(ctx, id)
	if err != nil {
		return models.DecryptedNote{}, mapStoreNoteErr(err)
	}

	plainContent := ""
	if update.Content != nil {
		plainContent = *update.Content
		env, err := crypto.SealString(key, *update.Content)
		if err != nil {
			return models.DecryptedNote{}, fmt.Errorf("service: encrypt content: %w", err)
		}
		note.Content = env
		hash := crypto.ContentHash(*update.Content)
		note.ContentHash = &hash
	} else {
		pt, err := crypto.OpenString(key, note.Content)
		if err != nil {
			return models.DecryptedNote{}, err
		}
		plainContent = pt
	}

	plainTags := []string(nil)
	if update.Tags != nil {
		plainTags = normalizeTags(*update.Tags)
		env, err := sealTags(key, plainTags)
		if err != nil {
			return models.DecryptedNote{}, err
		}
		note.Tags = env
	} else {
		plainTags, err = openTags(key, note.Tags)
		if err != nil {
			return models.DecryptedNote{}, err
		}
	}

	if update.Attachments != nil {
		for _, removedID := range diffAttachmentIDs(note.Attachments, *update.Attachments) {
			if err := s.repos.Attachments.Delete(ctx, removedID); err != nil && !errors.Is(err, store.ErrAttachmentNotFound) {
				return models.DecryptedNote{}, fmt.Errorf("service: gc removed attachment %s: %w", removedID, err)
			}
		}
		note.Attachments = *update.Attachments
	}

	if update.Pinned != nil {
		note.Pinned = *update.Pinned
	}
	if update.WordWrap != nil {
		note.WordWrap = *update.WordWrap
	}
	if update.SyntaxLanguage != nil {
		note.SyntaxLanguage = *update.SyntaxLanguage
	}

	note.Version++
	note.ModifiedAt = time.Now().UTC()

	if err := s.repos.Notes.Update(ctx, note); err != nil {
		return models.DecryptedNote{}, fmt.Errorf("service: update note: %w", err)
	}
	if err := s.markPending(ctx, note.ID); err != nil {
		return models.DecryptedNote{}, err
	}

	return s.decrypt(key, note, plainContent, plainTags)
}

// diffAttachmentIDs returns the IDs present in old but not in updated — the
// set of attachments Update must garbage-collect.
func diffAttachmentIDs(old, updated []models.AttachmentRef) []string {
	keep := make(map[string]struct{}, len(updated))
	for _, ref := range updated {
		keep[ref.ID] = struct{}{}
	}
	var removed []string
	for _, ref := range old {
		if _, ok := keep[ref.ID]; !ok {
			removed = append(removed, ref.ID)
		}
	}
	return removed
}

// AddAttachment encrypts fileName, mimeType, and data (plus an optional
// pre-rendered thumbnail) under the master key, persists the blob, and
// appends a reference to the note.
func (s *clientNoteService) AddAttachment(ctx context.Context, noteID, fileName, mimeType string, data, thumbnail []byte) (models.DecryptedNote, error) {
	key, err := s.keyManager.GetMasterKey()
	if err != nil {
		return models.DecryptedNote{}, err
	}

	note, err := s.repos.Notes.Get(ctx, noteID)
	if err != nil {
		return models.DecryptedNote{}, mapStoreNoteErr(err)
	}

	nameEnv, err := crypto.SealString(key, fileName)
	if err != nil {
		return models.DecryptedNote{}, fmt.Errorf("service: encrypt attachment name: %w", err)
	}

	blobCiphertext, blobIV, err := sealBlob(key, data)
	if err != nil {
		return models.DecryptedNote{}, fmt.Errorf("service: encrypt attachment data: %w", err)
	}

	attID := s.idGen.Generate()
	blob := models.AttachmentBlob{
		ID:             attID,
		NoteID:         noteID,
		EncryptedName:  nameEnv,
		MimeType:       mimeType,
		Size:           int64(len(data)),
		BlobCiphertext: blobCiphertext,
		BlobIV:         blobIV,
	}

	ref := models.AttachmentRef{
		ID:            attID,
		EncryptedName: nameEnv,
		MimeType:      mimeType,
		Size:          int64(len(data)),
		BlobHandle:    attID,
	}

	if thumbnail != nil {
		thumbCiphertext, thumbIV, err := sealBlob(key, thumbnail)
		if err != nil {
			return models.DecryptedNote{}, fmt.Errorf("service: encrypt attachment thumbnail: %w", err)
		}
		blob.ThumbnailCiphertext = thumbCiphertext
		blob.ThumbnailIV = thumbIV
		handle := attID + "-thumb"
		ref.ThumbnailHandle = &handle
	}

	if err := s.repos.Attachments.Save(ctx, noteID, blob); err != nil {
		return models.DecryptedNote{}, fmt.Errorf("service: save attachment: %w", err)
	}

	note.Attachments = append(note.Attachments, ref)
	note.Version++
	note.ModifiedAt = time.Now().UTC()

	if err := s.repos.Notes.Update(ctx, note); err != nil {
		return models.DecryptedNote{}, fmt.Errorf("service: update note after attach: %w", err)
	}
	if err := s.markPending(ctx, note.ID); err != nil {
		return models.DecryptedNote{}, err
	}

	return s.decryptNote(key, note)
}

// sealBlob encrypts raw bytes under key, returning the ciphertext and a
// base64-standard-encoded IV — the raw-bytes-plus-string-IV shape
// [models.AttachmentBlob] stores its blob and thumbnail columns in, as
// opposed to the base64-both-fields shape [models.Envelope] uses for note
// content and tags.
func sealBlob(key, plaintext []byte) (ciphertext []byte, ivB64 string, err error) {
	env, err := crypto.Seal(key, plaintext)
	if err != nil {
		return nil, "", err
	}
	raw, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return nil, "", fmt.Errorf("service: decode sealed blob: %w", err)
	}
	return raw, env.IV, nil
}

func (s *clientNoteService) TogglePin(ctx context.Context, id string) (models.DecryptedNote, error) {
	key, err := s.keyManager.GetMasterKey()
	if err != nil {
		return models.DecryptedNote{}, err
	}

	note, err := s.repos.Notes.Get(ctx, id)
	if err != nil {
		return models.DecryptedNote{}, mapStoreNoteErr(err)
	}

	note.Pinned = !note.Pinned
	note.Version++
	note.ModifiedAt = time.Now().UTC()

	if err := s.repos.Notes.Update(ctx, note); err != nil {
		return models.DecryptedNote{}, fmt.Errorf("service: toggle pin: %w", err)
	}
	if err := s.markPending(ctx, note.ID); err != nil {
		return models.DecryptedNote{}, err
	}

	return s.decryptNote(key, note)
}

func (s *clientNoteService) SoftDelete(ctx context.Context, id string) error {
	now := time.Now().UTC()
	if err := s.repos.Notes.SoftDelete(ctx, id, now, now); err != nil {
		return mapStoreNoteErr(err)
	}
	return s.markPending(ctx, id)
}

func (s *clientNoteService) Restore(ctx context.Context, id string) error {
	now := time.Now().UTC()
	if err := s.repos.Notes.Restore(ctx, id, now); err != nil {
		return mapStoreNoteErr(err)
	}
	return s.markPending(ctx, id)
}

// PermanentDelete removes attachment blobs, then sync metadata, then the
// note row, matching the order attachments → sync meta → note required so
// a crash mid-delete never leaves an orphaned blob referencing a gone
// note.
func (s *clientNoteService) PermanentDelete(ctx context.Context, id string) error {
	note, err := s.repos.Notes.Get(ctx, id)
	if err != nil {
		return mapStoreNoteErr(err)
	}

	for _, ref := range note.Attachments {
		if err := s.repos.Attachments.Delete(ctx, ref.ID); err != nil {
			return fmt.Errorf("service: delete attachment %s: %w", ref.ID, err)
		}
	}
	if err := s.repos.Sync.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("service: delete sync meta for %s: %w", id, err)
	}
	if err := s.repos.Notes.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: delete note %s: %w", id, err)
	}
	return nil
}

func (s *clientNoteService) PurgeOld(ctx context.Context, cutoff time.Time) (int, error) {
	n, err := s.repos.Notes.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("service: purge old notes: %w", err)
	}
	return n, nil
}

func (s *clientNoteService) markPending(ctx context.Context, noteID string) error {
	meta, err := s.repos.Sync.GetNote(ctx, noteID)
	if err != nil {
		meta = models.NoteSyncMeta{NoteID: noteID}
	}
	meta.Status = models.StatusPending
	if err := s.repos.Sync.SaveNote(ctx, meta); err != nil {
		return fmt.Errorf("service: mark note %s pending: %w", noteID, err)
	}
	return nil
}

func (s *clientNoteService) decryptNote(key []byte, note models.Note) (models.DecryptedNote, error) {
	content, err := crypto.OpenString(key, note.Content)
	if err != nil {
		return models.DecryptedNote{}, &crypto.DecryptError{Field: "content"}
	}
	tags, err := openTags(key, note.Tags)
	if err != nil {
		return models.DecryptedNote{}, err
	}
	return s.decrypt(key, note, content, tags)
}

func (s *clientNoteService) decrypt(_ []byte, note models.Note, content string, tags []string) (models.DecryptedNote, error) {
	return models.DecryptedNote{
		Note:        note,
		Content:     content,
		Tags:        tags,
		DecryptedAt: time.Now().UTC(),
	}, nil
}

func sealTags(key []byte, tags []string) (models.Envelope, error) {
	raw, err := json.Marshal(tags)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("service: marshal tags: %w", err)
	}
	env, err := crypto.Seal(key, raw)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("service: encrypt tags: %w", err)
	}
	return env, nil
}

func openTags(key []byte, env models.Envelope) ([]string, error) {
	if env.Empty() {
		return nil, nil
	}
	raw, err := crypto.Open(key, env)
	if err != nil {
		return nil, &crypto.DecryptError{Field: "tags"}
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, fmt.Errorf("service: unmarshal tags: %w", err)
	}
	return tags, nil
}

// normalizeTags trims whitespace, drops empty entries, and de-duplicates
// case-insensitively while preserving the first occurrence's case and
// order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

func sortDecryptedNotes(notes []models.DecryptedNote, order models.SortOrder) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Pinned != notes[j].Pinned {
			return notes[i].Pinned
		}
		switch order {
		case models.SortOldest:
			return notes[i].ModifiedAt.Before(notes[j].ModifiedAt)
		case models.SortCreated:
			return notes[i].CreatedAt.After(notes[j].CreatedAt)
		case models.SortAlpha:
			return strings.ToLower(firstLine(notes[i].Content)) < strings.ToLower(firstLine(notes[j].Content))
		default: // models.SortRecent
			return notes[i].ModifiedAt.After(notes[j].ModifiedAt)
		}
	})
}

func firstLine(content string) string {
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		return content[:idx]
	}
	return content
}

func mapStoreNoteErr(err error) error {
	if errors.Is(err, store.ErrNoteNotFound) {
		return ErrNoteNotFound
	}
	return fmt.Errorf("service: %w", err)
}
