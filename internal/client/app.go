// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/seesee/jottery/internal/adapter"
	"github.com/seesee/jottery/internal/config"
	"github.com/seesee/jottery/internal/crypto"
	"github.com/seesee/jottery/internal/logger"
	"github.com/seesee/jottery/internal/service"
	"github.com/seesee/jottery/internal/store"
	"github.com/seesee/jottery/internal/workers"
	"github.com/seesee/jottery/models"
)

// App is the concrete, non-interactive client runtime. It exercises the
// core client surface — local encrypted note CRUD, device registration,
// credential export/import, and sync — through a small set of one-shot
// subcommands plus a long-running "daemon" mode, rather than a full
// terminal UI.
type App struct {
	cfg        *config.ClientConfig
	logger     *logger.Logger
	db         *store.DB
	repos      *store.Repositories
	keyManager *crypto.KeyManager
	adapter    adapter.ServerAdapter
	services   *service.ClientServices
}

// NewApp opens the local store and wires the client-side service
// container from cfg.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	db, err := store.Open(ctx, cfg.Storage.DB.DSN, log)
	if err != nil {
		return nil, fmt.Errorf("client: open local store: %w", err)
	}

	repos := store.NewRepositories(db)
	keyManager := crypto.NewKeyManager()

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter.HTTPAddress, cfg.Adapter.RequestTimeout, log)
	if err != nil {
		return nil, fmt.Errorf("client: create server adapter: %w", err)
	}

	services := service.NewClientServices(repos, keyManager, serverAdapter, log)

	return &App{
		cfg:        cfg,
		logger:     log,
		db:         db,
		repos:      repos,
		keyManager: keyManager,
		adapter:    serverAdapter,
		services:   services,
	}, nil
}

// Run dispatches args (normally os.Args[1:]) to the matching subcommand.
//
// Subcommands:
//
//	init <password>                                   create a new store
//	unlock <password>                                  unlock an existing store
//	register <endpoint> <deviceName> <deviceType> <password>
//	import <base64Export> <password>                  seed from another device
//	export <password>                                  print a pairing credential
//	add <password> <content> [tag,tag,...]
//	list <password>
//	attach <password> <noteId> <filePath>              attach a local file to a note
//	sync <password>
//	daemon <password>                                  run sync + purge until signalled
func (a *App) Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("client: no subcommand given; usage: jottery-client <init|unlock|register|import|export|add|list|attach|sync|daemon> ...")
	}

	ctx := context.Background()
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "init":
		return a.cmdInit(ctx, rest)
	case "unlock":
		return a.cmdUnlock(ctx, rest)
	case "register":
		return a.cmdRegister(ctx, rest)
	case "import":
		return a.cmdImport(ctx, rest)
	case "export":
		return a.cmdExport(ctx, rest)
	case "add":
		return a.cmdAdd(ctx, rest)
	case "list":
		return a.cmdList(ctx, rest)
	case "attach":
		return a.cmdAttach(ctx, rest)
	case "sync":
		return a.cmdSync(ctx, rest)
	case "daemon":
		return a.cmdDaemon(ctx, rest)
	default:
		return fmt.Errorf("client: unknown subcommand %q", cmd)
	}
}

func (a *App) cmdInit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: init <password>")
	}

	meta, err := a.keyManager.Initialize(args[0])
	if err != nil {
		return fmt.Errorf("client: initialize store: %w", err)
	}
	if err := a.repos.EncryptionMeta.Save(ctx, meta); err != nil {
		return fmt.Errorf("client: persist encryption metadata: %w", err)
	}

	fmt.Println("store initialized and unlocked")
	return nil
}

func (a *App) cmdUnlock(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: unlock <password>")
	}
	return a.unlock(ctx, args[0])
}

// unlock restores persisted encryption metadata (if not already restored)
// and unlocks the key manager, verifying the password against an existing
// note's content when the store already holds notes.
func (a *App) unlock(ctx context.Context, password string) error {
	if a.keyManager.State() == crypto.StateUninitialized {
		meta, err := a.repos.EncryptionMeta.Get(ctx)
		if err != nil {
			return fmt.Errorf("client: load encryption metadata: %w", err)
		}
		a.keyManager.Restore(meta)
	}

	verify, err := a.buildVerifyFunc(ctx)
	if err != nil {
		return err
	}

	if err := a.keyManager.Unlock(password, verify); err != nil {
		return fmt.Errorf("client: unlock: %w", err)
	}

	a.keyManager.SetAutoLockTimeout(a.cfg.Workers.AutoLockTimeout, func() {
		a.logger.Info().Msg("client: auto-locked after inactivity")
	})

	return nil
}

// buildVerifyFunc returns a VerifyFunc that attempts to decrypt an
// arbitrary existing note's content. A store with no notes yet has
// nothing to verify against, so it returns a VerifyFunc that always
// succeeds.
func (a *App) buildVerifyFunc(ctx context.Context) (crypto.VerifyFunc, error) {
	notes, err := a.repos.Notes.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("client: list notes for unlock verification: %w", err)
	}
	if len(notes) == 0 {
		return func([]byte) error { return nil }, nil
	}

	sample := notes[0].Content
	return func(candidateKey []byte) error {
		_, err := crypto.Open(candidateKey, sample)
		return err
	}, nil
}

func (a *App) cmdRegister(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: register <endpoint> <deviceName> <deviceType> <password>")
	}
	endpoint, deviceName, deviceType, password := args[0], args[1], args[2], args[3]

	if err := a.unlockOrInitialize(ctx, password); err != nil {
		return err
	}

	export, err := a.services.PairingService.Register(ctx, endpoint, deviceName, deviceType)
	if err != nil {
		return fmt.Errorf("client: register: %w", err)
	}

	return printCredentialExport(export)
}

// unlockOrInitialize unlocks an existing store, or initializes a brand-new
// one if no encryption metadata has ever been written.
func (a *App) unlockOrInitialize(ctx context.Context, password string) error {
	if _, err := a.repos.EncryptionMeta.Get(ctx); errors.Is(err, store.ErrEncryptionMetadataNotFound) {
		return a.cmdInit(ctx, []string{password})
	} else if err != nil {
		return fmt.Errorf("client: load encryption metadata: %w", err)
	}
	return a.unlock(ctx, password)
}

func (a *App) cmdImport(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: import <base64Export> <password>")
	}

	raw, err := base64.StdEncoding.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("client: decode credential export: %w", err)
	}

	var export models.CredentialExport
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&export); err != nil {
		return fmt.Errorf("client: parse credential export: %w", err)
	}

	if err := a.services.PairingService.ImportCredential(ctx, export, args[1]); err != nil {
		return fmt.Errorf("client: import credential: %w", err)
	}

	fmt.Println("credential imported; store unlocked and paired")
	return nil
}

func (a *App) cmdExport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: export <password>")
	}
	if err := a.unlock(ctx, args[0]); err != nil {
		return err
	}

	export, err := a.services.PairingService.ExportCredential(ctx)
	if err != nil {
		return fmt.Errorf("client: export credential: %w", err)
	}

	return printCredentialExport(export)
}

func printCredentialExport(export models.CredentialExport) error {
	raw, err := json.Marshal(export)
	if err != nil {
		return fmt.Errorf("client: encode credential export: %w", err)
	}
	fmt.Println(base64.StdEncoding.EncodeToString(raw))
	return nil
}

func (a *App) cmdAdd(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: add <password> <content> [tags,comma,separated]")
	}
	if err := a.unlock(ctx, args[0]); err != nil {
		return err
	}

	content := args[1]
	var tags []string
	if len(args) > 2 {
		tags = strings.Split(args[2], ",")
	}

	note, err := a.services.NoteService.Create(ctx, content, tags)
	if err != nil {
		return fmt.Errorf("client: create note: %w", err)
	}

	fmt.Printf("created note %s\n", note.ID)
	return nil
}

func (a *App) cmdList(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: list <password>")
	}
	if err := a.unlock(ctx, args[0]); err != nil {
		return err
	}

	notes, err := a.services.NoteService.List(ctx, false, models.SortRecent)
	if err != nil {
		return fmt.Errorf("client: list notes: %w", err)
	}

	for _, n := range notes {
		fmt.Printf("%s\t%s\t%s\n", n.ID, n.ModifiedAt.Format(time.RFC3339), firstLine(n.Content))
	}
	return nil
}

func firstLine(content string) string {
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		return content[:i]
	}
	return content
}

func (a *App) cmdAttach(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: attach <password> <noteId> <filePath>")
	}
	if err := a.unlock(ctx, args[0]); err != nil {
		return err
	}

	noteID, path := args[1], args[2]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("client: read attachment file: %w", err)
	}

	note, err := a.services.NoteService.AddAttachment(ctx, noteID, filepath.Base(path), http.DetectContentType(data), data, nil)
	if err != nil {
		return fmt.Errorf("client: attach file: %w", err)
	}

	fmt.Printf("attached %s to note %s (%d attachments)\n", filepath.Base(path), note.ID, len(note.Attachments))
	return nil
}

func (a *App) cmdSync(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: sync <password>")
	}
	if err := a.unlock(ctx, args[0]); err != nil {
		return err
	}

	if err := a.services.SyncService.FullSync(ctx); err != nil {
		return fmt.Errorf("client: sync: %w", err)
	}

	fmt.Println("sync complete")
	return nil
}

// cmdDaemon unlocks the store and then blocks, running the background
// auto-sync ticker and the soft-deleted-note purge sweep until the
// process receives SIGINT or SIGTERM.
func (a *App) cmdDaemon(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: daemon <password>")
	}
	if err := a.unlock(ctx, args[0]); err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.services.SyncJob.Start(sigCtx, a.cfg.Workers.SyncInterval)
	defer a.services.SyncJob.Stop()

	purge := workers.NewPurgeWorker(a.services.NoteService.PurgeOld, a.cfg.Workers.PurgeInterval, 30*24*time.Hour, a.logger)
	purge.Run()

	a.logger.Info().Msg("client: daemon running, waiting for shutdown signal")
	<-sigCtx.Done()
	a.logger.Info().Msg("client: daemon shutting down")

	return nil
}

// Close releases the underlying local database connection.
func (a *App) Close() error {
	if a.db == nil || a.db.DB == nil {
		return nil
	}
	return a.db.Close()
}
