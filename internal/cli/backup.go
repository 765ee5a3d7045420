package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/freightdesk/internal/filex"
	"github.com/dmitrijs2005/freightdesk/internal/models"
	"github.com/google/uuid"
)

// Export writes a JSON snapshot of the whole database to path.
func (a *App) Export(ctx context.Context, path string) error {
	if err := a.checkSession(); err != nil {
		return err
	}

	snap, err := a.store.ExportAll(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if _, err := snap.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	tmp := "." + filepath.Base(path) + "." + uuid.NewString()
	if err := filex.WriteFileAtomic(path, tmp, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	a.log.Info(ctx, "backup exported", "path", path)
	a.printf("Backup written to %s\n", path)
	return nil
}

// Import replaces every table with the content of a snapshot file. The
// session ends, since the signed-in user may not exist afterwards.
func (a *App) Import(ctx context.Context, path string) error {
	if err := a.checkSession(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	snap, err := models.ReadSnapshot(f)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	ok, err := a.yesNo(fmt.Sprintf("Replace ALL data with the backup from %s?", snap.ExportedAt.Local().Format("2006-01-02 15:04")))
	if err != nil || !ok {
		return err
	}
	if err := a.store.ImportAll(ctx, snap); err != nil {
		return err
	}

	a.log.Info(ctx, "backup imported", "path", path)
	a.session = nil
	a.println("Backup restored, please log in again")
	return nil
}

// Reset wipes all stored data and starts over with the default account.
func (a *App) Reset(ctx context.Context) error {
	if err := a.checkSession(); err != nil {
		return err
	}

	last, err := a.store.LastBackupAt(ctx)
	if err != nil {
		return err
	}
	prompt := "Delete ALL data? No backup was ever exported."
	if last != nil {
		prompt = fmt.Sprintf("Delete ALL data? Last backup: %s.", last.Local().Format("2006-01-02 15:04"))
	}
	ok, err := a.yesNo(prompt)
	if err != nil || !ok {
		return err
	}

	if err := a.store.ClearAllData(ctx); err != nil {
		return err
	}
	if err := a.store.Initialize(ctx); err != nil {
		return err
	}

	a.session = nil
	a.println("All data deleted, please log in again")
	return nil
}
