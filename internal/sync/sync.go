package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauern/agentsync/internal/content"
	"github.com/klauern/agentsync/internal/logging"
)

// Sync writes every enabled destination so that it holds the expected
// content. Existing destinations that differ are overwritten and reported
// with StatusWarning; nothing is ever deleted.
func (s *Syncer) Sync(ctx context.Context, opts Options) (*Result, error) {
	log := logging.WithContext(ctx)

	return s.run(ctx, ModeSync, opts, func(it item, want string) (Record, error) {
		got, exists, err := readTarget(it.context.TargetPath)
		if err != nil {
			return Record{}, err
		}

		switch {
		case !exists:
			if err := writeTarget(it.context.TargetPath, want); err != nil {
				return Record{}, err
			}
			log.Info("created", logging.Path(it.context.TargetRelative))
			return newRecord(it, StatusCreated, ""), nil

		case content.Equal(want, got):
			return newRecord(it, StatusUnchanged, ""), nil

		default:
			rec, err := diffRecord(newRecord(it, StatusWarning, DetailOverwritten), opts, want, got)
			if err != nil {
				return Record{}, err
			}
			if err := writeTarget(it.context.TargetPath, want); err != nil {
				return Record{}, err
			}
			log.Warn("overwrote local modifications", logging.Path(it.context.TargetRelative))
			return rec, nil
		}
	})
}

// writeTarget writes data to path, creating parent directories.
func writeTarget(path, data string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	// #nosec G306 - destination files are shared, checked-in documents
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
