package sync

import (
	"context"

	"github.com/klauern/agentsync/internal/content"
)

// Check compares every enabled destination with its expected content
// without touching the filesystem. Use Result.OK to decide the gate.
func (s *Syncer) Check(ctx context.Context, opts Options) (*Result, error) {
	return s.run(ctx, ModeCheck, opts, func(it item, want string) (Record, error) {
		got, exists, err := readTarget(it.context.TargetPath)
		if err != nil {
			return Record{}, err
		}

		switch {
		case !exists:
			return newRecord(it, StatusMissing, DetailMissing), nil
		case content.Equal(want, got):
			return newRecord(it, StatusInSync, ""), nil
		default:
			return diffRecord(newRecord(it, StatusDrift, content.Describe(want, got)), opts, want, got)
		}
	})
}
