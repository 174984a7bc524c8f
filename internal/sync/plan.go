package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/klauern/agentsync/internal/config"
	"github.com/klauern/agentsync/internal/content"
	"github.com/klauern/agentsync/internal/glob"
	"github.com/klauern/agentsync/internal/logging"
	"github.com/klauern/agentsync/internal/pathmap"
	"github.com/klauern/agentsync/internal/transform"
)

// Options narrows a run.
type Options struct {
	// Targets restricts the run to these target keys. Empty means all.
	Targets []string

	// Progress, when set, is called after each record is classified.
	Progress ProgressFunc

	// Diff attaches a unified diff to warning and drift records.
	Diff bool
}

// ProgressFunc receives each record with the number of pairs done so far and
// the total number of pairs in the run.
type ProgressFunc func(rec Record, done, total int)

// Syncer runs sync and check passes for one configuration.
type Syncer struct {
	cfg         *config.Config
	mapper      pathmap.Mapper
	packageRoot string
	pipelines   []transform.Pipeline
}

// New validates cfg against registry and prepares a Syncer rooted at repoRoot.
func New(cfg *config.Config, repoRoot string, registry *transform.Registry) (*Syncer, error) {
	if err := cfg.Validate(registry); err != nil {
		return nil, err
	}

	packageRoot, skillsRoot := cfg.Roots(repoRoot)
	mapper, err := pathmap.New(repoRoot, skillsRoot)
	if err != nil {
		return nil, err
	}

	pipelines := make([]transform.Pipeline, len(cfg.Sources))
	for i, group := range cfg.Sources {
		p, err := registry.Pipeline(cfg.GlobalTransforms, group.Transforms)
		if err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
		pipelines[i] = p
	}

	return &Syncer{
		cfg:         cfg,
		mapper:      mapper,
		packageRoot: packageRoot,
		pipelines:   pipelines,
	}, nil
}

// item is one (source file, target key) pair.
type item struct {
	group   int
	key     string
	context transform.Context
}

// plan resolves the traversal order. Groups whose patterns match nothing are
// logged and skipped.
func (s *Syncer) plan(ctx context.Context, opts Options) ([]item, error) {
	if err := s.checkFilter(opts.Targets); err != nil {
		return nil, err
	}
	log := logging.WithContext(ctx)

	var items []item
	for gi, group := range s.cfg.Sources {
		files, err := glob.Resolve(group.Patterns, s.packageRoot)
		if err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", gi, err)
		}
		if len(files) == 0 {
			log.Warn("no files matched patterns",
				logging.Group(gi),
				slog.String("patterns", strings.Join(group.Patterns, ", ")),
			)
			continue
		}
		log.Info("found source files",
			logging.Group(gi),
			logging.Count(len(files)),
			slog.String("patterns", strings.Join(group.Patterns, ", ")),
		)

		for _, pair := range group.Targets.Pairs() {
			if !pair.Spec.IsEnabled() {
				log.Info("skipping disabled target", logging.Group(gi), logging.Target(pair.Key))
				continue
			}
			if len(opts.Targets) > 0 && !slices.Contains(opts.Targets, pair.Key) {
				log.Debug("skipping filtered target", logging.Group(gi), logging.Target(pair.Key))
				continue
			}
			log.Info("processing target",
				logging.Group(gi),
				logging.Target(pair.Key),
				slog.String("label", pair.Spec.Label(pair.Key)),
				logging.Path(pair.Spec.Dir),
			)

			for _, file := range files {
				targetPath, err := s.mapper.Target(file, pair.Spec.Dir)
				if err != nil {
					return nil, fmt.Errorf("sources[%d].targets.%s: %w", gi, pair.Key, err)
				}
				items = append(items, item{
					group:   gi,
					key:     pair.Key,
					context: s.mapper.Context(file, targetPath, pair.Key),
				})
			}
		}
	}
	return items, nil
}

// checkFilter rejects target keys the configuration does not declare.
func (s *Syncer) checkFilter(keys []string) error {
	known := s.cfg.TargetKeys()
	for _, k := range keys {
		if !slices.Contains(known, k) {
			return fmt.Errorf("unknown target %q (known: %s)", k, strings.Join(known, ", "))
		}
	}
	return nil
}

// expected returns the transformed, normalized content for it.
func (s *Syncer) expected(it item) (string, error) {
	// #nosec G304 - source paths come from resolving configured patterns
	data, err := os.ReadFile(it.context.SourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to read source %s: %w", it.context.SourceRelative, err)
	}
	return s.pipelines[it.group].Apply(content.Normalize(string(data)), it.context)
}

// readTarget returns the normalized destination content and whether it exists.
func readTarget(path string) (string, bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to stat target %s: %w", path, err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("target %s is a directory", path)
	}
	// #nosec G304 - target paths are derived from configured target dirs
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to read target %s: %w", path, err)
	}
	return content.Normalize(string(data)), true, nil
}

// run visits every planned pair with classify and collects the records.
func (s *Syncer) run(ctx context.Context, mode Mode, opts Options, classify func(item, string) (Record, error)) (*Result, error) {
	defer logging.Timer(string(mode))()
	log := logging.WithContext(ctx)

	items, err := s.plan(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Mode: mode, Records: make([]Record, 0, len(items))}
	for i, it := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		want, err := s.expected(it)
		if err != nil {
			return nil, err
		}

		rec, err := classify(it, want)
		if err != nil {
			return nil, err
		}

		log.Debug("classified",
			logging.Operation(string(mode)),
			logging.Source(rec.SourceRelative),
			logging.Target(rec.TargetKey),
			logging.Path(rec.TargetRelative),
			logging.Status(string(rec.Status)),
		)
		result.Records = append(result.Records, rec)
		if opts.Progress != nil {
			opts.Progress(rec, i+1, len(items))
		}
	}
	return result, nil
}

// diffRecord attaches the destination-to-expected diff to rec when asked.
func diffRecord(rec Record, opts Options, want, got string) (Record, error) {
	if !opts.Diff {
		return rec, nil
	}
	d, err := content.Diff(want, got, rec.TargetRelative, rec.SourceRelative+" (expected)")
	if err != nil {
		return Record{}, fmt.Errorf("failed to diff %s: %w", rec.TargetRelative, err)
	}
	rec.Diff = d
	return rec, nil
}

func newRecord(it item, status Status, detail string) Record {
	return Record{
		SourceRelative: it.context.SourceRelative,
		TargetRelative: it.context.TargetRelative,
		TargetKey:      it.key,
		Status:         status,
		Detail:         detail,
	}
}
