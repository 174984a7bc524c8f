// Package sync propagates canonical source files into their destination
// directories and audits those destinations for drift.
//
// # Modes
//
// Both modes share one traversal: source groups in configuration order,
// each group's globs resolved to a sorted file set, then every enabled
// target in declaration order, then every file. For each (file, target)
// pair the expected content is the LF-normalized source passed through the
// global transforms and then the group transforms.
//
//   - Sync writes: a missing destination is created, an identical one is
//     left alone, a differing one is overwritten and reported as a warning.
//   - Check only reads: destinations are classified in_sync, drift or
//     missing, and the run fails when anything is not in_sync.
//
// Every pair yields exactly one Record. Classified outcomes are data; only
// I/O failures, transform errors and configuration errors are returned as
// errors, and those abort the whole run.
//
// # Usage
//
//	s, err := sync.New(cfg, repoRoot, transform.Default())
//	if err != nil {
//	    return err
//	}
//	result, err := s.Check(ctx, sync.Options{})
//	if err != nil {
//	    return err
//	}
//	if !result.OK() {
//	    // gate failure
//	}
//
// Sync is idempotent: a second run over an unchanged tree reports every
// pair unchanged. Destinations whose source disappeared are never deleted.
package sync
