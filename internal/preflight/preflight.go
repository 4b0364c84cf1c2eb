package preflight

import (
	"path/filepath"

	"langengine/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("State directory", cfg.Paths.StateDir)}

	if cfg.Store.Backend != config.BackendMemory && cfg.Store.Path != "" {
		storeDir := filepath.Dir(cfg.Store.Path)
		if storeDir != cfg.Paths.StateDir {
			results = append(results, CheckDirectoryAccess("Store directory", storeDir))
		}
	}

	return results
}

// Failed returns the subset of results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
