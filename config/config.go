// Package config loads engine options from a JSONC file, tolerating
// comments and trailing commas the way the rest of the corpus's tooling
// configs do. Missing fields fall back to the engine's compiled-in
// defaults rather than zero values.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	lsm "github.com/lsmkv/lsmcore"
)

var errTargetSSTSizeNotPositive = errors.New("config: target_sst_size_bytes must be positive")

// File is the on-disk shape of an options file. Fields are pointers so a
// field absent from the file is distinguishable from one explicitly set to
// its zero value.
type File struct {
	TargetSSTSizeBytes *uint64 `json:"target_sst_size_bytes,omitempty"`
	NumMemtableLimit   *int    `json:"num_memtable_limit,omitempty"`
}

// Load reads a JSONC options file at path and overlays it onto
// lsm.DefaultOptions. A missing file is not an error: Load returns the
// defaults unchanged.
func Load(path string) (lsm.Options, error) {
	opts := lsm.DefaultOptions()

	data, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled, not request-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return lsm.Options{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data, opts)
}

// Parse standardizes JSONC into JSON, unmarshals it onto base, and
// validates the result.
func Parse(data []byte, base lsm.Options) (lsm.Options, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return lsm.Options{}, fmt.Errorf("config: invalid JSONC: %w", err)
	}

	var f File
	if err := json.Unmarshal(standardized, &f); err != nil {
		return lsm.Options{}, fmt.Errorf("config: invalid JSON: %w", err)
	}

	opts := base
	if f.TargetSSTSizeBytes != nil {
		opts.TargetSSTSize = *f.TargetSSTSizeBytes
	}
	if f.NumMemtableLimit != nil {
		opts.NumMemtableLimit = *f.NumMemtableLimit
	}

	if err := validate(opts); err != nil {
		return lsm.Options{}, err
	}
	return opts, nil
}

func validate(opts lsm.Options) error {
	if opts.TargetSSTSize == 0 {
		return errTargetSSTSizeNotPositive
	}
	return nil
}
