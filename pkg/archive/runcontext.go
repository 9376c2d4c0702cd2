// Package archive persists fetched contract pages as an append-only
// evidence trail. Each successful fetch is stored under a deterministic
// archive id derived from the contract URL and access timestamp, so a
// verification verdict can be audited against the exact page it saw.
package archive

import (
	"os"
	"path/filepath"
	"time"

	"github.com/agentstation/fpdsverify/pkg/errors"
)

// TimestampLayout is the timestamp format used for run directories,
// archive ids, and accessed-at fields.
const TimestampLayout = "20060102_150405"

// RunContext carries the run timestamp and archive directory for one
// verification run. It is passed explicitly into components instead of
// being read from ambient state.
type RunContext struct {
	// Timestamp is the moment the run started.
	Timestamp time.Time

	// Dir is the archive directory for this run.
	Dir string
}

// NewRunContext derives a run context rooted at the given directory.
// The archive directory is fresh per run, so archive ids only collide
// for genuinely identical (URL, timestamp) pairs.
func NewRunContext(root string, at time.Time) RunContext {
	return RunContext{
		Timestamp: at,
		Dir:       filepath.Join(root, "verification_archive_"+at.Format(TimestampLayout)),
	}
}

// TimestampString returns the run timestamp in the canonical layout.
func (rc RunContext) TimestampString() string {
	return rc.Timestamp.Format(TimestampLayout)
}

// Ensure creates the archive directory. Reports are always written there,
// even for runs where every fetch fails and nothing is archived, so the
// directory has to exist regardless of what the run saves.
func (rc RunContext) Ensure() error {
	return errors.WrapIO("create", rc.Dir, os.MkdirAll(rc.Dir, 0o755))
}
