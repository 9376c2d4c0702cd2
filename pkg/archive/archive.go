package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/agentstation/fpdsverify/pkg/errors"
)

// Entry is the persisted record of one fetch. Entries are created once
// per successful fetch and never updated or deleted.
type Entry struct {
	ArchiveID   string    `json:"archive_id"`
	OriginalURL string    `json:"original_url"`
	AccessedAt  time.Time `json:"accessed_at"`
	Path        string    `json:"path"`
}

// Writer stores fetched pages under a run's archive directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer for the run's archive directory.
func NewWriter(rc RunContext) *Writer {
	return &Writer{dir: rc.Dir}
}

// Dir returns the archive directory path.
func (w *Writer) Dir() string {
	return w.dir
}

// Store durably writes the page content under <archive_id>.html along with
// a JSON metadata sidecar, creating the archive directory if absent.
// Failures indicate an unrecoverable environment problem and propagate.
func (w *Writer) Store(content, archiveID, originalURL string, accessedAt time.Time) (Entry, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return Entry{}, errors.WrapIO("create", w.dir, err)
	}

	htmlPath := filepath.Join(w.dir, archiveID+".html")
	if err := os.WriteFile(htmlPath, []byte(content), 0o644); err != nil {
		return Entry{}, errors.WrapIO("write", htmlPath, err)
	}

	entry := Entry{
		ArchiveID:   archiveID,
		OriginalURL: originalURL,
		AccessedAt:  accessedAt,
		Path:        htmlPath,
	}

	metaPath := filepath.Join(w.dir, archiveID+".json")
	meta, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return Entry{}, errors.WrapIO("write", metaPath, err)
	}
	if err := os.WriteFile(metaPath, meta, 0o644); err != nil {
		return Entry{}, errors.WrapIO("write", metaPath, err)
	}

	return entry, nil
}
