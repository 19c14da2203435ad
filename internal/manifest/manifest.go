// Package manifest writes the ID to CID list consumed by the downstream
// minting process.
package manifest

import (
	"encoding/json"
	"fmt"

	"mintprep/internal/fileutil"
	"mintprep/internal/tokenid"
)

// Record is one manifest row.
type Record struct {
	ID  int    `json:"ID"`
	CID string `json:"CID"`
}

// Build pairs sorted entries with their CIDs. The two slices must be aligned.
func Build(entries []tokenid.Entry, cids []string) ([]Record, error) {
	if len(entries) != len(cids) {
		return nil, fmt.Errorf("entry/cid count mismatch: %d vs %d", len(entries), len(cids))
	}
	records := make([]Record, len(entries))
	for i, entry := range entries {
		records[i] = Record{ID: entry.ID, CID: cids[i]}
	}
	return records, nil
}

// Write persists the manifest atomically, fully replacing any prior file.
func Write(path string, records []Record) error {
	encoded, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}
