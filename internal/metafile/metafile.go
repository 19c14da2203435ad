package metafile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mintprep/internal/fileutil"
	"mintprep/internal/logging"
)

// Result reports what one merge did to the target file.
type Result struct {
	Path       string
	Created    bool
	BackupPath string
}

// TargetPath maps an input filename to its metadata document path: the input
// extension is replaced by .json and the file lives under dir.
func TargetPath(dir, file string) string {
	stem := strings.TrimSuffix(file, filepath.Ext(file))
	if stem == "" {
		stem = file
	}
	return filepath.Join(dir, stem+".json")
}

// URI renders a CID as an ipfs:// reference.
func URI(cid string) string {
	return "ipfs://" + cid
}

// Template returns the skeleton metadata document used when no valid prior
// document exists for a token.
func Template(cid string, id int) map[string]any {
	return map[string]any{
		"image":         URI(cid),
		"animation_url": URI(cid),
		"name":          fmt.Sprintf("COLLECTION_NAME #%03d", id),
		"description":   "COLLECTION_DESCRIPTION",
		"attributes":    []any{},
		"properties":    map[string]any{},
	}
}

// Merge creates or updates the metadata document for one token.
//
// With overwrite unset and a valid JSON document already on disk, every field
// is preserved and only image, animation_url, and royalty_percentage are
// refreshed. When overwrite is forced, the file is missing, or the existing
// file fails to parse, a fresh template replaces it; any pre-existing file
// (parsable or not) is first copied aside to a .bak sibling.
func Merge(path, cid string, id, royalty int, overwrite bool, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	result := Result{Path: path}
	var doc map[string]any
	fromScratch := true

	data, readErr := os.ReadFile(path)
	exists := readErr == nil
	if readErr != nil && !errors.Is(readErr, fs.ErrNotExist) {
		return result, fmt.Errorf("read metadata %s: %w", path, readErr)
	}

	if !overwrite && exists {
		if err := json.Unmarshal(data, &doc); err != nil {
			logger.Warn("invalid metadata document, regenerating from template",
				logging.String("path", path),
				logging.Int("token_id", id),
				logging.Error(err))
		} else {
			fromScratch = false
		}
	}

	if fromScratch {
		if exists {
			backup, err := fileutil.BackupSibling(path)
			if err != nil {
				return result, err
			}
			result.BackupPath = backup
		}
		doc = Template(cid, id)
		result.Created = true
	}

	doc["image"] = URI(cid)
	doc["animation_url"] = URI(cid)
	doc["royalty_percentage"] = royalty

	encoded, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return result, fmt.Errorf("encode metadata %s: %w", path, err)
	}
	if err := fileutil.WriteFileAtomic(path, encoded, 0o644); err != nil {
		return result, fmt.Errorf("write metadata %s: %w", path, err)
	}
	return result, nil
}
