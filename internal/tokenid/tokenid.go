package tokenid

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Entry pairs an input filename with its assigned token ID.
type Entry struct {
	ID   int
	Name string
}

// maxExtLen guards against stray OS sidecar files such as
// "art.json:ZoneIdentifier" whose "extension" is the whole trailer.
const maxExtLen = 5

// Discover lists basenames in dir matching pattern, skipping entries whose
// extension (dot included) is longer than five characters. The directory must
// exist.
func Discover(dir, pattern string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("input file/directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	names := make([]string, 0, len(matches))
	for _, match := range matches {
		if len(filepath.Ext(match)) > maxExtLen {
			continue
		}
		names = append(names, filepath.Base(match))
	}
	return names, nil
}

// ExtractID concatenates every digit character in name and parses the result.
// Names carrying no digits yield the sentinel value 0.
func ExtractID(name string) int {
	var digits strings.Builder
	for _, r := range name {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	id, err := strconv.Atoi(digits.String())
	if err != nil {
		// Digit runs long enough to overflow int do not occur in practice.
		return 0
	}
	return id
}

// Assign derives an ID for every filename and returns the entries sorted
// ascending by ID. Sentinel entries (no digits in the name) receive
// max(explicit IDs)+1+offset, counting offsets in encounter order among
// sentinels only, so assignments stay unique and stable. Duplicate explicit
// IDs are an error.
func Assign(files []string) ([]Entry, error) {
	entries := make([]Entry, len(files))
	maxID := 0
	for i, name := range files {
		id := ExtractID(name)
		entries[i] = Entry{ID: id, Name: name}
		if id > maxID {
			maxID = id
		}
	}

	sentinels := 0
	for i := range entries {
		if entries[i].ID == 0 {
			entries[i].ID = maxID + 1 + sentinels
			sentinels++
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	for i := 1; i < len(entries); i++ {
		if entries[i].ID == entries[i-1].ID {
			return nil, fmt.Errorf("duplicate token ID %d for %s and %s",
				entries[i].ID, entries[i-1].Name, entries[i].Name)
		}
	}
	return entries, nil
}
