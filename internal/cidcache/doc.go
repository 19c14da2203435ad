// Package cidcache stores computed content identifiers in SQLite keyed by
// file path, size, and modification time, so repeat prepare runs skip the
// external cid tool for files that have not changed.
package cidcache
