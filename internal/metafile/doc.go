// Package metafile maintains per-token metadata JSON documents: it creates
// them from a template, updates CID fields in place on valid documents, and
// backs up anything it destructively replaces.
package metafile
