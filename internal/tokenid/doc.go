// Package tokenid derives numeric token IDs from input filenames: digit
// extraction, sentinel auto-assignment past the batch maximum, and the sorted
// pairing of IDs with files that the rest of the prepare pipeline relies on.
package tokenid
