// Package cidtool shells out to the external cid executable that computes a
// content identifier from a file's bytes. The tool is treated as a black box:
// one invocation per file, CID string on stdout, nonzero exit on failure.
package cidtool
