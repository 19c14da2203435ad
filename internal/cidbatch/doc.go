// Package cidbatch runs CID computations for a batch of files with bounded
// parallelism while keeping results positionally aligned to the input list.
package cidbatch
