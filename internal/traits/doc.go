// Package traits expands the trait definition table into per-token metadata
// documents: name, image URL, and the attribute/property pairs derived from
// the four configured layers.
package traits
