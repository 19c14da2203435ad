// Package config loads, normalizes, and validates mintprep configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// IMAGES_CID and ROYALTY_PERCENTAGE. The Config type centralizes every knob
// the CLI needs, so trait data, output directories, and the external cid
// executable are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
