// Package notes defines the domain records shared across the curation,
// render, and manifest stages: raw messages, candidate rows, manifest
// entries, and the asset naming convention that joins curated rows to
// rendered audio files.
package notes
