// Package config loads, validates, and normalizes the TOML configuration
// that drives the serenade pipeline: corpus paths, curation thresholds,
// TTS provider credentials, transcode settings, and logging.
package config
