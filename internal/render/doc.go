// Package render drives audio generation for curated rows: it calls the
// TTS provider for each row whose distribution asset is missing, persists
// the raw audio, and transcodes it to the distribution format. Re-running
// a year performs no provider calls for rows whose asset already exists,
// and a per-year lock keeps two processes from rendering the same year.
package render
