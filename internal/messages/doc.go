// Package messages persists the imported text-message corpus in SQLite
// and answers the per-sender, per-year queries the curation stage needs.
// The legacy "0" no-text sentinel is normalized to NULL at import time and
// never escapes this package.
package messages
