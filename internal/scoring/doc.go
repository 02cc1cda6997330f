// Package scoring ranks message text for curation. Keyword tiers, weights,
// and length bonuses live in named Profile values so the short-note and
// long-note policies coexist instead of being merged, and so scoring
// changes are config-level edits rather than scattered literals.
package scoring
