// Package match implements the metadata-matching pipeline: it turns a
// normalized title/year/episode query into the best-matching catalog title.
//
// The engine orchestrates search (cache-first through the catalog client),
// weighted confidence scoring, year filtering, deterministic re-ranking, and
// a fallback chain for low-confidence results. "No match" is an ordinary
// value, not an error; data and parse failures below the engine are
// normalized into no-match so a bad file never crashes a batch.
package match
