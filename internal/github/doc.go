// Package github is a small client for the GitHub releases API. It resolves
// releases, picks the template archive for an agent/script pair, and
// downloads assets into memory so callers can validate content before any
// file is written.
package github
