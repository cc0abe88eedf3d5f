// Package scaffold resolves where a project is initialized and writes a
// loaded template into it. It guards non-empty targets, creates the
// directory only when writing starts, and reports which files landed and
// which did not.
package scaffold
