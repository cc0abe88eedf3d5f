// Package updater tells the user when a newer release of the CLI exists.
// "version --check" queries GitHub and records the answer in a small cache
// file; every other command prints a notice from that cache without touching
// the network. The CLI never replaces itself.
package updater
