// Package config manages user-level settings stored in the platform config
// directory (for example ~/.config/quynhluu/config.yaml). Settings are read
// once at startup into an immutable Settings value; the config command uses
// Get and Set to inspect and persist single keys.
package config
