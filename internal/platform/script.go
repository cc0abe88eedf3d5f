package platform

import "runtime"

// DefaultScript returns the helper-script flavor native to the running OS:
// "ps" (PowerShell) on Windows, "sh" everywhere else.
func DefaultScript() string {
	if runtime.GOOS == "windows" {
		return "ps"
	}
	return "sh"
}
