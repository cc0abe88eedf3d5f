package platform

import (
	"os"
	"runtime"
)

// DefaultFileMode is used for template files that carry no mode of their own.
const DefaultFileMode os.FileMode = 0644

// WriteFile writes data to path and leaves it with exactly mode (or
// DefaultFileMode when mode is zero), whatever the umask or the mode of a
// file being replaced. Windows has no Unix permission bits, so there the
// mode only applies as far as os.WriteFile honors it.
func WriteFile(path string, data []byte, mode os.FileMode) error {
	if mode == 0 {
		mode = DefaultFileMode
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return err
	}
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}
