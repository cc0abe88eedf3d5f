// Package platform hides the differences between Unix and Windows that the
// initializer cares about: permission bits on written files, the default
// helper-script flavor, and path containment checks that follow symlinks.
package platform
