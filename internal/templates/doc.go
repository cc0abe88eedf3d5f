// Package templates acquires the files a new project is initialized with.
// A template comes from one of three sources: the tree bundled into the
// binary, a local directory, or a release archive on GitHub. Every source
// materializes the whole template in memory before returning, so a failed
// fetch never leaves a half-written project behind.
package templates
