// Package testsupport provides shared helpers for jukebox tests: isolated
// configs rooted in t.TempDir, catalog stores with cleanup, and file fixtures.
package testsupport
