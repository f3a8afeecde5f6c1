package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// videoPattern is the repeating content of fixture video files. Byte n of a
// fixture is videoPattern[n%16], so range responses are easy to predict.
const videoPattern = "0123456789abcdef"

// WriteFile creates a fixture video at path, creating parent directories as
// needed. The file holds size bytes of videoPattern; a size <= 0 writes one
// byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	content := bytes.Repeat([]byte(videoPattern), int(size)/len(videoPattern)+1)
	if err := os.WriteFile(path, content[:size], 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// VideoBytes returns the content WriteFile stores for the half-open byte
// range [start, end).
func VideoBytes(start, end int64) string {
	var b bytes.Buffer
	for i := start; i < end; i++ {
		b.WriteByte(videoPattern[i%int64(len(videoPattern))])
	}
	return b.String()
}
