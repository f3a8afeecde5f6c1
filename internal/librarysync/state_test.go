package librarysync

import (
	"os"
	"path/filepath"
	"testing"

	"jukebox/internal/catalog"
	"jukebox/internal/logging"
)

func TestStateOf(t *testing.T) {
	id := int64(1)
	key := "k"
	cases := []struct {
		entry *catalog.Entry
		want  State
	}{
		{nil, StateNew},
		{&catalog.Entry{}, StateUnenriched},
		{&catalog.Entry{TrailerRef: &key}, StateUnenriched},
		{&catalog.Entry{ProviderID: &id}, StateMissingTrailer},
		{&catalog.Entry{ProviderID: &id, TrailerRef: &key}, StateComplete},
	}
	for _, tc := range cases {
		if got := StateOf(tc.entry); got != tc.want {
			t.Errorf("StateOf(%+v) = %s, want %s", tc.entry, got, tc.want)
		}
	}
}

func TestInspectLeavesSizeEmptyWhenStatFails(t *testing.T) {
	s := New(nil, nil, nil, Options{})
	path := filepath.Join(t.TempDir(), "Gone.2020.1080p.MKV")

	info := s.inspect(path, logging.NewNop())
	if info.size != nil {
		t.Fatalf("expected nil size, got %d", *info.size)
	}
	if info.name != "Gone.2020.1080p.MKV" || info.ext != ".mkv" {
		t.Fatalf("unexpected file info %+v", info)
	}

	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	info = s.inspect(path, logging.NewNop())
	if info.size == nil || *info.size != 3 {
		t.Fatalf("expected size 3, got %v", info.size)
	}
}
