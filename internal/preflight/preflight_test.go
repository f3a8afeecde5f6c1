package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jukebox/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir, AccessReadWrite)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "read/write ok") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"), AccessRead)
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f, AccessRead)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckTMDB(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/configuration" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("api_key") != "good-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"images":{}}`))
	}))
	defer srv.Close()

	cases := []struct {
		name   string
		base   string
		key    string
		passed bool
		detail string
	}{
		{"ok", srv.URL, "good-key", true, "Reachable"},
		{"bad key", srv.URL, "bad-key", false, "invalid api key"},
		{"missing key", srv.URL, " ", false, "missing api key"},
		{"missing url", "", "good-key", false, "missing base url"},
		{"trailing slash", srv.URL + "/", "good-key", true, "Reachable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := CheckTMDB(context.Background(), tc.base, tc.key)
			if result.Passed != tc.passed {
				t.Fatalf("passed = %v, want %v (%s)", result.Passed, tc.passed, result.Detail)
			}
			if !strings.Contains(result.Detail, tc.detail) {
				t.Fatalf("detail %q does not contain %q", result.Detail, tc.detail)
			}
		})
	}
}

func TestCheckNtfy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/health" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"healthy":true}`))
	}))
	defer srv.Close()

	if result := CheckNtfy(context.Background(), srv.URL+"/jukebox"); !result.Passed {
		t.Fatalf("expected pass, got %s", result.Detail)
	}
	if result := CheckNtfy(context.Background(), "not a url"); result.Passed {
		t.Fatal("expected failure for invalid topic")
	}
}

func TestRunAllWithoutTMDBKey(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.LibraryDir, 0o755); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), cfg)
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
	}
	if strings.Join(names, ",") != "Data directory,Library directory,Catalog,TMDB" {
		t.Fatalf("unexpected checks %v", names)
	}
	if !Passed(results) {
		t.Fatalf("expected disabled TMDB not to fail the run: %+v", results)
	}
	if results[3].Passed {
		t.Fatal("disabled TMDB should not report as passed")
	}
}

func TestRunAllFailsOnMissingLibrary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	results := RunAll(context.Background(), cfg)
	if Passed(results) {
		t.Fatalf("expected missing library directory to fail: %+v", results)
	}
}
