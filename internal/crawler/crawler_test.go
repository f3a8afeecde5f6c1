package crawler_test

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"jukebox/internal/crawler"
	"jukebox/internal/testsupport"
)

func collect(t *testing.T, seq iter.Seq2[string, error]) ([]string, error) {
	t.Helper()
	var paths []string
	for path, err := range seq {
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func TestWalkYieldsOnlyVideoFiles(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "Heat.1995.1080p.mkv"), 1)
	testsupport.WriteFile(t, filepath.Join(root, "Alien.1979.720p.MP4"), 1)
	testsupport.WriteFile(t, filepath.Join(root, "notes.txt"), 1)
	testsupport.WriteFile(t, filepath.Join(root, "cover.jpg"), 1)
	testsupport.WriteFile(t, filepath.Join(root, "subs.srt"), 1)
	if err := os.Mkdir(filepath.Join(root, "Extras.mkv"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	paths, err := collect(t, crawler.Walk(context.Background(), root))
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := []string{
		filepath.Join(root, "Alien.1979.720p.MP4"),
		filepath.Join(root, "Heat.1995.1080p.mkv"),
	}
	if !slices.Equal(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
}

func TestWalkDescendsDepthFirst(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "a", "deep", "one.avi"), 1)
	testsupport.WriteFile(t, filepath.Join(root, "a", "two.mov"), 1)
	testsupport.WriteFile(t, filepath.Join(root, "b", "three.webm"), 1)
	testsupport.WriteFile(t, filepath.Join(root, "z.mpg"), 1)

	paths, err := collect(t, crawler.Walk(context.Background(), root))
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := []string{
		filepath.Join(root, "a", "deep", "one.avi"),
		filepath.Join(root, "a", "two.mov"),
		filepath.Join(root, "b", "three.webm"),
		filepath.Join(root, "z.mpg"),
	}
	if !slices.Equal(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
}

func TestWalkEmptyDirectory(t *testing.T) {
	paths, err := collect(t, crawler.Walk(context.Background(), t.TempDir()))
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected no paths, got %v", paths)
	}
}

func TestWalkReturnsAbsolutePaths(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "movie.mkv"), 1)
	t.Chdir(root)

	paths, err := collect(t, crawler.Walk(context.Background(), "."))
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(paths) != 1 || !filepath.IsAbs(paths[0]) {
		t.Fatalf("expected one absolute path, got %v", paths)
	}
}

func TestWalkMissingRootFails(t *testing.T) {
	_, err := collect(t, crawler.Walk(context.Background(), filepath.Join(t.TempDir(), "missing")))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	_, err = collect(t, crawler.Walk(context.Background(), filepath.Join(t.TempDir(), "missing"), crawler.WithSkipUnreadable(nil)))
	if err == nil {
		t.Fatal("unreadable root must fail even when skipping")
	}
}

func unreadableDir(t *testing.T, path string) {
	t.Helper()
	if err := os.Chmod(path, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(path, 0o755) })
	if _, err := os.ReadDir(path); err == nil {
		t.Skip("directory permissions are not enforced for this user")
	}
}

func TestWalkAbortsOnUnreadableSubdirectory(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "a.mkv"), 1)
	testsupport.WriteFile(t, filepath.Join(root, "locked", "b.mkv"), 1)
	testsupport.WriteFile(t, filepath.Join(root, "z.mkv"), 1)
	unreadableDir(t, filepath.Join(root, "locked"))

	paths, err := collect(t, crawler.Walk(context.Background(), root))
	if err == nil {
		t.Fatal("expected listing error")
	}
	if !slices.Equal(paths, []string{filepath.Join(root, "a.mkv")}) {
		t.Fatalf("unexpected paths before abort: %v", paths)
	}
}

func TestWalkSkipsUnreadableSubdirectory(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "a.mkv"), 1)
	testsupport.WriteFile(t, filepath.Join(root, "locked", "b.mkv"), 1)
	testsupport.WriteFile(t, filepath.Join(root, "z.mkv"), 1)
	unreadableDir(t, filepath.Join(root, "locked"))

	paths, err := collect(t, crawler.Walk(context.Background(), root, crawler.WithSkipUnreadable(nil)))
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := []string{filepath.Join(root, "a.mkv"), filepath.Join(root, "z.mkv")}
	if !slices.Equal(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
}

func TestWalkStopsWhenConsumerBreaks(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.mkv", "b.mkv", "c.mkv"} {
		testsupport.WriteFile(t, filepath.Join(root, name), 1)
	}
	count := 0
	for _, err := range crawler.Walk(context.Background(), root) {
		if err != nil {
			t.Fatalf("walk: %v", err)
		}
		count++
		break
	}
	if count != 1 {
		t.Fatalf("expected a single iteration, got %d", count)
	}
}

func TestWalkHonoursCancellation(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "a.mkv"), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := collect(t, crawler.Walk(ctx, root))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestIsVideo(t *testing.T) {
	for _, name := range []string{"a.mp4", "b.MKV", "c.Avi", "d.mov", "e.wmv", "f.m4v", "g.webm", "h.flv", "i.mpeg", "j.mpg"} {
		if !crawler.IsVideo(name) {
			t.Errorf("expected %q to be a video", name)
		}
	}
	for _, name := range []string{"a.txt", "b.srt", "c", "mkv", "d.mkv.part"} {
		if crawler.IsVideo(name) {
			t.Errorf("expected %q not to be a video", name)
		}
	}
	if got := len(crawler.VideoExtensions()); got != 10 {
		t.Fatalf("expected 10 extensions, got %d", got)
	}
}
