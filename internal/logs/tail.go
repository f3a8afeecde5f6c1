package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const defaultPoll = 250 * time.Millisecond

// Options controls Stream.
type Options struct {
	// Lines is the number of trailing lines printed first. Zero prints none.
	Lines int
	// Follow keeps polling for appended lines until the context ends.
	Follow bool
	// Poll is the follow interval; zero uses 250ms.
	Poll time.Duration
	// Match keeps only lines containing this substring.
	Match string
}

// Stream emits log lines from path to emit. A missing file yields no lines
// and, when following, is waited for.
func Stream(ctx context.Context, path string, opts Options, emit func(string) error) error {
	lines, offset, err := Last(path, opts.Lines)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if !matches(line, opts.Match) {
			continue
		}
		if err := emit(line); err != nil {
			return err
		}
	}
	if !opts.Follow {
		return nil
	}
	return follow(ctx, path, offset, opts, emit)
}

// Last returns up to n trailing complete lines of path and the offset just
// past them.
func Last(path string, n int) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return nil, 0, fmt.Errorf("log path %q is a directory", path)
	}

	lines, offset, err := readLines(file, 0)
	if err != nil {
		return nil, 0, err
	}
	if n <= 0 {
		return nil, offset, nil
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, offset, nil
}

func follow(ctx context.Context, path string, offset int64, opts Options, emit func(string) error) error {
	poll := opts.Poll
	if poll <= 0 {
		poll = defaultPoll
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		lines, next, err := readFrom(path, offset)
		if err != nil {
			return err
		}
		offset = next
		for _, line := range lines {
			if !matches(line, opts.Match) {
				continue
			}
			if err := emit(line); err != nil {
				return err
			}
		}
	}
}

// readFrom reads complete lines after offset. A file that shrank (rotated or
// truncated) is read from the start.
func readFrom(path string, offset int64) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, offset, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, offset, fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() < offset {
		offset = 0
	}
	return readLines(file, offset)
}

func readLines(file *os.File, offset int64) ([]string, int64, error) {
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, offset, fmt.Errorf("seek log file: %w", err)
	}
	reader := bufio.NewReaderSize(file, 64*1024)
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				// An unterminated tail is left for the next read.
				return lines, offset, nil
			}
			return nil, offset, fmt.Errorf("read log file: %w", err)
		}
		offset += int64(len(line))
		lines = append(lines, strings.TrimRight(line, "\r\n"))
	}
}

func matches(line, match string) bool {
	return match == "" || strings.Contains(line, match)
}
