package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jukebox/internal/config"
)

const userAgent = "jukebox/0.1.0"

// Service defines the notification surface used by the CLI.
type Service interface {
	NotifyScanCompleted(ctx context.Context, root string, summary ScanSummary) error
	NotifyScanFailed(ctx context.Context, root string, err error) error
	TestNotification(ctx context.Context) error
}

// ScanSummary carries the counters reported after a scan.
type ScanSummary struct {
	Total   int
	Added   int
	Updated int
	Failed  int
	Elapsed time.Duration
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil || !cfg.NotificationsEnabled() {
		return noopService{}
	}

	timeout := cfg.NotificationTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: strings.TrimSpace(cfg.Notifications.NtfyTopic),
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyScanCompleted(ctx context.Context, root string, summary ScanSummary) error {
	message := fmt.Sprintf("Scanned %d files in %s\nAdded: %d, Updated: %d",
		summary.Total, summary.Elapsed.Round(time.Second), summary.Added, summary.Updated)
	tags := []string{"jukebox", "scan", "completed"}
	if summary.Failed > 0 {
		message = fmt.Sprintf("%s\nMetadata failures: %d", message, summary.Failed)
		tags = append(tags, "warning")
	}
	if root = strings.TrimSpace(root); root != "" {
		message = fmt.Sprintf("%s\nLibrary: %s", message, root)
	}
	return n.send(ctx, payload{
		title:   "Jukebox - Scan Complete",
		message: message,
		tags:    tags,
	})
}

func (n *ntfyService) NotifyScanFailed(ctx context.Context, root string, err error) error {
	details := "unknown error"
	if err != nil {
		details = err.Error()
	}
	message := fmt.Sprintf("Scan failed: %s", details)
	if root = strings.TrimSpace(root); root != "" {
		message = fmt.Sprintf("%s\nLibrary: %s", message, root)
	}
	return n.send(ctx, payload{
		title:    "Jukebox - Scan Failed",
		message:  message,
		tags:     []string{"jukebox", "scan", "error"},
		priority: "high",
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:   "Jukebox - Test",
		message: "Notifications are configured correctly.",
		tags:    []string{"jukebox", "test"},
	})
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyScanCompleted(context.Context, string, ScanSummary) error { return nil }
func (noopService) NotifyScanFailed(context.Context, string, error) error          { return nil }
func (noopService) TestNotification(context.Context) error                         { return nil }
