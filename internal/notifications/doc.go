// Package notifications pushes scan outcomes to an ntfy topic.
//
// NewService returns a noop implementation when no topic is configured, so
// callers can notify unconditionally. Delivery failures are returned to the
// caller, which logs them; they never fail a scan.
package notifications
