package ports

import "context"

// Port: best-effort push notification sender. Delivery failures must never
// fail the operation that triggered the notification.
type Notifier interface {
	Notify(ctx context.Context, studentID, message string) error
}
