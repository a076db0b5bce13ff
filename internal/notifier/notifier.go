package notifier

import (
	"github.com/orgball2608/social-post-scheduler/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=notifier.go -destination=mocks/mock.go

// Client delivers operational alerts to whoever runs the service. Delivery is
// best effort; callers never act on its outcome.
type Client interface {
	NotifyPublishFailure(post *domain.ScheduledPost, reason string)
	SendMessage(text string)
}
