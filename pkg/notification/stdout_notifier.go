package notification

import "fmt"

// StdoutNotifier prints notifications instead of dispatching them.
// Used by the --dry-run flag.
type StdoutNotifier struct {
	defaultTitle string
}

// NewStdoutNotifier creates a new stdout notifier.
func NewStdoutNotifier(defaultTitle string) *StdoutNotifier {
	return &StdoutNotifier{defaultTitle: defaultTitle}
}

// Send prints the notification to stdout.
func (s *StdoutNotifier) Send(n Notification) error {
	title := n.Title
	if title == "" {
		title = s.defaultTitle
	}
	fmt.Printf("[NOTIFICATION] %s: %s\n", title, n.Message)
	return nil
}
