package notification

import (
	"fmt"
	"os/exec"
	"strconv"
)

// notifySendCommand is the external mechanism that renders notifications.
const notifySendCommand = "notify-send"

// CommandNotifier dispatches notifications by invoking notify-send.
// Dispatch is synchronous and may block for the duration of the external
// call; each scheduling loop owns its goroutine, so that is acceptable.
type CommandNotifier struct {
	defaultTitle string
	cmdExecutor  func(name string, args ...string) error
}

// NewCommandNotifier creates a notifier that invokes notify-send.
// defaultTitle is substituted whenever a notification carries no title;
// both the periodic and the ad-hoc path go through here, so the default
// applies identically to both.
func NewCommandNotifier(defaultTitle string) *CommandNotifier {
	return &CommandNotifier{
		defaultTitle: defaultTitle,
		cmdExecutor:  defaultCmdExecutor,
	}
}

// defaultCmdExecutor runs a command and waits for it to exit.
func defaultCmdExecutor(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Send invokes notify-send with one flag per present optional field.
// A non-zero exit or spawn failure is returned as an error; callers log
// it and carry on, a failed dispatch never terminates anything.
func (c *CommandNotifier) Send(n Notification) error {
	args := c.buildArgs(n)
	if err := c.cmdExecutor(notifySendCommand, args...); err != nil {
		return fmt.Errorf("%s failed: %w", notifySendCommand, err)
	}
	return nil
}

// buildArgs assembles the notify-send argument list. Absent optional
// fields are omitted so the mechanism applies its own defaults.
func (c *CommandNotifier) buildArgs(n Notification) []string {
	title := n.Title
	if title == "" {
		title = c.defaultTitle
	}

	args := []string{title, n.Message}

	if n.Urgency != "" {
		args = append(args, "--urgency="+n.Urgency)
	}
	if n.ExpireTime > 0 {
		args = append(args, "--expire-time="+strconv.Itoa(n.ExpireTime))
	}
	if n.AppName != "" {
		args = append(args, "--app-name="+n.AppName)
	}
	if n.Icon != "" {
		args = append(args, "--icon="+n.Icon)
	}
	if n.Category != "" {
		args = append(args, "--category="+n.Category)
	}
	if n.Transient {
		args = append(args, "--transient")
	}

	return args
}
