package feedback

import (
	"github.com/gen2brain/beeep"
)

// Logger is the logging surface used by LogObserver.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// LogObserver returns an observer that writes messages to a logger.
func LogObserver(log Logger) Observer {
	return func(msg Message) {
		switch msg.Severity() {
		case SeverityError:
			log.Error(msg.Text(), "kind", msg.Kind.String())
		case SeverityNotice:
			log.Warn(msg.Text(), "kind", msg.Kind.String())
		default:
			log.Info(msg.Text(), "kind", msg.Kind.String())
		}
	}
}

// DesktopKinds are the kinds shown as desktop notifications.
var DesktopKinds = []Kind{
	KindRecordingStarted,
	KindRecordingStopped,
	KindPlaybackStarted,
	KindPlaybackFinished,
	KindPlaybackFailed,
}

// NotifyFunc shows a desktop notification.
type NotifyFunc func(title, message string) error

// BeeepNotify shows a notification through the desktop notification service.
func BeeepNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// DesktopObserver returns an observer that shows messages through notify.
// Failures are passed to onErr when it is non-nil.
func DesktopObserver(title string, notify NotifyFunc, onErr func(error)) Observer {
	if notify == nil {
		notify = BeeepNotify
	}
	return func(msg Message) {
		if err := notify(title, msg.Text()); err != nil && onErr != nil {
			onErr(err)
		}
	}
}
