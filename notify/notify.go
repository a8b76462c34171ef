package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a transient message for the user
type Notification struct {
	Level       Level
	Title       string
	Description string
}

func (n Notification) String() string {
	if n.Description == "" {
		return n.Title
	}
	return n.Title + ": " + n.Description
}

// Notifier delivers notifications to whoever presents them
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to a Notifier
type Func func(n Notification)

func (f Func) Notify(n Notification) {
	f(n)
}

// Discard drops every notification
var Discard Notifier = Func(func(Notification) {})

// Recorder keeps every notification it receives
type Recorder struct {
	sync.Mutex
	notifications []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.Lock()
	defer r.Unlock()
	r.notifications = append(r.notifications, n)
}

func (r *Recorder) Notifications() []Notification {
	r.Lock()
	defer r.Unlock()
	return append([]Notification(nil), r.notifications...)
}

// Last returns the latest notification, if any
func (r *Recorder) Last() (Notification, bool) {
	r.Lock()
	defer r.Unlock()
	if len(r.notifications) == 0 {
		return Notification{}, false
	}
	return r.notifications[len(r.notifications)-1], true
}

type writer struct {
	sync.Mutex
	w io.Writer
}

// NewWriter prints notifications one per line, e.g. "[success] Donation added successfully"
func NewWriter(w io.Writer) Notifier {
	return &writer{w: w}
}

func (w *writer) Notify(n Notification) {
	w.Lock()
	defer w.Unlock()
	fmt.Fprintf(w.w, "[%s] %s\n", n.Level, n)
}

type logNotifier struct {
	log *logrus.Entry
}

// NewLog sends notifications to logrus under the given prefix
func NewLog(prefix string) Notifier {
	return &logNotifier{log: logrus.WithField("prefix", prefix)}
}

func (l *logNotifier) Notify(n Notification) {
	entry := l.log.WithField("kind", string(n.Level))
	if n.Level == LevelError {
		entry.Warn(n.String())
		return
	}
	entry.Info(n.String())
}
