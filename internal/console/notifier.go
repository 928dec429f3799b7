package console

import (
	"sync"
	"time"

	"lawFirmWebsite/internal/admin"
)

type noticeKind int

const (
	noticeAlert noticeKind = iota
	noticeSuccess
	noticeError
)

// notice is one line for the status bar. Alerts stay until the next key press; toasts expire.
type notice struct {
	kind     noticeKind
	message  string
	duration time.Duration
}

func (n notice) isAlert() bool { return n.kind == noticeAlert }

// statusNotifier collects page notifications raised inside commands until the model picks them
// up on the UI goroutine.
type statusNotifier struct {
	mu      sync.Mutex
	pending []notice
}

func (s *statusNotifier) Alert(message string) {
	s.push(notice{kind: noticeAlert, message: message})
}

func (s *statusNotifier) Toast(t admin.Toast) {
	kind := noticeSuccess
	if t.Kind == admin.ToastError {
		kind = noticeError
	}
	d := t.Duration
	if d <= 0 {
		d = admin.ToastDuration
	}
	s.push(notice{kind: kind, message: t.Message, duration: d})
}

func (s *statusNotifier) push(n notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, n)
}

func (s *statusNotifier) drain() []notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	return out
}

// pick chooses what the status line shows: the newest alert, else the newest toast.
func pick(notices []notice) (notice, bool) {
	for i := len(notices) - 1; i >= 0; i-- {
		if notices[i].isAlert() {
			return notices[i], true
		}
	}
	if len(notices) == 0 {
		return notice{}, false
	}
	return notices[len(notices)-1], true
}
