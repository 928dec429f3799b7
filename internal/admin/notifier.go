package admin

import "time"

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 3 * time.Second

type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

func (k ToastKind) String() string {
	if k == ToastError {
		return "error"
	}
	return "success"
}

// Toast is a transient, non-blocking message.
type Toast struct {
	Kind     ToastKind
	Message  string
	Duration time.Duration
}

func NewToast(kind ToastKind, message string) Toast {
	return Toast{Kind: kind, Message: message, Duration: ToastDuration}
}

// Notifier surfaces outcomes to the admin. Alert is blocking in spirit: the admin has to read it
// before carrying on.
type Notifier interface {
	Alert(message string)
	Toast(t Toast)
}

// Confirmer asks the admin a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm is used by frontends that ask for confirmation themselves before calling Delete.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })
