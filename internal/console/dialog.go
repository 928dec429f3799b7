package console

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmDialog is a yes/no question. No is selected initially.
type confirmDialog struct {
	Title       string
	Message     string
	YesSelected bool
}

func newConfirmDialog(title, message string) confirmDialog {
	return confirmDialog{Title: title, Message: message}
}

// Update reports whether the admin has decided, and if so whether they confirmed.
func (d *confirmDialog) Update(msg tea.KeyMsg) (decided, confirmed bool) {
	switch msg.String() {
	case "left", "h":
		d.YesSelected = true
	case "right", "l":
		d.YesSelected = false
	case "y":
		return true, true
	case "n", "esc", "q":
		return true, false
	case "enter":
		return true, d.YesSelected
	}
	return false, false
}

func (d confirmDialog) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(d.Message)
	b.WriteString("\n\n")

	yes := inactiveButtonStyle.Render("Yes")
	no := inactiveButtonStyle.Render("No")
	if d.YesSelected {
		yes = activeButtonStyle.Render("Yes")
	} else {
		no = activeButtonStyle.Render("No")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, yes, "  ", no))
	b.WriteString("\n")
	b.WriteString(helpLine("←/→", "choose", "enter", "confirm", "esc", "cancel"))

	return boxStyle.Render(b.String())
}
