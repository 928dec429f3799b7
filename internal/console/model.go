// Package console is a terminal admin console over the site's REST API.
package console

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lawFirmWebsite/internal/admin"
	"lawFirmWebsite/internal/carousel"
	"lawFirmWebsite/internal/logging"
)

type mode int

const (
	modeList mode = iota
	modeConfirm
	modePreview
	modeForm
)

// Options configure the console.
type Options struct {
	// Logger receives page errors. It must not write to the terminal the console draws on.
	Logger *logging.Logger
	// Interval is the preview's auto-advance period.
	Interval time.Duration
}

// Messages
type fetchedMsg struct {
	tab int
	err error
}

type actionDoneMsg struct {
	tab     int
	success string
	err     error
}

// formSavedMsg ends a submit. Pages report their own failures.
type formSavedMsg struct {
	seq   int
	saved string
	err   error
}

type uploadDoneMsg struct {
	seq int
	err error
	// reported is set when the page has already alerted about err.
	reported bool
}

type noticeExpiredMsg struct{ seq int }

// timerFunc schedules a message after d.
type timerFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Model is the bubbletea model of the console.
type Model struct {
	ctx     context.Context
	tabs    []tab
	active  int
	cursor  int
	mode    mode
	pending int
	spinner spinner.Model

	dialog   confirmDialog
	deleteID string

	editing formView
	formSeq int

	notices *statusNotifier
	status  notice
	shown   bool
	seq     int
	after   timerFunc

	slides   func() []carousel.Slide
	interval time.Duration
	preview  *preview

	width  int
	height int
}

// New builds the console over every admin page of client.
func New(ctx context.Context, client *admin.Client, opts Options) Model {
	notices := &statusNotifier{}
	deps := admin.PageDeps{
		Notify:  notices,
		Confirm: admin.AlwaysConfirm, // the console asks in its own dialog
		Logger:  opts.Logger,
	}
	slides := admin.NewCarouselPage(client, deps)
	tabs := []tab{
		newCarouselTab(slides),
		newProjectsTab(admin.NewProjectsPage(client, deps)),
		newServicesTab(admin.NewServicesPage(client, deps)),
		newContentTab(admin.NewContentPage(client, deps)),
		newAboutTab(admin.NewAboutPage(client, deps)),
		newReviewsTab(admin.NewReviewsPage(client, deps)),
		newAppointmentsTab(admin.NewAppointmentsPage(client, deps)),
		newEnquiriesTab(admin.NewEnquiriesPage(client, deps)),
		newContactTab(admin.NewContactInfoPage(client, deps)),
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = carousel.DefaultInterval
	}

	return Model{
		ctx:      ctx,
		tabs:     tabs,
		pending:  len(tabs), // Init fetches every tab
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(selectedRowStyle)),
		notices:  notices,
		after:    tea.Tick,
		slides:   func() []carousel.Slide { return activeSlides(slides) },
		interval: interval,
	}
}

// Run starts the console and blocks until the admin quits or ctx is done.
func Run(ctx context.Context, client *admin.Client, opts Options) error {
	p := tea.NewProgram(New(ctx, client, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.tabs)+1)
	for i := range m.tabs {
		cmds = append(cmds, m.fetchCmd(i))
	}
	cmds = append(cmds, m.spinner.Tick)
	return tea.Batch(cmds...)
}

// Commands
func (m Model) fetchCmd(i int) tea.Cmd {
	t := m.tabs[i]
	ctx := m.ctx
	return func() tea.Msg {
		return fetchedMsg{tab: i, err: t.Fetch(ctx)}
	}
}

func (m Model) toggleCmd(i int, t toggler, r row) tea.Cmd {
	noun := m.tabs[i].Noun()
	verb := t.ToggleVerb(r.Active)
	ctx := m.ctx
	return func() tea.Msg {
		err := t.ToggleActive(ctx, r.ID)
		return actionDoneMsg{tab: i, success: fmt.Sprintf("%s %s", capitalize(noun), verb), err: err}
	}
}

func (m Model) deleteCmd(i int, d deleter, id string) tea.Cmd {
	noun := m.tabs[i].Noun()
	ctx := m.ctx
	return func() tea.Msg {
		err := d.Delete(ctx, id)
		return actionDoneMsg{tab: i, success: capitalize(noun) + " deleted", err: err}
	}
}

func (m Model) submitCmd() tea.Cmd {
	f, seq, ctx := m.editing.form, m.formSeq, m.ctx
	return func() tea.Msg {
		return formSavedMsg{seq: seq, saved: f.saved, err: f.submit(ctx)}
	}
}

// uploadCmd sends the local file named by path and lets the page put the stored path in the form.
func (m Model) uploadCmd(path string) tea.Cmd {
	f, seq, ctx := m.editing.form, m.formSeq, m.ctx
	return func() tea.Msg {
		file, err := os.Open(path)
		if err != nil {
			return uploadDoneMsg{seq: seq, err: fmt.Errorf("failed to open %s: %w", path, err)}
		}
		defer file.Close()

		err = f.upload(ctx, filepath.Base(path), file)
		// The page alerts on failed requests, not on a closed form or a running upload.
		reported := err != nil && !errors.Is(err, admin.ErrFormClosed) && !errors.Is(err, admin.ErrUploadInProgress)
		return uploadDoneMsg{seq: seq, err: err, reported: reported}
	}
}

// start marks one more request in flight and keeps the spinner turning.
func (m Model) start(cmd tea.Cmd) (Model, tea.Cmd) {
	m.pending++
	if m.pending == 1 {
		return m, tea.Batch(cmd, m.spinner.Tick)
	}
	return m, cmd
}

func (m Model) busy() bool { return m.pending > 0 }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchedMsg:
		m.pending--
		m.clampCursor()
		if msg.err != nil {
			return m.showNotices(notice{
				kind:     noticeError,
				message:  fmt.Sprintf("Failed to load %ss", m.tabs[msg.tab].Noun()),
				duration: admin.ToastDuration,
			})
		}
		return m.showNotices()

	case actionDoneMsg:
		m.pending--
		m.clampCursor()
		extra := notice{kind: noticeSuccess, message: msg.success, duration: admin.ToastDuration}
		if msg.err != nil {
			extra = notice{kind: noticeAlert, message: msg.err.Error()}
		}
		return m.showNotices(extra)

	case formSavedMsg:
		m.pending--
		if msg.err != nil {
			return m.showNotices()
		}
		var own []notice
		if msg.saved != "" {
			own = append(own, notice{kind: noticeSuccess, message: msg.saved, duration: admin.ToastDuration})
		}
		if m.mode == modeForm && msg.seq == m.formSeq {
			m.closeForm()
		}
		m.clampCursor()
		return m.showNotices(own...)

	case uploadDoneMsg:
		m.pending--
		if m.mode != modeForm || msg.seq != m.formSeq {
			return m.showNotices()
		}
		if msg.err != nil {
			if msg.reported {
				return m.showNotices()
			}
			return m.showNotices(notice{kind: noticeAlert, message: msg.err.Error()})
		}
		m.editing.refresh(m.editing.form.image)
		return m.showNotices(notice{kind: noticeSuccess, message: "Image uploaded", duration: admin.ToastDuration})

	case noticeExpiredMsg:
		if m.shown && !m.status.isAlert() && msg.seq == m.seq {
			m.shown = false
		}
		return m, nil

	case slideChangedMsg:
		if m.mode == modePreview && m.preview != nil {
			return m, m.preview.wait()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// showNotices moves page notifications to the status line. own is the model's fallback
// outcome; a page's own alert takes precedence over it.
func (m Model) showNotices(own ...notice) (Model, tea.Cmd) {
	n, ok := pick(append(own, m.notices.drain()...))
	if !ok {
		return m, nil
	}
	// A toast never replaces an unacknowledged alert.
	if m.shown && m.status.isAlert() && !n.isAlert() {
		return m, nil
	}

	m.seq++
	m.status = n
	m.shown = true
	if n.isAlert() {
		return m, nil
	}
	seq := m.seq
	return m, m.after(n.duration, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.closePreview()
		return m, tea.Quit
	}

	switch m.mode {
	case modeConfirm:
		decided, confirmed := m.dialog.Update(msg)
		if !decided {
			return m, nil
		}
		m.mode = modeList
		id := m.deleteID
		m.deleteID = ""
		d, ok := m.tabs[m.active].(deleter)
		if !confirmed || !ok {
			return m, nil
		}
		return m.start(m.deleteCmd(m.active, d, id))

	case modePreview:
		switch key {
		case "esc", "p", "q":
			m.closePreview()
			m.mode = modeList
			return m, nil
		}
		m.preview.handleKey(key)
		return m, nil

	case modeForm:
		return m.handleFormKey(msg)
	}

	// An alert must be read; the key that dismisses it does nothing else.
	if m.shown && m.status.isAlert() {
		m.shown = false
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.currentRows())-1 {
			m.cursor++
		}
		return m, nil

	case "p":
		m.preview = startPreview(m.ctx, m.slides(), m.interval)
		m.mode = modePreview
		return m, m.preview.wait()

	// Deleting is per row, so it does not wait for other requests; only a row already being
	// deleted is refused.
	case "d":
		_, isDeleter := m.tabs[m.active].(deleter)
		r, ok := m.selected()
		if !isDeleter || !ok || r.Deleting {
			return m, nil
		}
		noun := m.tabs[m.active].Noun()
		m.dialog = newConfirmDialog(
			"Delete "+noun,
			fmt.Sprintf("Are you sure you want to delete this %s?\n%s", noun, r.Title),
		)
		m.deleteID = r.ID
		m.mode = modeConfirm
		return m, nil
	}

	if m.busy() {
		return m, nil
	}

	switch key {
	case "tab", "shift+tab":
		if key == "tab" {
			m.active = (m.active + 1) % len(m.tabs)
		} else {
			m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
		}
		m.cursor = 0
		return m.start(m.fetchCmd(m.active))

	case "r":
		return m.start(m.fetchCmd(m.active))

	case " ", "space":
		t, isToggler := m.tabs[m.active].(toggler)
		r, ok := m.selected()
		if !isToggler || !ok {
			return m, nil
		}
		return m.start(m.toggleCmd(m.active, t, r))

	case "n":
		return m.openForm("")

	case "e", "enter":
		r, ok := m.selected()
		if _, single := m.tabs[m.active].(summarizer); !ok && !single {
			return m, nil
		}
		return m.openForm(r.ID)
	}

	return m, nil
}

func (m Model) openForm(id string) (tea.Model, tea.Cmd) {
	f, err := m.tabs[m.active].Open(id)
	if err != nil {
		return m.showNotices(notice{kind: noticeAlert, message: err.Error()})
	}
	m.formSeq++
	m.editing = newFormView(f)
	m.mode = modeForm
	return m, nil
}

func (m *Model) closeForm() {
	m.editing = formView{}
	m.mode = modeList
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.shown && m.status.isAlert() {
		m.shown = false
		return m, nil
	}

	f := m.editing.form
	switch msg.String() {
	case "esc":
		f.cancel()
		m.closeForm()
		return m, nil

	case "tab", "down", "enter":
		m.editing.setFocus(m.editing.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.editing.setFocus(m.editing.focus - 1)
		return m, nil

	case "ctrl+s":
		if m.busy() {
			return m, nil
		}
		if err := m.editing.sync(); err != nil {
			return m.showNotices(notice{kind: noticeAlert, message: err.Error()})
		}
		return m.start(m.submitCmd())

	case "ctrl+o":
		if m.busy() || f.image < 0 || f.upload == nil {
			return m, nil
		}
		path := strings.TrimSpace(m.editing.inputs[f.image].Value())
		if path == "" {
			return m.showNotices(notice{kind: noticeAlert, message: "Type the path of an image file first"})
		}
		if err := m.editing.sync(); err != nil {
			return m.showNotices(notice{kind: noticeAlert, message: err.Error()})
		}
		return m.start(m.uploadCmd(path))
	}

	// Typing waits for the running save or upload so it cannot race the page's own write.
	if m.busy() {
		return m, nil
	}
	var cmd tea.Cmd
	m.editing, cmd = m.editing.update(msg)
	return m, cmd
}

func (m *Model) closePreview() {
	if m.preview != nil {
		m.preview.close()
		m.preview = nil
	}
}

func (m Model) currentRows() []row {
	return m.tabs[m.active].Rows()
}

func (m Model) selected() (row, bool) {
	rows := m.currentRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.currentRows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	switch m.mode {
	case modeConfirm:
		return m.place(m.dialog.View())
	case modePreview:
		return m.place(m.preview.View())
	case modeForm:
		view := m.editing.View(m.busy(), m.spinner.View())
		if m.shown {
			view += "\n" + m.statusView()
		}
		return m.place(view)
	}

	var b strings.Builder

	names := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.active {
			names[i] = activeTabStyle.Render(t.Name())
		} else {
			names[i] = inactiveTabStyle.Render(t.Name())
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, names...))
	if m.busy() {
		b.WriteString("  " + m.spinner.View())
	}
	b.WriteString("\n\n")

	current := m.tabs[m.active]
	rows := m.currentRows()
	if s, ok := current.(summarizer); ok {
		b.WriteString(s.Summary())
	} else if len(rows) == 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("No %ss yet", current.Noun())))
		b.WriteString("\n")
	}
	for i, r := range rows {
		line := statusIcon(r.Active) + " " + r.Title
		if r.Deleting {
			line += " " + dangerStyle.Render("deleting…")
		}
		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render("▸ " + line))
		} else {
			b.WriteString(rowStyle.Render("  " + line))
		}
		b.WriteString("\n    " + mutedStyle.Render(r.Detail) + "\n")
	}

	if m.shown {
		b.WriteString("\n" + m.statusView() + "\n")
	}

	b.WriteString(helpLine(m.listHelp()...))
	return b.String()
}

func (m Model) listHelp() []string {
	current := m.tabs[m.active]
	pairs := []string{"tab", "switch"}
	if _, single := current.(summarizer); single {
		pairs = append(pairs, "e", "edit")
	} else {
		pairs = append(pairs, "↑/↓", "move", "n", "new", "e", "edit")
	}
	if t, ok := current.(toggler); ok {
		pairs = append(pairs, "space", t.ToggleVerb(false)+"/"+t.ToggleVerb(true))
	}
	if _, ok := current.(deleter); ok {
		pairs = append(pairs, "d", "delete")
	}
	return append(pairs, "r", "refresh", "p", "preview hero", "q", "quit")
}

func (m Model) statusView() string {
	switch m.status.kind {
	case noticeAlert:
		return dangerStyle.Render("! "+m.status.message) + "  " + mutedStyle.Render("(press any key)")
	case noticeError:
		return dangerStyle.Render("✗ " + m.status.message)
	default:
		return successStyle.Render("✓ " + m.status.message)
	}
}

func (m Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
