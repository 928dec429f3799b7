package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lawFirmWebsite/internal/admin"
	"lawFirmWebsite/internal/validation"
)

// field is one labelled input of an edit form over F.
type field[F any] struct {
	label string
	image bool
	get   func(F) string
	set   func(*F, string) error
}

func text[F any](label string, p func(*F) *string) field[F] {
	return field[F]{
		label: label,
		get:   func(f F) string { return *p(&f) },
		set:   func(f *F, v string) error { *p(f) = v; return nil },
	}
}

func imagePath[F any](label string, p func(*F) *string) field[F] {
	fld := text(label, p)
	fld.image = true
	return fld
}

// lines edits multi-line text on one line, with ";" standing for a line break.
func lines[F any](label string, p func(*F) *string) field[F] {
	return field[F]{
		label: label,
		get: func(f F) string {
			return strings.Join(strings.Split(*p(&f), "\n"), "; ")
		},
		set: func(f *F, v string) error {
			parts := strings.Split(v, ";")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			*p(f) = strings.Join(parts, "\n")
			return nil
		},
	}
}

func number[F any](label string, p func(*F) *int) field[F] {
	return field[F]{
		label: label,
		get:   func(f F) string { return strconv.Itoa(*p(&f)) },
		set: func(f *F, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s must be a whole number", label)
			}
			*p(f) = n
			return nil
		},
	}
}

func decimal[F any](label string, p func(*F) *float64) field[F] {
	return field[F]{
		label: label,
		get:   func(f F) string { return strconv.FormatFloat(*p(&f), 'f', -1, 64) },
		set: func(f *F, v string) error {
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("%s must be a number", label)
			}
			*p(f) = n
			return nil
		},
	}
}

func yesNo[F any](label string, p func(*F) *bool) field[F] {
	return field[F]{
		label: label,
		get: func(f F) string {
			if *p(&f) {
				return "yes"
			}
			return "no"
		},
		set: func(f *F, v string) error {
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "yes", "y", "true":
				*p(f) = true
			case "no", "n", "false":
				*p(f) = false
			default:
				return fmt.Errorf("%s must be yes or no", label)
			}
			return nil
		},
	}
}

// form is an open edit form, independent of the record type behind it.
type form struct {
	title  string
	labels []string
	// image is the index of the image field, -1 when the form has none.
	image int
	// saved is the toast shown after a successful submit; empty when the page reports it itself.
	saved string

	values  func() []string
	apply   func(values []string) error
	submit  func(ctx context.Context) error
	cancel  func()
	upload  func(ctx context.Context, filename string, r io.Reader) error
	preview func() string
}

// applyFields writes every parsable value into F. Values that do not parse are reported together and
// leave their field unchanged.
func applyFields[F any](fields []field[F], values []string, edit func(func(*F)) error) error {
	var messages []string
	err := edit(func(f *F) {
		for i, fld := range fields {
			if i >= len(values) {
				break
			}
			if err := fld.set(f, values[i]); err != nil {
				messages = append(messages, err.Error())
			}
		}
	})
	if err != nil {
		return err
	}
	if len(messages) > 0 {
		return &validation.Error{Messages: messages}
	}
	return nil
}

func pageForm[T, F any](page *admin.Page[T, F], fields []field[F], title string) *form {
	f := &form{
		title:  title,
		labels: make([]string, len(fields)),
		image:  -1,
		saved:  capitalize(page.Noun()) + " saved",
		values: func() []string {
			current := page.Form()
			out := make([]string, len(fields))
			for i, fld := range fields {
				out[i] = fld.get(current)
			}
			return out
		},
		apply: func(values []string) error {
			return applyFields(fields, values, page.Edit)
		},
		submit: page.Submit,
		cancel: page.Cancel,
		upload: page.UploadImage,
		preview: func() string {
			return "Image preview: " + page.PreviewSrc()
		},
	}
	for i, fld := range fields {
		f.labels[i] = fld.label
		if fld.image {
			f.image = i
		}
	}
	return f
}

// formView holds the text inputs of the open form.
type formView struct {
	form   *form
	inputs []textinput.Model
	focus  int
	// invalid is the latest parse problem, shown under the inputs.
	invalid string
}

func newFormView(f *form) formView {
	values := f.values()
	inputs := make([]textinput.Model, len(f.labels))
	for i := range inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Width = 48
		in.Cursor.SetMode(cursor.CursorStatic)
		in.SetValue(values[i])
		inputs[i] = in
	}
	v := formView{form: f, inputs: inputs}
	v.setFocus(0)
	return v
}

func (v *formView) setFocus(i int) {
	if len(v.inputs) == 0 {
		return
	}
	v.inputs[v.focus].Blur()
	v.focus = (i + len(v.inputs)) % len(v.inputs)
	v.inputs[v.focus].Focus()
}

func (v formView) values() []string {
	out := make([]string, len(v.inputs))
	for i, in := range v.inputs {
		out[i] = in.Value()
	}
	return out
}

// sync pushes the inputs into the page form so previews follow the typing.
func (v *formView) sync() error {
	err := v.form.apply(v.values())
	v.invalid = ""
	if err != nil {
		v.invalid = err.Error()
	}
	return err
}

// refresh reloads one input from the page form, e.g. after an upload filled in the image path.
func (v *formView) refresh(i int) {
	if i < 0 || i >= len(v.inputs) {
		return
	}
	v.inputs[i].SetValue(v.form.values()[i])
	v.inputs[i].CursorEnd()
}

func (v formView) update(msg tea.KeyMsg) (formView, tea.Cmd) {
	if len(v.inputs) == 0 {
		return v, nil
	}
	inputs := append([]textinput.Model(nil), v.inputs...)
	var cmd tea.Cmd
	inputs[v.focus], cmd = inputs[v.focus].Update(msg)
	v.inputs = inputs
	v.sync()
	return v, cmd
}

func (v formView) View(busy bool, spin string) string {
	var b strings.Builder

	title := v.form.title
	if busy {
		title += "  " + spin
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	width := 0
	for _, l := range v.form.labels {
		width = max(width, len(l))
	}
	for i, in := range v.inputs {
		label := fmt.Sprintf("%-*s", width, v.form.labels[i])
		if i == v.focus {
			b.WriteString(selectedRowStyle.Render("▸ "+label) + "  " + in.View())
		} else {
			b.WriteString(rowStyle.Render("  "+label) + "  " + in.View())
		}
		b.WriteString("\n")
	}

	if v.invalid != "" {
		b.WriteString("\n" + dangerStyle.Render(v.invalid) + "\n")
	}
	if preview := v.form.preview(); preview != "" {
		b.WriteString("\n" + mutedStyle.Render(preview) + "\n")
	}

	pairs := []string{"tab/↑/↓", "field", "ctrl+s", "save"}
	if v.form.image >= 0 {
		pairs = append(pairs, "ctrl+o", "upload image file")
	}
	pairs = append(pairs, "esc", "cancel")
	b.WriteString(helpLine(pairs...))
	return boxStyle.Render(b.String())
}
