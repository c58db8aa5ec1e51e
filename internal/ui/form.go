package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/five82/shopkeep/internal/catalog"
	"github.com/five82/shopkeep/internal/controller"
)

const (
	formWidth  = 64
	labelWidth = 13
)

type formKind int

const (
	formCreate formKind = iota
	formEdit
)

type formField struct {
	label string
	input textinput.Model
}

// productForm backs both the edit form (detail selection) and the create
// form.
type productForm struct {
	kind   formKind
	id     int
	fields []formField
	focus  int
	err    error
}

func newField(label, placeholder, value string, limit int) formField {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = formWidth - labelWidth - 8
	in.SetValue(value)
	return formField{label: label, input: in}
}

func newEditForm(theme Theme, p catalog.Product) *productForm {
	values := controller.FormFromProduct(p)
	f := &productForm{
		kind: formEdit,
		id:   p.ID,
		fields: []formField{
			newField("Title", "title", values.Title, 200),
			newField("Price", "whole number", values.Price, 12),
			newField("Description", "description", values.Description, 2000),
		},
	}
	f.restyle(theme)
	return f
}

func newCreateForm(theme Theme) *productForm {
	f := &productForm{
		kind: formCreate,
		fields: []formField{
			newField("Title", "title", "", 200),
			newField("Price", "whole number", "", 12),
			newField("Description", "description", "", 2000),
			newField("Category ID", "e.g. 1", "", 9),
			newField("Images", "https://… (comma separated)", "", 2000),
		},
	}
	f.restyle(theme)
	return f
}

func (f *productForm) restyle(theme Theme) {
	styles := theme.Styles()
	for i := range f.fields {
		f.fields[i].input.TextStyle = styles.Text
		f.fields[i].input.PlaceholderStyle = styles.FaintText
		f.fields[i].input.Cursor.Style = styles.AccentText
	}
}

func (f *productForm) focusCmd() tea.Cmd {
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
	return f.fields[f.focus].input.Focus()
}

func (f *productForm) move(delta int) tea.Cmd {
	n := len(f.fields)
	f.focus = ((f.focus+delta)%n + n) % n
	return f.focusCmd()
}

func (f *productForm) onLast() bool {
	return f.focus == len(f.fields)-1
}

func (f *productForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *productForm) value(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return f.fields[i].input.Value()
}

func (f *productForm) createForm() controller.CreateForm {
	return controller.CreateForm{
		Title:       f.value(0),
		Price:       f.value(1),
		Description: f.value(2),
		CategoryID:  f.value(3),
		Images:      f.value(4),
	}
}

func (f *productForm) updateForm() controller.UpdateForm {
	return controller.UpdateForm{
		Title:       f.value(0),
		Price:       f.value(1),
		Description: f.value(2),
	}
}

func (f *productForm) title() string {
	if f.kind == formEdit {
		return fmt.Sprintf("Edit product #%d", f.id)
	}
	return "New product"
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.form.kind == formEdit {
			m.ctrl.ClearSelection()
		}
		m.form = nil
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitForm()
	case msg.Type == tea.KeyEnter:
		if m.form.onLast() {
			return m.submitForm()
		}
		return m, m.form.move(1)
	case key.Matches(msg, m.keys.NextField):
		return m, m.form.move(1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.move(-1)
	}
	return m, m.form.update(msg)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.submitting = true
	m.form.err = nil
	var cmd tea.Cmd
	if m.form.kind == formEdit {
		cmd = m.updateCmd(m.form.updateForm())
	} else {
		cmd = m.createCmd(m.form.createForm())
	}
	return m, tea.Batch(m.spinner.Tick, cmd)
}

func (m Model) renderForm() string {
	styles := m.theme.Styles()
	f := m.form

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(f.title()))
	b.WriteString("\n\n")

	label := lipgloss.NewStyle().Width(labelWidth)
	if f.kind == formEdit {
		b.WriteString(label.Inherit(styles.MutedText).Render("ID"))
		b.WriteString(styles.FaintText.Render(strconv.Itoa(f.id) + "  (read-only)"))
		b.WriteString("\n")
	}
	for i, field := range f.fields {
		ls := label.Inherit(styles.MutedText)
		if i == f.focus {
			ls = label.Inherit(styles.AccentText)
		}
		b.WriteString(ls.Render(field.label))
		b.WriteString(field.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(m.spinner.View() + styles.MutedText.Render(" Saving..."))
	case f.err != nil:
		b.WriteString(styles.DangerText.Render(wordwrap.String(f.err.Error(), formWidth-8)))
	default:
		b.WriteString(m.help.ShortHelpView(formKeyMap{m.keys}.ShortHelp()))
	}

	box := styles.Modal.Width(formWidth).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
