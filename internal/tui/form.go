package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FormField describes one text input of a Form.
type FormField struct {
	Label       string
	Placeholder string
	Value       string
	CharLimit   int
	Width       int
	Secret      bool // masked, for passwords
}

// Form is an embeddable multi-field text form with an optional Y/n
// confirmation step. Parent models forward messages to Update and check
// Submitted or Canceled afterwards.
type Form struct {
	title     string
	subtitle  string
	inputs    []textinput.Model
	labels    []string
	focused   int
	confirm   string // confirmation prompt; empty submits directly
	err       error
	activeCmd string

	confirming bool
	submitted  bool
	canceled   bool
}

// NewForm builds a form. confirm is the question asked before submitting,
// or "" to submit on enter.
func NewForm(title, subtitle string, fields []FormField, confirm string) Form {
	f := Form{
		title:    title,
		subtitle: subtitle,
		inputs:   make([]textinput.Model, len(fields)),
		labels:   make([]string, len(fields)),
		confirm:  confirm,
	}
	for i, field := range fields {
		in := textinput.New()
		in.Placeholder = field.Placeholder
		in.SetValue(field.Value)
		in.CharLimit = field.CharLimit
		if in.CharLimit == 0 {
			in.CharLimit = 255
		}
		in.Width = field.Width
		if in.Width == 0 {
			in.Width = 42
		}
		in.Prompt = "│ "
		if field.Secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.inputs[i] = in
		f.labels[i] = field.Label
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// Focus moves the cursor to field i.
func (f *Form) Focus(i int) {
	if i < 0 || i >= len(f.inputs) {
		return
	}
	f.focused = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// Values returns the current text of every field in order.
func (f Form) Values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = in.Value()
	}
	return out
}

// SetError shows err above the fields and returns the form to editing.
func (f *Form) SetError(err error) {
	f.err = err
	f.submitted = false
	f.confirming = false
}

// Submitted reports whether the user submitted the form.
func (f Form) Submitted() bool { return f.submitted }

// Canceled reports whether the user abandoned the form.
func (f Form) Canceled() bool { return f.canceled }

// Reset clears the submitted state so the form can be submitted again.
func (f *Form) Reset() {
	f.submitted = false
	f.canceled = false
	f.confirming = false
}

func (f Form) Init() tea.Cmd {
	return textinput.Blink
}

func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	switch msg := msg.(type) {
	case ClearActiveCmdMsg:
		f.activeCmd = ""
		return f, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			f.canceled = true
			return f, nil

		case "enter":
			switch {
			case f.confirming:
				f.submitted = true
				f.confirming = false
			case f.focused < len(f.inputs)-1:
				f.Focus(f.focused + 1)
			case f.confirm == "":
				f.submitted = true
			default:
				f.confirming = true
			}
			return f, nil

		case "y", "Y":
			if f.confirming {
				f.submitted = true
				f.confirming = false
				return f, nil
			}

		case "n", "N":
			if f.confirming {
				f.confirming = false
				return f, nil
			}

		case "tab", "shift+tab", "up", "down":
			if f.confirming {
				return f, nil
			}
			next := f.focused + 1
			if msg.String() == "up" || msg.String() == "shift+tab" {
				next = f.focused - 1
			}
			if next < 0 {
				next = len(f.inputs) - 1
			} else if next >= len(f.inputs) {
				next = 0
			}
			f.Focus(next)
			f.activeCmd = "tab"
			return f, HighlightCmd()
		}
	}

	if f.confirming {
		return f, nil
	}
	cmds := make([]tea.Cmd, len(f.inputs))
	for i := range f.inputs {
		f.inputs[i], cmds[i] = f.inputs[i].Update(msg)
	}
	return f, tea.Batch(cmds...)
}

func (f Form) View() string {
	outerStyle := lipgloss.NewStyle().Padding(2, 4)

	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#444444"})
	formLabel := lipgloss.NewStyle().
		Foreground(ColorGray).
		Width(12).
		Align(lipgloss.Right).
		PaddingRight(1)
	formLabelActive := formLabel.
		Foreground(ColorYellow).
		Bold(true)

	const w = 58
	sep := sepStyle.Render(strings.Repeat("─", w))

	var b strings.Builder

	b.WriteString(StyleHeader.Render(f.title))
	b.WriteString("\n")
	if f.subtitle != "" {
		b.WriteString(StyleHelp.Render(f.subtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(sep)
	b.WriteString("\n\n")

	if f.err != nil {
		b.WriteString(StyleError.Render(fmt.Sprintf("Error: %v", f.err)))
		b.WriteString("\n\n")
	}

	for i, label := range f.labels {
		if i == f.focused && !f.confirming {
			b.WriteString(formLabelActive.Render("› " + label))
		} else {
			b.WriteString(formLabel.Render(label))
		}
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(sep)
	b.WriteString("\n")

	if f.confirming {
		b.WriteString(StyleHighlight.Render("  " + f.confirm + " "))
		b.WriteString(StyleHelp.Render("Y/n"))
	} else {
		b.WriteString(RenderFooterBar([]ShortcutEntry{
			{Key: "tab", Label: "Tab/↑↓ navigate"},
			{Key: "enter", Label: "enter submit"},
			{Key: "", Label: "esc cancel"},
		}, f.activeCmd))
	}
	b.WriteString("\n")

	innerPadding := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return outerStyle.Render(StyleBorder.Render(innerPadding.Render(b.String())))
}

// formProgram runs a Form as its own program and quits once it is done.
type formProgram struct {
	form     Form
	validate func([]string) error
}

func (p formProgram) Init() tea.Cmd { return p.form.Init() }

func (p formProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	p.form, cmd = p.form.Update(msg)
	if p.form.Canceled() {
		return p, tea.Quit
	}
	if p.form.Submitted() {
		if p.validate != nil {
			if err := p.validate(p.form.Values()); err != nil {
				p.form.SetError(err)
				return p, cmd
			}
		}
		return p, tea.Quit
	}
	return p, cmd
}

func (p formProgram) View() string {
	if p.form.Submitted() || p.form.Canceled() {
		return ""
	}
	return p.form.View()
}

// RunForm launches form full screen and returns its values. validate, if
// set, keeps the form open until it passes.
func RunForm(form Form, validate func([]string) error) ([]string, error) {
	p := tea.NewProgram(formProgram{form: form, validate: validate}, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running form: %w", err)
	}

	fm, ok := finalModel.(formProgram)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	if fm.form.Canceled() || !fm.form.Submitted() {
		return nil, fmt.Errorf("canceled")
	}
	return fm.form.Values(), nil
}
