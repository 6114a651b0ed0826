package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/kursarscript/kspl/ext/economy"
	"github.com/kursarscript/kspl/ext/vr"
	"github.com/kursarscript/kspl/kspl"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	interp      *kspl.Interp
	out         *bytes.Buffer
	pending     []string
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
	CtrlV key.Binding
	CtrlH key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	CtrlV: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "toggle vars"),
	),
	CtrlH: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

// newREPLInterp builds the persistent session interpreter with the
// economy and VR hosts bound and print captured in a buffer.
func newREPLInterp() (*kspl.Interp, *bytes.Buffer) {
	out := &bytes.Buffer{}
	interp := kspl.New(kspl.Config{Output: out})
	vr.Register(interp, vr.NewLocalEnvironment(out))
	economy.Register(interp, nil)
	return interp, out
}

func newREPLModel() replModel {
	ti := textinput.New()
	ti.Placeholder = "type a statement..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "kspl> "

	interp, out := newREPLInterp()

	return replModel{
		textInput:  ti,
		interp:     interp,
		out:        out,
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			m.pending = nil
			m.textInput.Prompt = "kspl> "
			return m, nil

		case key.Matches(msg, keys.CtrlV):
			m.showVars = !m.showVars
			return m, nil

		case key.Matches(msg, keys.CtrlH):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" && len(m.pending) == 0 {
				return m, nil
			}

			if strings.HasPrefix(input, ":") && len(m.pending) == 0 {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(input)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			m = m.submitLine(input)
			m.textInput.SetValue("")
			if input != "" {
				m.cmdHistory = append(m.cmdHistory, input)
			}
			m.historyIdx = -1
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// submitLine buffers input until its braces balance, then runs the
// whole block on the session interpreter.
func (m replModel) submitLine(input string) replModel {
	m.pending = append(m.pending, input)
	joined := strings.Join(m.pending, "\n")
	if braceDepth(joined) > 0 {
		m.history = append(m.history, historyEntry{input: input})
		m.textInput.Prompt = "  ... "
		return m
	}

	m.pending = nil
	m.textInput.Prompt = "kspl> "
	output, isErr := m.evaluate(joined)
	m.history = append(m.history, historyEntry{
		input:  input,
		output: output,
		isErr:  isErr,
	})
	return m
}

// braceDepth reports open minus closed blocks in source.
func braceDepth(source string) int {
	depth := 0
	for _, tok := range kspl.Scan(source) {
		switch tok.Type {
		case kspl.TokenBlockOpen:
			depth++
		case kspl.TokenBlockClose:
			depth--
		}
	}
	return depth
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":reset", ":r":
		m.interp, m.out = newREPLInterp()
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Session reset",
		})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	if input == "" {
		return m
	}

	words := strings.Fields(input)
	if len(words) == 0 {
		return m
	}
	lastWord := words[len(words)-1]

	var completions []string

	builtins := []string{
		"print", "len", "str", "int", "float", "bool",
		"create_virtucard", "transfer", "uuid", "VirtualItem",
		"Avatar", "VirtualTerminal", "get_avatar", "create_portal", "get_environment",
	}
	for _, b := range builtins {
		if strings.HasPrefix(b, lastWord) {
			completions = append(completions, b)
		}
	}

	keywords := []string{"class", "fn", "field", "let", "return", "if", "else", "true", "false", "null", "self"}
	for _, k := range keywords {
		if strings.HasPrefix(k, lastWord) {
			completions = append(completions, k)
		}
	}

	for name := range m.interp.Globals() {
		if strings.HasPrefix(name, lastWord) {
			completions = append(completions, name)
		}
	}

	if len(completions) == 1 {
		prefix := strings.TrimSuffix(input, lastWord)
		m.textInput.SetValue(prefix + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		sort.Strings(completions)
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(completions, ", "),
		})
	}

	return m
}

// evaluate runs source on the session interpreter and renders print
// output plus the value of a bare expression or simple assignment.
func (m replModel) evaluate(source string) (string, bool) {
	m.out.Reset()
	wrapped, echo := replEcho(source)
	if err := m.interp.Run(context.Background(), wrapped); err != nil {
		return kspl.FormatErrorWithSource(err, wrapped), true
	}

	output := strings.TrimRight(m.out.String(), "\n")
	if echo != "" {
		if val, ok := m.interp.Global(echo); ok && !val.IsNull() {
			if output != "" {
				return output + "\n" + val.String(), false
			}
			return val.String(), false
		}
	}
	if output == "" {
		return "ok", false
	}
	return output, false
}

// replEcho decides how to echo a submission. A single expression line
// is rebound to _ so its value can be shown; a simple let or assign
// echoes the bound name.
func replEcho(source string) (string, string) {
	tokens := kspl.Scan(source)
	if len(tokens) != 2 {
		return source, ""
	}
	switch tokens[0].Type {
	case kspl.TokenStmt:
		return "_ = " + tokens[0].Expr, "_"
	case kspl.TokenLet:
		return source, tokens[0].Text
	case kspl.TokenAssign:
		if strings.Contains(tokens[0].Text, ".") {
			return source, ""
		}
		return source, tokens[0].Text
	}
	return source, ""
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("KursarScript REPL")
	version := mutedStyle.Render("v0.1.0")
	b.WriteString(header + " " + version + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(m.width-2, 60))) + "\n\n")

	reservedLines := 9
	if m.showHelp {
		reservedLines += 10
	}
	globals := m.interp.Globals()
	if m.showVars {
		reservedLines += len(globals) + 3
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		if entry.output != "" {
			if entry.isErr {
				b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
			} else {
				b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n")
			}
			b.WriteString("\n")
		}
	}

	if m.showVars {
		b.WriteString(renderVarsPanel(globals, m.width))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel(m.width))
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	b.WriteString(renderStatusLine(globals) + "\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+v") + helpDescStyle.Render(" vars  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

// renderStatusLine summarizes the session: binding count and the
// credits held across VirtuCards bound in globals.
func renderStatusLine(globals map[string]kspl.Value) string {
	total := economy.Credits(0)
	seen := make(map[string]struct{})
	bindings := 0
	for _, val := range globals {
		if val.Kind() == kspl.KindBuiltin {
			continue
		}
		bindings++
		card, ok := val.Host().(*economy.VirtuCard)
		if !ok {
			continue
		}
		if _, dup := seen[card.ID]; dup {
			continue
		}
		seen[card.ID] = struct{}{}
		total += card.Balance
	}
	return mutedStyle.Render(fmt.Sprintf("%d bindings · %s in play", bindings, economy.FormatCredits(total)))
}

func renderVarsPanel(globals map[string]kspl.Value, width int) string {
	names := make([]string, 0, len(globals))
	for name, val := range globals {
		if val.Kind() == kspl.KindBuiltin {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return borderStyle.Render(mutedStyle.Render("No variables defined"))
	}
	sort.Strings(names)

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Variables"))
	varNameStyle := lipgloss.NewStyle().Foreground(highlightColor)
	for _, name := range names {
		line := fmt.Sprintf("  %s = %s", varNameStyle.Render(name), globals[name].String())
		lines = append(lines, line)
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel(width int) string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate command history"},
		{"Tab", "Autocomplete"},
		{"Enter", "Execute statement or open a block"},
		{":help", "Toggle this help"},
		{":vars", "Toggle variables panel"},
		{":clear", "Clear history"},
		{":reset", "Reset the session"},
		{":quit", "Exit REPL"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func runREPL() error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("kspl repl: requires a terminal")
	}
	p := tea.NewProgram(newREPLModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
