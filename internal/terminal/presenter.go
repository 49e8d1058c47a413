// Package terminal renders a session on a text terminal and reads the
// user's answers from an input stream.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/atotto/clipboard"

	"github.com/yourusername/racehub/internal/models"
	"github.com/yourusername/racehub/internal/render"
)

// Options tunes a Presenter
type Options struct {
	// AssumeYes answers every confirmation with yes without reading input
	AssumeYes bool
	// HideViews suppresses race tables and calendars, for one-shot commands
	// that only care about a workflow's outcome
	HideViews bool
	// LoginHint is printed when the backend asks for a login
	LoginHint string
}

// Presenter implements session.Presenter on an io.Reader/io.Writer pair.
// mu serializes output and state; inMu serializes reads.
type Presenter struct {
	mu     sync.Mutex
	inMu   sync.Mutex
	in     *bufio.Reader
	out    io.Writer
	labels render.Labels
	opts   Options

	// copy writes to the system clipboard
	copy func(text string) error

	mode         models.ViewMode
	userControls bool
}

// New creates a presenter reading answers from in and writing to out
func New(in io.Reader, out io.Writer, labels render.Labels, opts Options) *Presenter {
	if opts.LoginHint == "" {
		opts.LoginHint = "Not logged in. Run `racehub login EMAIL` to sign in."
	}
	return &Presenter{
		in:     bufio.NewReader(in),
		out:    out,
		labels: labels,
		opts:   opts,
		copy:   clipboard.WriteAll,
	}
}

func (p *Presenter) println(a ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, a...)
}

// Write writes b to the output, serialized with everything else the
// presenter prints
func (p *Presenter) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out.Write(b)
}

func (p *Presenter) printf(format string, a ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, a...)
}

// Render prints the table, the calendar or the empty placeholder
func (p *Presenter) Render(view render.View) {
	if p.opts.HideViews {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case view.Empty:
		fmt.Fprintln(p.out, view.Placeholder)
	case view.Calendar != nil:
		p.writeCalendar(view.Calendar)
	case view.Table != nil:
		p.writeTable(view.Table)
	}
}

func (p *Presenter) writeTable(t *render.Table) {
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		name := row.Name
		if row.Distance != "" {
			name += " (" + row.Distance + ")"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.RaceID, row.Date, name, row.Sport, row.Location, row.Status.Label, actionLabels(row.Actions))
	}
	w.Flush()
}

func (p *Presenter) writeCalendar(c *render.Calendar) {
	for i, group := range c.Groups {
		if i > 0 {
			fmt.Fprintln(p.out)
		}
		fmt.Fprintln(p.out, group.Heading)
		fmt.Fprintln(p.out, strings.Repeat("=", len([]rune(group.Heading))))

		w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
		for _, card := range group.Cards {
			day := "--"
			if card.Day > 0 {
				day = fmt.Sprintf("%s %02d", card.Weekday, card.Day)
			}
			actions := []render.Action{card.Delete}
			if card.ResultButton != nil {
				actions = []render.Action{*card.ResultButton, card.Delete}
			}
			fmt.Fprintf(w, "%s\t[%s]\t%s\t%s\t%s\t%s\t%s\n",
				day, card.RaceID, card.Name, card.Location, card.SportLine, card.Status.Label, actionLabels(actions))
		}
		w.Flush()
	}
}

func actionLabels(actions []render.Action) string {
	labels := make([]string, 0, len(actions))
	for _, a := range actions {
		labels = append(labels, a.Label)
	}
	return strings.Join(labels, " | ")
}

// SetActiveView records the selected presentation
func (p *Presenter) SetActiveView(mode models.ViewMode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
}

// SetUserControlsVisible records whether a user is signed in
func (p *Presenter) SetUserControlsVisible(visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.userControls = visible
}

// UserControlsVisible reports the last state set by the session
func (p *Presenter) UserControlsVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.userControls
}

// ShowLoginPrompt prints the login hint
func (p *Presenter) ShowLoginPrompt() { p.println(p.opts.LoginHint) }

// HideLoginPrompt is a no-op on a terminal
func (p *Presenter) HideLoginPrompt() {}

// ShowLoginError prints msg; an empty msg prints nothing
func (p *Presenter) ShowLoginError(msg string) {
	if msg != "" {
		p.println(msg)
	}
}

// ShowLoading prints msg. Printed lines cannot be taken back, so restore does nothing.
func (p *Presenter) ShowLoading(msg string) func() {
	p.println(msg)
	return func() {}
}

func (p *Presenter) SetSearchEnabled(enabled bool) {}

func (p *Presenter) ClearSearchInput() {}

// ShowCandidate prints the candidate panel
func (p *Presenter) ShowCandidate(panel render.Panel) { p.writePanel(panel) }

func (p *Presenter) HideCandidate() {}

// ShowResult prints a result panel
func (p *Presenter) ShowResult(panel render.Panel) { p.writePanel(panel) }

func (p *Presenter) writePanel(panel render.Panel) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.out, panel.Title)
	w := tabwriter.NewWriter(p.out, 0, 0, 1, ' ', 0)
	for _, f := range panel.Fields {
		fmt.Fprintf(w, "  %s:\t%s\n", f.Label, f.Value)
	}
	w.Flush()
	if panel.Message != "" {
		fmt.Fprintln(p.out, panel.Message)
	}
}

// ShowProfileEditor prints the current profile name
func (p *Presenter) ShowProfileEditor(name string) {
	p.println(p.labels.Panels.Runner+":", name)
}

func (p *Presenter) HideProfileEditor() {}

// ShowShareLink prints the share link on its own line
func (p *Presenter) ShowShareLink(url string) { p.println(url) }

func (p *Presenter) HideShareLink() {}

// CopyToClipboard writes text to the system clipboard
func (p *Presenter) CopyToClipboard(text string) error {
	return p.copy(text)
}

// SetCopyLabel prints the copy confirmation; the idle label is not printed
func (p *Presenter) SetCopyLabel(label string) {
	if label == p.labels.Messages.CopyLabel {
		return
	}
	p.println(label)
}

// Alert prints msg
func (p *Presenter) Alert(msg string) { p.println(msg) }

// Confirm asks a yes/no question. Anything but an explicit yes is a no.
func (p *Presenter) Confirm(msg string) bool {
	if p.opts.AssumeYes {
		p.printf("%s [y/N] y\n", msg)
		return true
	}

	p.printf("%s [y/N] ", msg)
	line, ok := p.ReadLine()
	if !ok {
		p.println()
		return false
	}
	switch strings.ToLower(line) {
	case "y", "yes", "s", "si", "sí":
		return true
	default:
		return false
	}
}

// Prompt reads one line of free text. End of input counts as cancel.
func (p *Presenter) Prompt(msg string) (string, bool) {
	p.printf("%s ", msg)
	line, ok := p.ReadLine()
	if !ok {
		p.println()
	}
	return line, ok
}

// ReadLine reads one line of input, reporting false at end of input. Output
// is not blocked while waiting.
func (p *Presenter) ReadLine() (string, bool) {
	p.inMu.Lock()
	defer p.inMu.Unlock()

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// Reload prints a separator; nothing drawn earlier can be erased
func (p *Presenter) Reload() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.userControls = false
	fmt.Fprintln(p.out, "----")
}
