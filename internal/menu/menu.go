package menu

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Color is a named color understood by the status-bar host.
type Color string

const (
	Red    Color = "red"
	Orange Color = "orange"
	Green  Color = "green"
)

// Line is one entry of the menu body. Only non-zero fields are
// rendered as attributes after the " | " separator.
type Line struct {
	Text      string
	Color     Color
	Href      string
	Bash      string
	Params    []string
	Length    int
	Alternate bool
}

func (l Line) String() string {
	var attrs []string
	if l.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color='%s'", l.Color))
	}
	if l.Href != "" {
		attrs = append(attrs, fmt.Sprintf("href='%s'", l.Href))
	}
	if l.Bash != "" {
		attrs = append(attrs, fmt.Sprintf("bash='%s'", l.Bash))
		for i, p := range l.Params {
			attrs = append(attrs, fmt.Sprintf("param%d='%s'", i+1, p))
		}
		attrs = append(attrs, "terminal=false")
	}
	if l.Length > 0 {
		attrs = append(attrs, fmt.Sprintf("length=%d", l.Length))
	}
	if l.Alternate {
		attrs = append(attrs, "alternate=true")
	}
	if len(attrs) == 0 {
		return l.Text
	}
	return l.Text + " | " + strings.Join(attrs, " ")
}

// Menu accumulates the title and body lines and renders them in one
// payload. Call order is emission order.
type Menu struct {
	out   io.Writer
	title Line
	body  []string
}

func New(w io.Writer) *Menu {
	if w == nil {
		w = os.Stdout
	}
	return &Menu{out: w}
}

// Title overwrites the header line.
func (m *Menu) Title(text string, c Color) {
	m.title = Line{Text: text, Color: c}
}

// Add appends a top-level menu line.
func (m *Menu) Add(l Line) {
	m.body = append(m.body, l.String())
}

// Sub appends a line one level deeper than Add.
func (m *Menu) Sub(l Line) {
	m.body = append(m.body, "--"+l.String())
}

// Error discards everything accumulated so far and immediately emits
// the message as a red title. Used for fatal failures: the host shows
// only the error line.
func (m *Menu) Error(msg string) {
	m.body = nil
	m.Title(msg, Red)
	m.Print()
}

// Print emits the title, the separator, and the body.
func (m *Menu) Print() {
	fmt.Fprintln(m.out, m.title.String())
	fmt.Fprintln(m.out, "---")
	for _, line := range m.body {
		fmt.Fprintln(m.out, line)
	}
}
