package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/recastml/recast/analyze"
	"github.com/recastml/recast/dialect"
)

// Play opens an interactive prompt that compiles a source snippet into
// every selected dialect as you type.
type Play struct {
	Source string `arg:"" help:"Source file to preload" optional:"" type:"existingfile"`

	Target []string `default:"jsx,handlebars,liquid,twig,blade" help:"Target dialect(s)" name:"target" short:"t"`
}

// Run executes the play command.
func (p *Play) Run(ctx context.Context) error {
	reg := builtins()

	targets := make([]dialect.Renderer, 0, len(p.Target))

	for _, name := range p.Target {
		r, err := reg.Lookup(name)
		if err != nil {
			return err
		}

		targets = append(targets, r)
	}

	initial := ""

	if p.Source != "" {
		text, err := os.ReadFile(p.Source)
		if err != nil {
			return ErrReadSource.Wrap(err)
		}

		initial = strings.TrimSpace(string(text))
	}

	prog := tea.NewProgram(
		newPlayModel(targets, passThroughTagsFrom(ctx), initial),
		tea.WithContext(ctx),
	)

	_, err := prog.Run()

	return err
}

var (
	playTitleStyle = lipgloss.NewStyle().Bold(true)
	playNameStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	playPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	playErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1"))
)

// playModel is the bubbletea model behind the play command.
type playModel struct {
	input   textinput.Model
	targets []dialect.Renderer
	tags    []string
	width   int
}

func newPlayModel(
	targets []dialect.Renderer,
	tags []string,
	initial string,
) playModel {
	input := textinput.New()
	input.Placeholder = `<Loop items="products" as="p"><li>{{p.name}}</li></Loop>`
	input.SetValue(initial)
	input.Focus()

	return playModel{
		input:   input,
		targets: targets,
		tags:    tags,
	}
}

// Init implements tea.Model.
func (m playModel) Init() tea.Cmd { return textinput.Blink }

// Update implements tea.Model.
func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// View implements tea.Model.
func (m playModel) View() string {
	var b strings.Builder

	b.WriteString(playTitleStyle.Render("recast play"))
	b.WriteString("  (esc to quit)\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	src := strings.TrimSpace(m.input.Value())
	if src == "" {
		return b.String()
	}

	for _, r := range m.targets {
		b.WriteString("\n")
		b.WriteString(playNameStyle.Render(r.Info().Name))
		b.WriteString("\n")
		b.WriteString(playPaneStyle.Render(m.preview(src, r)))
		b.WriteString("\n")
	}

	return b.String()
}

// preview compiles the snippet for one target, folding any failure into
// the pane text.
func (m playModel) preview(src string, r dialect.Renderer) string {
	unit, err := analyze.Parse(
		context.Background(),
		src,
		analyze.WithPassThroughTags(m.tags...),
	)
	if err != nil {
		return playErrStyle.Render(err.Error())
	}

	res, err := dialect.Transform(context.Background(), unit, r)
	if err != nil {
		return playErrStyle.Render(err.Error())
	}

	return res.Output
}
