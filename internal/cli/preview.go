package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/isotower/pkg/diagram"
	"github.com/matzehuels/isotower/pkg/errors"
	isoio "github.com/matzehuels/isotower/pkg/io"
	"github.com/matzehuels/isotower/pkg/render/live"
)

var (
	previewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	previewStatusStyle = lipgloss.NewStyle().Foreground(colorGray).Italic(true)
)

// changeMsg is sent whenever the live diagram changes state.
type changeMsg struct{}

// previewModel drives a live diagram from the keyboard. The cursor walks
// tiers bottom to top and hovers the tier under it.
type previewModel struct {
	diagram *live.Diagram
	cfg     *diagram.Config
	title   string
	output  string
	cursor  int
	status  string
	err     error
}

func newPreviewModel(d *live.Diagram, cfg *diagram.Config, title, output string) previewModel {
	return previewModel{diagram: d, cfg: cfg, title: title, output: output, cursor: live.NoTier}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changeMsg:
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.diagram.Unmount()
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(1)
		case "down", "j":
			m.moveCursor(-1)
		case "esc":
			if m.cursor != live.NoTier {
				m.diagram.Leave(m.cursor)
				m.cursor = live.NoTier
			}
		case "s":
			m.diagram.Settle()
			m.status = "settled"
		case "r":
			m.diagram.Unmount()
			if err := m.diagram.Mount(m.cfg); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.cursor = live.NoTier
			m.status = "replaying entrance"
		case "w":
			if err := os.WriteFile(m.output, m.diagram.Markup(), 0644); err != nil {
				m.status = "write failed: " + err.Error()
			} else {
				m.status = "wrote " + m.output
			}
		}
	}
	return m, nil
}

// moveCursor hovers the next tier in direction dir, entering the walk from
// the bottom or top when nothing is hovered.
func (m *previewModel) moveCursor(dir int) {
	n := len(m.cfg.Tiers)
	if n == 0 {
		return
	}
	next := m.cursor + dir
	if m.cursor == live.NoTier {
		next = 0
		if dir < 0 {
			next = n - 1
		}
	}
	if next < 0 || next >= n {
		return
	}
	if m.cursor != live.NoTier {
		m.diagram.Leave(m.cursor)
	}
	m.cursor = next
	m.diagram.Enter(next)
}

func (m previewModel) View() string {
	var b strings.Builder

	st := m.diagram.State()
	b.WriteString(StyleTitle.Render("Preview " + m.title))
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render("↑/↓ hover tier  esc clear  s settle  r replay  w write  q quit"))
	b.WriteString("\n\n")

	if s := m.diagram.Scene(); s != nil {
		b.WriteString(tierTable(s, func(tier int) string { return tierState(st, tier) }, st.Hovered))
		b.WriteString("\n")
	}

	pending := ""
	if st.Pending > 0 {
		pending = fmt.Sprintf(" · %d entering", st.Pending)
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("instance %s%s", shortInstance(st.Instance), pending)))
	if m.status != "" {
		b.WriteString("  " + previewStatusStyle.Render(m.status))
	}
	b.WriteString("\n")
	return b.String()
}

// tierState names the presentation state of one tier.
func tierState(st live.State, tier int) string {
	switch {
	case !st.Mounted:
		return "unmounted"
	case tier >= len(st.Entered) || !st.Entered[tier]:
		return "entering"
	case st.Hovered == tier:
		return "hovered"
	case st.Hovered != live.NoTier:
		return "dimmed"
	default:
		return "entered"
	}
}

func shortInstance(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (c *CLI) previewCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "preview <config>",
		Short: "Play the tier entrance and hover tiers in the terminal",
		Long: `Mount a config as a live diagram and drive it from the keyboard.

Tiers enter bottom to top. Use the arrow keys to hover a tier, which lifts
it and dims the rest. Press w to write the current state as SVG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = basePath("", args[0]) + ".preview.svg"
			}
			return c.runPreview(args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file written by the w key")
	return cmd
}

func (c *CLI) runPreview(input, output string) error {
	cfg, err := isoio.Import(input)
	if err != nil {
		return err
	}
	if err := errors.ValidatePath(output); err != nil {
		return err
	}

	d := live.New(live.WithLogger(c.Logger))
	if err := d.Mount(cfg); err != nil {
		return err
	}
	defer d.Unmount()

	p := tea.NewProgram(newPreviewModel(d, cfg, filepath.Base(input), output))
	// Key handlers change the diagram from inside Update, so the
	// notification must not wait for the event loop.
	d.OnChange(func() { go p.Send(changeMsg{}) })

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(previewModel); ok && m.err != nil {
		return m.err
	}
	return nil
}
