package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/orbit/pkg/perm"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// maxDetailMoves caps the moves listed under the table.
const maxDetailMoves = 12

// =============================================================================
// GeneratorListModel - Interactive generator browser
// =============================================================================

// GeneratorListModel is the bubbletea model for browsing generators.
type GeneratorListModel struct {
	Generators []*perm.Permutation
	Names      func(v int) string
	Cursor     int
	Selected   int
	Height     int
	Offset     int
}

// NewGeneratorListModel creates a browser over gens. names maps a variable
// to its display name. Selected is -1 until the user picks a generator.
func NewGeneratorListModel(gens []*perm.Permutation, names func(v int) string) GeneratorListModel {
	return GeneratorListModel{
		Generators: gens,
		Names:      names,
		Selected:   -1,
		Height:     10,
	}
}

func (m GeneratorListModel) Init() tea.Cmd {
	return nil
}

func (m GeneratorListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Generators)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Generators) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// Leave room for the header and the detail pane.
		m.Height = max(msg.Height-maxDetailMoves-10, 3)
	}
	return m, nil
}

func (m GeneratorListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Generators"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if len(m.Generators) == 0 {
		b.WriteString(listDimStyle.Render("  no symmetries"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Generators))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		p := m.Generators[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		vars := p.MovedVars()
		names := make([]string, len(vars))
		for j, v := range vars {
			names[j] = m.Names(v)
		}
		moved := strings.Join(names, " ")
		if moved == "" {
			moved = "-"
		}
		rows = append(rows, []string{cursor, strconv.Itoa(i), strconv.Itoa(p.Order()), strconv.Itoa(len(p.Cycles())), moved})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Order", "Cycles", "Variables").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(m.detail(m.Generators[m.Cursor]))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Generators))))

	return b.String()
}

// detail lists the facts the generator moves.
func (m GeneratorListModel) detail(p *perm.Permutation) string {
	var b strings.Builder
	moves := p.Moves()
	for i, mv := range moves {
		if i == maxDetailMoves {
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  ... %d more", len(moves)-i)))
			b.WriteString("\n")
			break
		}
		fmt.Fprintf(&b, "  %s=%d %s %s=%d\n",
			m.Names(mv.From.Var), mv.From.Val, iconArrow, m.Names(mv.To.Var), mv.To.Val)
	}
	return b.String()
}
