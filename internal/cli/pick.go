package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	lerrors "github.com/matzehuels/lineart/pkg/errors"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// imageEntry is one row of the picker.
type imageEntry struct {
	Path string
	Size int64 // bytes, -1 if unknown
}

// ImageListModel is the bubbletea model for choosing one source image.
type ImageListModel struct {
	Images   []imageEntry
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

// NewImageListModel creates a picker over paths.
func NewImageListModel(paths []string) ImageListModel {
	images := make([]imageEntry, len(paths))
	for i, p := range paths {
		images[i] = imageEntry{Path: p, Size: -1}
		if info, err := os.Stat(p); err == nil {
			images[i].Size = info.Size()
		}
	}
	return ImageListModel{Images: images, Height: 15}
}

func (m ImageListModel) Init() tea.Cmd {
	return nil
}

func (m ImageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Images)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Images) > 0 {
				m.Selected = m.Images[m.Cursor].Path
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m ImageListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Image"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Images))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		img := m.Images[i]
		rows = append(rows, []string{cursor, filepath.Base(img.Path), formatSize(img.Size)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Image", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case m.Offset+row == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			case col == 2:
				return listDimStyle
			default:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Images))))
	return b.String()
}

// pickImage runs the picker and returns the chosen path.
func pickImage(paths []string) (string, error) {
	if len(paths) == 0 {
		return "", lerrors.New(lerrors.ErrCodeInvalidInput, "no images to pick from")
	}
	final, err := tea.NewProgram(NewImageListModel(paths)).Run()
	if err != nil {
		return "", fmt.Errorf("picker: %w", err)
	}
	m, ok := final.(ImageListModel)
	if !ok || m.Selected == "" {
		return "", lerrors.New(lerrors.ErrCodeInvalidInput, "no image selected")
	}
	return m.Selected, nil
}

// formatSize renders a byte count as B, KB or MB.
func formatSize(n int64) string {
	switch {
	case n < 0:
		return "—"
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	}
}
