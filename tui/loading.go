package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/jpartition/jpartition/internal/partition"
)

type LoadState int

const (
	LoadStateLoading LoadState = iota
	LoadStateLoaded
	LoadStateError
)

type partitionCompleteMsg struct {
	descriptors []partition.Descriptor
}

type partitionErrorMsg struct {
	err error
}

// startPartitioning runs the engine synchronously inside a tea.Cmd, matching
// the teacher's startIndexing pattern of wrapping a blocking call so the
// spinner keeps ticking while it runs.
func (m *Model) startPartitioning() tea.Cmd {
	return func() tea.Msg {
		descs, err := m.run()
		if err != nil {
			return partitionErrorMsg{err: err}
		}
		return partitionCompleteMsg{descriptors: descs}
	}
}

func (m *Model) renderLoadingView() string {
	borderStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBBlue)

	contentStyle := lipgloss.NewStyle().
		Width(m.width - 4).
		Height(m.height - 4).
		Align(lipgloss.Center, lipgloss.Center)

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(RGBPink)
	messageStyle := lipgloss.NewStyle().Foreground(RGBBlue)

	var content strings.Builder
	content.WriteString(m.loadingSpinner.View())
	content.WriteString(" ")
	content.WriteString(titleStyle.Render("Partitioning"))
	if m.message != "" {
		content.WriteString("\n\n")
		content.WriteString(messageStyle.Render(m.message))
	}

	return borderStyle.Render(contentStyle.Render(content.String()))
}

func (m *Model) renderErrorView() string {
	errorStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(RGBRed).
		Bold(true)

	msg := fmt.Sprintf("error partitioning input\n\n%v\n\nPress 'q' to quit", m.err)
	return errorStyle.Render(msg)
}

func createLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(RGBPink)
	return s
}
