package chat

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Natnat0905/GeoChat/internal/ui/theme"
)

func (s *ChatScreen) View(width, height int) string {
	textWidth := width - 6
	if textWidth > 78 {
		textWidth = 78
	}
	if textWidth < 10 {
		textWidth = 10
	}

	var b strings.Builder

	if len(s.turns) == 0 && !s.waiting {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  Ask about circles, rectangles, triangles, or trig functions."))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(`  Say "draw" or "sketch" to get a diagram saved beside the answer.`))
		b.WriteString("\n")
	}

	body := lipgloss.NewStyle().Width(textWidth).Foreground(theme.Text)
	errBody := lipgloss.NewStyle().Width(textWidth).Foreground(theme.Error)

	for _, t := range s.turns {
		label := theme.UserLabel.Render(t.role)
		if t.role == roleTutor {
			label = theme.TutorLabel.Render(t.role)
		}
		b.WriteString("  " + label + "\n")

		style := body
		if t.isErr {
			style = errBody
		}
		b.WriteString(indent(style.Render(t.text), 2))
		b.WriteString("\n")

		if t.imagePath != "" {
			b.WriteString("  " + theme.Hint.Render("diagram saved to "+t.imagePath))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if s.waiting {
		b.WriteString("  " + s.spin.View() + theme.Hint.Render(" thinking..."))
		b.WriteString("\n\n")
	}

	transcript := tailLines(b.String(), height-2)
	prompt := "  " + s.input.View()

	gap := height - lipgloss.Height(transcript) - lipgloss.Height(prompt)
	if gap < 0 {
		gap = 0
	}

	return transcript + strings.Repeat("\n", gap) + prompt
}

// indent prefixes every line of block with n spaces.
func indent(block string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

// tailLines keeps the last max lines so the newest exchange stays visible.
func tailLines(s string, max int) string {
	if max <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= max {
		return s
	}
	return strings.Join(lines[len(lines)-max:], "\n")
}
