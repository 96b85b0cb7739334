package output

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	currentBranchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	trunkStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	dimStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	prNumberStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	warnStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// colorEnabled reports whether styled output should be produced. Styling is
// skipped when stdout is not a terminal, NO_COLOR is set, or the terminal
// advertises no color support.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

func styled(style lipgloss.Style, s string) string {
	if !colorEnabled() {
		return s
	}
	return style.Render(s)
}

// ColorBranchName styles a branch name, emphasizing the current branch
func ColorBranchName(name string, isCurrent bool) string {
	if isCurrent {
		return styled(currentBranchStyle, name)
	}
	return name
}

// ColorTrunk styles the trunk branch name
func ColorTrunk(name string) string {
	return styled(trunkStyle, name)
}

// ColorDim styles secondary text
func ColorDim(s string) string {
	return styled(dimStyle, s)
}

// ColorPRNumber styles a pull request number
func ColorPRNumber(prNumber int) string {
	return styled(prNumberStyle, fmt.Sprintf("#%d", prNumber))
}

// ColorWarn styles warning text
func ColorWarn(s string) string {
	return styled(warnStyle, s)
}
