package output

import (
	"strings"

	"strand.dev/strand/internal/engine"
)

// TreeRenderer renders the tracked branch tree for the log command
type TreeRenderer struct {
	stack         *engine.Stack
	currentBranch string
	plain         bool
}

// NewTreeRenderer creates a renderer for the given stack. plain disables
// styling regardless of terminal detection, used in tests.
func NewTreeRenderer(stack *engine.Stack, currentBranch string, plain bool) *TreeRenderer {
	return &TreeRenderer{
		stack:         stack,
		currentBranch: currentBranch,
		plain:         plain,
	}
}

// Render returns the tree as lines, trunk first
func (r *TreeRenderer) Render() []string {
	lines := []string{r.branchLine(r.stack.Trunk, true)}
	lines = append(lines, r.renderChildren(r.stack.Trunk, "")...)
	return lines
}

func (r *TreeRenderer) renderChildren(name, prefix string) []string {
	children := r.stack.Children(name)

	var lines []string
	for i, child := range children {
		last := i == len(children)-1

		connector := "├── "
		childPrefix := prefix + "│   "
		if last {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		lines = append(lines, prefix+connector+r.branchLine(child, false))
		lines = append(lines, r.renderChildren(child, childPrefix)...)
	}
	return lines
}

func (r *TreeRenderer) branchLine(name string, isTrunk bool) string {
	isCurrent := name == r.currentBranch

	marker := "◯"
	if isCurrent {
		marker = "◉"
	}

	label := name
	if !r.plain {
		if isTrunk {
			label = ColorTrunk(name)
		} else {
			label = ColorBranchName(name, isCurrent)
		}
	}

	var suffix string
	if info, ok := r.stack.Branches[name]; ok && info.ReviewURL != nil && *info.ReviewURL != "" {
		url := *info.ReviewURL
		if r.plain {
			suffix = " " + url
		} else {
			suffix = " " + ColorDim(url)
		}
	}

	return strings.TrimRight(marker+" "+label+suffix, " ")
}
