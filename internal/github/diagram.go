package github

import (
	"fmt"
	"sort"
	"strings"

	"strand.dev/strand/internal/engine"
)

// StackCommentMarker is the hidden marker that identifies the stack-overview
// comment so it can be edited in place instead of duplicated.
const StackCommentMarker = "<!-- strand-diagram -->"

// StackDiagram renders the tracked tree as a mermaid graph for a PR comment.
// The current branch is highlighted and nodes with a review url are clickable.
func StackDiagram(stack *engine.Stack, currentBranch string) string {
	lines := []string{
		StackCommentMarker,
		"## Stack Overview",
		"",
		"```mermaid",
		"graph TD",
		fmt.Sprintf("    %s[%s]", stack.Trunk, stack.Trunk),
	}

	names := make([]string, 0, len(stack.Branches))
	for name := range stack.Branches {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		info := stack.Branches[name]

		// Quoted labels avoid mermaid parsing issues with brackets
		if info.ReviewURL != nil && *info.ReviewURL != "" {
			url := *info.ReviewURL
			segments := strings.Split(url, "/")
			prNum := segments[len(segments)-1]
			lines = append(lines, fmt.Sprintf("    %s[\"%s #%s\"]", name, name, prNum))
			lines = append(lines, fmt.Sprintf("    click %s href %q _blank", name, url))
		} else {
			lines = append(lines, fmt.Sprintf("    %s[%s]", name, name))
		}

		lines = append(lines, fmt.Sprintf("    %s --> %s", info.Parent, name))

		if name == currentBranch {
			lines = append(lines, fmt.Sprintf("    style %s fill:#90EE90", name))
		}
	}

	lines = append(lines, "```", "", "*Updated by strand*")
	return strings.Join(lines, "\n")
}
