// Package engine provides the branch stack model and the persisted state for
// in-progress multi-branch operations. The stack is a tree of branch nodes
// rooted at the trunk; the trunk itself is never a node.
package engine

import (
	"fmt"
	"sort"

	stranderrors "strand.dev/strand/internal/errors"
)

// BranchInfo holds the tracked metadata for a single branch.
// Parent and Children are kept consistent by AddBranch/RemoveBranch; no other
// code path mutates them.
type BranchInfo struct {
	Parent    string   `json:"parent"`
	Children  []string `json:"children"`
	ReviewURL *string  `json:"reviewUrl"`
}

// Stack is the tracked branch tree, persisted to the repository config file.
type Stack struct {
	Trunk    string                 `json:"trunk"`
	Branches map[string]*BranchInfo `json:"branches"`

	// Condense controls whether a branch's history is squashed into a single
	// commit before each rebase. Nil means the default (enabled).
	Condense *bool `json:"condense,omitempty"`
}

// NewStack creates an empty stack rooted at the given trunk
func NewStack(trunk string) *Stack {
	return &Stack{
		Trunk:    trunk,
		Branches: map[string]*BranchInfo{},
	}
}

// CondenseEnabled reports whether history should be condensed before rebasing
func (s *Stack) CondenseEnabled() bool {
	if s.Condense == nil {
		return true
	}
	return *s.Condense
}

// IsTracked reports whether a branch is tracked by the stack
func (s *Stack) IsTracked(name string) bool {
	_, ok := s.Branches[name]
	return ok
}

// IsTrunk reports whether a branch name is the trunk
func (s *Stack) IsTrunk(name string) bool {
	return name == s.Trunk
}

// AddBranch registers a new branch under the given parent. The parent must be
// the trunk or an already tracked branch, and the name must be unused.
func (s *Stack) AddBranch(name, parent string) error {
	if s.IsTracked(name) || s.IsTrunk(name) {
		return stranderrors.NewBranchExistsError(name)
	}
	if !s.IsTrunk(parent) && !s.IsTracked(parent) {
		return stranderrors.NewBranchNotFoundError(parent)
	}

	if s.Branches == nil {
		s.Branches = map[string]*BranchInfo{}
	}
	s.Branches[name] = &BranchInfo{Parent: parent, Children: []string{}}

	// Trunk has no node, so only tracked parents carry a children list
	if info, ok := s.Branches[parent]; ok {
		info.Children = append(info.Children, name)
	}

	return nil
}

// RemoveBranch deletes a branch from the stack, reparenting its children to
// the removed branch's own parent.
func (s *Stack) RemoveBranch(name string) error {
	info, ok := s.Branches[name]
	if !ok {
		return stranderrors.NewBranchNotFoundError(name)
	}

	grandparent := info.Parent
	for _, child := range info.Children {
		s.Branches[child].Parent = grandparent
		if gp, ok := s.Branches[grandparent]; ok {
			gp.Children = append(gp.Children, child)
		}
	}

	if parent, ok := s.Branches[info.Parent]; ok {
		parent.Children = removeString(parent.Children, name)
	}

	delete(s.Branches, name)
	return nil
}

// SetParent reparents a branch under a new parent, keeping both children
// lists consistent. The new parent may be any branch name; callers validate
// that it exists. Only tracked parents carry a children list.
func (s *Stack) SetParent(name, newParent string) error {
	info, ok := s.Branches[name]
	if !ok {
		return stranderrors.NewBranchNotFoundError(name)
	}

	if oldParent, ok := s.Branches[info.Parent]; ok {
		oldParent.Children = removeString(oldParent.Children, name)
	}
	info.Parent = newParent
	if parent, ok := s.Branches[newParent]; ok {
		parent.Children = append(parent.Children, name)
	}

	return nil
}

// PathToRoot walks parent links from a branch up to the trunk and returns the
// path in trunk-first order, ending at the branch itself.
func (s *Stack) PathToRoot(name string) ([]string, error) {
	if s.IsTrunk(name) {
		return []string{s.Trunk}, nil
	}
	if !s.IsTracked(name) {
		return nil, stranderrors.NewBranchNotFoundError(name)
	}

	path := []string{name}
	visited := map[string]bool{name: true}
	current := name

	for !s.IsTrunk(current) {
		parent := s.Branches[current].Parent
		if visited[parent] {
			return nil, fmt.Errorf("cycle detected in branch tree at %s", parent)
		}
		visited[parent] = true
		path = append(path, parent)
		if s.IsTrunk(parent) {
			break
		}
		if !s.IsTracked(parent) {
			return nil, stranderrors.NewBranchNotFoundError(parent)
		}
		current = parent
	}

	// Reverse to trunk-first order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// Descendants returns every branch transitively parented under the given
// branch. For the trunk, that is every branch whose parent chain reaches the
// trunk. Revisiting a name fails fast rather than looping on a corrupted tree.
func (s *Stack) Descendants(name string) ([]string, error) {
	visited := map[string]bool{}
	var walk func(branch string) ([]string, error)
	walk = func(branch string) ([]string, error) {
		var descendants []string
		for _, child := range s.childrenOf(branch) {
			if visited[child] {
				return nil, fmt.Errorf("cycle detected in branch tree at %s", child)
			}
			visited[child] = true
			descendants = append(descendants, child)
			rest, err := walk(child)
			if err != nil {
				return nil, err
			}
			descendants = append(descendants, rest...)
		}
		return descendants, nil
	}
	return walk(name)
}

// childrenOf returns the direct children of a branch. The trunk has no node,
// so its children are computed from parent links.
func (s *Stack) childrenOf(name string) []string {
	if s.IsTrunk(name) {
		var children []string
		for branch, info := range s.Branches {
			if info.Parent == s.Trunk {
				children = append(children, branch)
			}
		}
		sort.Strings(children)
		return children
	}
	if info, ok := s.Branches[name]; ok {
		return info.Children
	}
	return nil
}

// Children returns the direct children of a branch (trunk included)
func (s *Stack) Children(name string) []string {
	return s.childrenOf(name)
}

// Parent returns the parent of a tracked branch, or empty string
func (s *Stack) Parent(name string) string {
	if info, ok := s.Branches[name]; ok {
		return info.Parent
	}
	return ""
}

// DependencyOrder permutes the given branch names so that ancestors precede
// descendants. Depth order is a valid topological order because every branch
// has exactly one parent: depth strictly increases along any parent chain.
// The sort is stable, so siblings keep their relative order.
func (s *Stack) DependencyOrder(names []string) []string {
	if len(names) == 0 {
		return []string{}
	}

	depth := func(name string) int {
		if s.IsTrunk(name) || !s.IsTracked(name) {
			return 0
		}
		path, err := s.PathToRoot(name)
		if err != nil {
			return 0
		}
		return len(path) - 1
	}

	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.SliceStable(sorted, func(i, j int) bool {
		return depth(sorted[i]) < depth(sorted[j])
	})
	return sorted
}

// StackScope returns the branches affected by an operation starting at the
// given branch: the path from trunk to the branch (trunk excluded) plus all
// descendants of every branch on that path, in dependency order.
func (s *Stack) StackScope(name string) ([]string, error) {
	if s.IsTrunk(name) || !s.IsTracked(name) {
		return []string{}, nil
	}

	path, err := s.PathToRoot(name)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var scope []string
	add := func(branch string) {
		if !seen[branch] {
			seen[branch] = true
			scope = append(scope, branch)
		}
	}

	for _, branch := range path {
		if s.IsTrunk(branch) {
			continue
		}
		add(branch)
		descendants, err := s.Descendants(branch)
		if err != nil {
			return nil, err
		}
		for _, d := range descendants {
			add(d)
		}
	}

	return s.DependencyOrder(scope), nil
}

func removeString(slice []string, value string) []string {
	result := slice[:0]
	for _, v := range slice {
		if v != value {
			result = append(result, v)
		}
	}
	return result
}
