package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	stranderrors "strand.dev/strand/internal/errors"
)

func buildTestStack(t *testing.T) *Stack {
	t.Helper()

	// main -> feature -> feature-ui
	//      -> other
	stack := NewStack("main")
	require.NoError(t, stack.AddBranch("feature", "main"))
	require.NoError(t, stack.AddBranch("feature-ui", "feature"))
	require.NoError(t, stack.AddBranch("other", "main"))
	return stack
}

func TestAddBranch(t *testing.T) {
	t.Run("adds branch under trunk", func(t *testing.T) {
		stack := NewStack("main")
		require.NoError(t, stack.AddBranch("feature", "main"))
		require.True(t, stack.IsTracked("feature"))
		require.Equal(t, "main", stack.Parent("feature"))
	})

	t.Run("links parent and child both ways", func(t *testing.T) {
		stack := buildTestStack(t)
		require.Equal(t, []string{"feature-ui"}, stack.Branches["feature"].Children)
		require.Equal(t, "feature", stack.Branches["feature-ui"].Parent)
	})

	t.Run("rejects duplicate branch", func(t *testing.T) {
		stack := buildTestStack(t)
		err := stack.AddBranch("feature", "main")
		require.ErrorIs(t, err, stranderrors.ErrBranchExists)
	})

	t.Run("rejects trunk as branch name", func(t *testing.T) {
		stack := buildTestStack(t)
		err := stack.AddBranch("main", "feature")
		require.ErrorIs(t, err, stranderrors.ErrBranchExists)
	})

	t.Run("rejects unknown parent", func(t *testing.T) {
		stack := buildTestStack(t)
		err := stack.AddBranch("new", "ghost")
		require.ErrorIs(t, err, stranderrors.ErrBranchNotFound)
	})
}

func TestRemoveBranch(t *testing.T) {
	t.Run("reparents children to grandparent", func(t *testing.T) {
		stack := buildTestStack(t)
		require.NoError(t, stack.RemoveBranch("feature"))

		require.False(t, stack.IsTracked("feature"))
		require.Equal(t, "main", stack.Parent("feature-ui"))
	})

	t.Run("updates grandparent children list", func(t *testing.T) {
		stack := NewStack("main")
		require.NoError(t, stack.AddBranch("a", "main"))
		require.NoError(t, stack.AddBranch("b", "a"))
		require.NoError(t, stack.AddBranch("c", "b"))

		require.NoError(t, stack.RemoveBranch("b"))
		require.Equal(t, []string{"c"}, stack.Branches["a"].Children)
		require.Equal(t, "a", stack.Parent("c"))
	})

	t.Run("rejects untracked branch", func(t *testing.T) {
		stack := buildTestStack(t)
		err := stack.RemoveBranch("ghost")
		require.ErrorIs(t, err, stranderrors.ErrBranchNotFound)
	})
}

func TestSetParent(t *testing.T) {
	t.Run("moves branch under new parent", func(t *testing.T) {
		stack := buildTestStack(t)
		require.NoError(t, stack.SetParent("feature-ui", "other"))

		require.Equal(t, "other", stack.Parent("feature-ui"))
		require.Empty(t, stack.Branches["feature"].Children)
		require.Equal(t, []string{"feature-ui"}, stack.Branches["other"].Children)
	})

	t.Run("moves branch to trunk", func(t *testing.T) {
		stack := buildTestStack(t)
		require.NoError(t, stack.SetParent("feature-ui", "main"))
		require.Equal(t, "main", stack.Parent("feature-ui"))
	})

	t.Run("accepts an untracked parent", func(t *testing.T) {
		// Callers validate existence; the model just records the link
		stack := buildTestStack(t)
		require.NoError(t, stack.SetParent("feature-ui", "hotfix"))
		require.Equal(t, "hotfix", stack.Parent("feature-ui"))
		require.Empty(t, stack.Branches["feature"].Children)
	})

	t.Run("rejects untracked branch", func(t *testing.T) {
		stack := buildTestStack(t)
		err := stack.SetParent("ghost", "main")
		require.ErrorIs(t, err, stranderrors.ErrBranchNotFound)
	})
}

func TestPathToRoot(t *testing.T) {
	t.Run("returns trunk-first path", func(t *testing.T) {
		stack := buildTestStack(t)
		path, err := stack.PathToRoot("feature-ui")
		require.NoError(t, err)
		require.Equal(t, []string{"main", "feature", "feature-ui"}, path)
	})

	t.Run("trunk path is just the trunk", func(t *testing.T) {
		stack := buildTestStack(t)
		path, err := stack.PathToRoot("main")
		require.NoError(t, err)
		require.Equal(t, []string{"main"}, path)
	})

	t.Run("fails on cycle", func(t *testing.T) {
		stack := buildTestStack(t)
		// Corrupt the tree directly; mutators would never produce this
		stack.Branches["feature"].Parent = "feature-ui"

		_, err := stack.PathToRoot("feature-ui")
		require.Error(t, err)
		require.Contains(t, err.Error(), "cycle")
	})
}

func TestDescendants(t *testing.T) {
	t.Run("returns transitive children", func(t *testing.T) {
		stack := buildTestStack(t)
		descendants, err := stack.Descendants("feature")
		require.NoError(t, err)
		require.Equal(t, []string{"feature-ui"}, descendants)
	})

	t.Run("trunk descendants cover every branch", func(t *testing.T) {
		stack := buildTestStack(t)
		descendants, err := stack.Descendants("main")
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"feature", "feature-ui", "other"}, descendants)
	})

	t.Run("leaf has no descendants", func(t *testing.T) {
		stack := buildTestStack(t)
		descendants, err := stack.Descendants("feature-ui")
		require.NoError(t, err)
		require.Empty(t, descendants)
	})

	t.Run("fails fast on corrupted children", func(t *testing.T) {
		stack := buildTestStack(t)
		stack.Branches["feature-ui"].Children = []string{"feature"}

		_, err := stack.Descendants("main")
		require.Error(t, err)
		require.Contains(t, err.Error(), "cycle")
	})
}

func TestDependencyOrder(t *testing.T) {
	t.Run("parents precede children", func(t *testing.T) {
		stack := buildTestStack(t)
		ordered := stack.DependencyOrder([]string{"feature-ui", "other", "feature"})
		require.Equal(t, []string{"other", "feature", "feature-ui"}, ordered)
	})

	t.Run("stable for equal depth", func(t *testing.T) {
		stack := buildTestStack(t)
		ordered := stack.DependencyOrder([]string{"other", "feature"})
		require.Equal(t, []string{"other", "feature"}, ordered)
	})

	t.Run("empty input", func(t *testing.T) {
		stack := buildTestStack(t)
		require.Empty(t, stack.DependencyOrder(nil))
	})
}

func TestStackScope(t *testing.T) {
	t.Run("mid-stack branch pulls ancestors and descendants", func(t *testing.T) {
		stack := buildTestStack(t)
		scope, err := stack.StackScope("feature")
		require.NoError(t, err)
		require.Equal(t, []string{"feature", "feature-ui"}, scope)
	})

	t.Run("leaf pulls full path plus siblings of nothing", func(t *testing.T) {
		stack := buildTestStack(t)
		scope, err := stack.StackScope("feature-ui")
		require.NoError(t, err)
		require.Equal(t, []string{"feature", "feature-ui"}, scope)
	})

	t.Run("independent stacks stay independent", func(t *testing.T) {
		stack := buildTestStack(t)
		scope, err := stack.StackScope("other")
		require.NoError(t, err)
		require.Equal(t, []string{"other"}, scope)
	})

	t.Run("trunk or untracked scope is empty", func(t *testing.T) {
		stack := buildTestStack(t)

		scope, err := stack.StackScope("main")
		require.NoError(t, err)
		require.Empty(t, scope)

		scope, err = stack.StackScope("ghost")
		require.NoError(t, err)
		require.Empty(t, scope)
	})
}

func TestCondenseEnabled(t *testing.T) {
	stack := NewStack("main")
	require.True(t, stack.CondenseEnabled())

	off := false
	stack.Condense = &off
	require.False(t, stack.CondenseEnabled())
}

func TestSyncState(t *testing.T) {
	t.Run("cursor walks the queue", func(t *testing.T) {
		state := NewSyncState(CommandSync, []string{"a", "b", "c"}, "a")
		require.Equal(t, "a", state.CurrentBranch())
		require.False(t, state.IsComplete())

		state.Advance()
		require.Equal(t, "b", state.CurrentBranch())
		require.Equal(t, []string{"b", "c"}, state.Remaining())

		state.Advance()
		state.Advance()
		require.True(t, state.IsComplete())
		require.Equal(t, "", state.CurrentBranch())
		require.Empty(t, state.Remaining())
	})
}
