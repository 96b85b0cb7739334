package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"strand.dev/strand/internal/engine"
	"strand.dev/strand/internal/git"
	"strand.dev/strand/internal/github"
	"strand.dev/strand/internal/output"
	"strand.dev/strand/internal/runtime"
)

// mockRunner is a scripted git.Runner. Conflicts and push failures are
// injected per branch; every mutating call is recorded for assertions.
type mockRunner struct {
	current          string
	clean            bool
	branches         map[string]bool
	upstreams        map[string]bool
	conflictOn       map[string]bool
	continueConflict bool
	pushErrOn        map[string]error
	rebaseInProgress bool

	checkouts []string
	rebases   []string
	condensed []string
	pushes    []string
	deleted   []string
	aborted   bool
}

func newMockRunner(current string, branches ...string) *mockRunner {
	all := map[string]bool{}
	for _, b := range branches {
		all[b] = true
	}
	return &mockRunner{
		current:    current,
		clean:      true,
		branches:   all,
		upstreams:  map[string]bool{},
		conflictOn: map[string]bool{},
		pushErrOn:  map[string]error{},
	}
}

func (m *mockRunner) RepoRoot() (string, error)    { return "", nil }
func (m *mockRunner) DetectTrunk() (string, error) { return "main", nil }

func (m *mockRunner) CurrentBranch(_ context.Context) (string, error) {
	return m.current, nil
}

func (m *mockRunner) BranchExists(branchName string) (bool, error) {
	return m.branches[branchName], nil
}

func (m *mockRunner) Checkout(_ context.Context, branchName string) error {
	if !m.branches[branchName] {
		return fmt.Errorf("branch %s does not exist", branchName)
	}
	m.current = branchName
	m.checkouts = append(m.checkouts, branchName)
	return nil
}

func (m *mockRunner) CreateAndCheckout(_ context.Context, branchName string) error {
	m.branches[branchName] = true
	m.current = branchName
	m.checkouts = append(m.checkouts, branchName)
	return nil
}

func (m *mockRunner) DeleteBranch(_ context.Context, branchName string) error {
	delete(m.branches, branchName)
	m.deleted = append(m.deleted, branchName)
	return nil
}

func (m *mockRunner) IsWorkdirClean(_ context.Context) (bool, error) {
	return m.clean, nil
}

func (m *mockRunner) Rebase(_ context.Context, onto string) (git.RebaseResult, error) {
	m.rebases = append(m.rebases, m.current+" onto "+onto)
	if m.conflictOn[m.current] {
		m.rebaseInProgress = true
		return git.RebaseConflict, nil
	}
	return git.RebaseDone, nil
}

func (m *mockRunner) RebaseOnto(_ context.Context, newBase, upstream string) (git.RebaseResult, error) {
	m.rebases = append(m.rebases, m.current+" onto "+newBase)
	if m.conflictOn[m.current] {
		m.rebaseInProgress = true
		return git.RebaseConflict, nil
	}
	return git.RebaseDone, nil
}

func (m *mockRunner) RebaseContinue(_ context.Context) (git.RebaseResult, error) {
	if m.continueConflict {
		return git.RebaseConflict, nil
	}
	m.rebaseInProgress = false
	return git.RebaseDone, nil
}

func (m *mockRunner) RebaseAbort(_ context.Context) error {
	m.rebaseInProgress = false
	m.aborted = true
	return nil
}

func (m *mockRunner) IsRebaseInProgress(_ context.Context) bool {
	return m.rebaseInProgress
}

func (m *mockRunner) CondenseHistory(_ context.Context, branchName, parent string) (bool, error) {
	m.condensed = append(m.condensed, branchName)
	return false, nil
}

func (m *mockRunner) Push(_ context.Context, remote, branchName string, setUpstream bool) error {
	if err := m.pushErrOn[branchName]; err != nil {
		return err
	}
	entry := remote + "/" + branchName
	if setUpstream {
		entry += " (set upstream)"
	}
	m.pushes = append(m.pushes, entry)
	m.upstreams[branchName] = true
	return nil
}

func (m *mockRunner) HasUpstream(_ context.Context, branchName string) bool {
	return m.upstreams[branchName]
}

func (m *mockRunner) RemoteURL(_ context.Context) (string, error) {
	return "https://github.com/acme/widgets.git", nil
}

// mockClient is a scripted github.Client
type mockClient struct {
	authed    bool
	prs       map[string]*github.PRInfo
	createErr error
	nextPR    int

	created     []github.CreatePROptions
	baseUpdates map[int]string
	comments    map[int]string
}

func newMockClient() *mockClient {
	return &mockClient{
		authed:      true,
		prs:         map[string]*github.PRInfo{},
		nextPR:      100,
		baseUpdates: map[int]string{},
		comments:    map[int]string{},
	}
}

func (m *mockClient) IsAuthenticated(_ context.Context) bool {
	return m.authed
}

func (m *mockClient) GetPRInfo(_ context.Context, branchName string) (*github.PRInfo, error) {
	return m.prs[branchName], nil
}

func (m *mockClient) CreatePR(_ context.Context, opts github.CreatePROptions) (*github.PRInfo, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, opts)
	m.nextPR++
	pr := &github.PRInfo{
		Number: m.nextPR,
		URL:    fmt.Sprintf("https://github.com/acme/widgets/pull/%d", m.nextPR),
		Base:   opts.Base,
		State:  "open",
	}
	m.prs[opts.Head] = pr
	return pr, nil
}

func (m *mockClient) UpdatePRBase(_ context.Context, prNumber int, base string) error {
	m.baseUpdates[prNumber] = base
	return nil
}

func (m *mockClient) UpsertStackComment(_ context.Context, prNumber int, body string) error {
	m.comments[prNumber] = body
	return nil
}

// newTestContext builds a runtime context with a real store in a temp dir and
// the given mocks. The stack is persisted so actions can load it back.
func newTestContext(t *testing.T, stack *engine.Stack, runner *mockRunner, client *mockClient) *runtime.Context {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))

	store := engine.NewStore(root)
	require.NoError(t, store.SaveConfig(stack))

	ctx := &runtime.Context{
		Git:      runner,
		Store:    store,
		Splog:    output.NewSplog(),
		RepoRoot: root,
	}
	if client != nil {
		ctx.GitHub = client
	}
	return ctx
}

// threeBranchStack is main -> feature -> feature-ui plus an independent
// main -> other.
func threeBranchStack(t *testing.T) *engine.Stack {
	t.Helper()

	stack := engine.NewStack("main")
	require.NoError(t, stack.AddBranch("feature", "main"))
	require.NoError(t, stack.AddBranch("feature-ui", "feature"))
	require.NoError(t, stack.AddBranch("other", "main"))
	return stack
}
