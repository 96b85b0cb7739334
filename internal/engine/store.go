package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	stranderrors "strand.dev/strand/internal/errors"
)

const (
	configFileName = ".strand_config.json"
	stateFileName  = ".strand_state.json"
)

// Store persists the stack config and the sync state for one repository.
// The config lives at the repository root so it can be committed; the state
// lives under .git/ because it describes a local, in-flight operation.
type Store struct {
	repoRoot string
}

// NewStore creates a store rooted at the given repository root
func NewStore(repoRoot string) *Store {
	return &Store{repoRoot: repoRoot}
}

// ConfigPath returns the path of the stack config file
func (s *Store) ConfigPath() string {
	return filepath.Join(s.repoRoot, configFileName)
}

// StatePath returns the path of the sync state file
func (s *Store) StatePath() string {
	return filepath.Join(s.repoRoot, ".git", stateFileName)
}

// IsInitialized reports whether a stack config exists
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.ConfigPath())
	return err == nil
}

// LoadConfig reads the stack config. A missing file is ErrNotInitialized.
func (s *Store) LoadConfig() (*Stack, error) {
	data, err := os.ReadFile(s.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, stranderrors.ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to read stack config: %w", err)
	}

	var stack Stack
	if err := json.Unmarshal(data, &stack); err != nil {
		return nil, fmt.Errorf("failed to parse stack config: %w", err)
	}
	if stack.Branches == nil {
		stack.Branches = map[string]*BranchInfo{}
	}
	return &stack, nil
}

// SaveConfig writes the stack config atomically enough for a single-user tool
func (s *Store) SaveConfig(stack *Stack) error {
	data, err := json.MarshalIndent(stack, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stack config: %w", err)
	}
	if err := os.WriteFile(s.ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write stack config: %w", err)
	}
	return nil
}

// HasPendingState reports whether a multi-branch operation is in progress.
// The state file is the lock; no separate lock file exists.
func (s *Store) HasPendingState() bool {
	_, err := os.Stat(s.StatePath())
	return err == nil
}

// LoadState reads the persisted sync state. Returns (nil, nil) when no
// operation is pending.
func (s *Store) LoadState() (*SyncState, error) {
	data, err := os.ReadFile(s.StatePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sync state: %w", err)
	}

	var state SyncState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse sync state: %w", err)
	}
	return &state, nil
}

// SaveState persists the sync state, creating or replacing the file
func (s *Store) SaveState(state *SyncState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sync state: %w", err)
	}
	if err := os.WriteFile(s.StatePath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write sync state: %w", err)
	}
	return nil
}

// ClearState removes the state file, releasing the pending-operation lock.
// Clearing an already-clear state is not an error.
func (s *Store) ClearState() error {
	if err := os.Remove(s.StatePath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear sync state: %w", err)
	}
	return nil
}
