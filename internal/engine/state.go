package engine

// Command identifies which multi-branch operation a persisted state belongs to.
type Command string

const (
	CommandSync   Command = "sync"
	CommandSubmit Command = "submit"
	CommandMove   Command = "move"
)

// SyncState is the durable record of an in-progress multi-branch operation.
// Its existence on disk is the pending-operation lock: while a state file
// exists, no new sync/submit/move may start.
type SyncState struct {
	// ActiveCommand is the command that created this state.
	ActiveCommand Command `json:"activeCommand"`

	// TodoQueue is the full dependency-ordered list of branches the operation
	// processes. The queue never shrinks; progress is tracked by CurrentIndex.
	TodoQueue []string `json:"todoQueue"`

	// CurrentIndex points at the branch being processed. Entries before it are
	// complete; entries at and after it are outstanding.
	CurrentIndex int `json:"currentIndex"`

	// OriginalHead is the branch that was checked out when the operation
	// started, restored on completion or abort.
	OriginalHead string `json:"originalHead"`
}

// NewSyncState creates a state positioned at the start of the queue
func NewSyncState(command Command, queue []string, originalHead string) *SyncState {
	return &SyncState{
		ActiveCommand: command,
		TodoQueue:     queue,
		CurrentIndex:  0,
		OriginalHead:  originalHead,
	}
}

// CurrentBranch returns the branch at the cursor, or empty string when the
// queue is exhausted.
func (s *SyncState) CurrentBranch() string {
	if s.IsComplete() {
		return ""
	}
	return s.TodoQueue[s.CurrentIndex]
}

// IsComplete reports whether every queue entry has been processed
func (s *SyncState) IsComplete() bool {
	return s.CurrentIndex >= len(s.TodoQueue)
}

// Advance moves the cursor past the current branch
func (s *SyncState) Advance() {
	s.CurrentIndex++
}

// Remaining returns the outstanding portion of the queue
func (s *SyncState) Remaining() []string {
	if s.IsComplete() {
		return []string{}
	}
	return s.TodoQueue[s.CurrentIndex:]
}
