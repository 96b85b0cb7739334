package actions

import (
	"fmt"

	"strand.dev/strand/internal/engine"
	"strand.dev/strand/internal/runtime"
)

// InitOptions contains options for the init command
type InitOptions struct {
	Trunk string
	Force bool
}

// InitAction writes a fresh stack config. The trunk is detected when not
// given; re-initializing requires --force and discards the tracked tree.
func InitAction(ctx *runtime.Context, opts InitOptions) error {
	if ctx.Store.IsInitialized() && !opts.Force {
		return fmt.Errorf("strand is already initialized, use --force to reinitialize")
	}

	trunk := opts.Trunk
	if trunk == "" {
		detected, err := ctx.Git.DetectTrunk()
		if err != nil {
			return err
		}
		trunk = detected
	} else {
		exists, err := ctx.Git.BranchExists(trunk)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("trunk branch %s does not exist", trunk)
		}
	}

	if err := ctx.Store.SaveConfig(engine.NewStack(trunk)); err != nil {
		return err
	}

	ctx.Splog.Info("Initialized strand with trunk branch %s.", trunk)
	return nil
}
