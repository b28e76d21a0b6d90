// Package guard gates CLI commands on the session state, the command-line
// equivalent of the dashboard's route guards.
package guard

import (
	"context"

	ierrors "github.com/agentdesk/agentdesk-go/internal/errors"
	"github.com/agentdesk/agentdesk-go/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Check is a cobra PersistentPreRunE-compatible precondition.
type Check func(cmd *cobra.Command, args []string) error

// RequireAuthenticated resolves an Initializing session first, then admits
// only an Authenticated one.
func RequireAuthenticated(manager *session.Manager) Check {
	return func(cmd *cobra.Command, args []string) error {
		if err := settle(cmd.Context(), manager); err != nil {
			return err
		}
		if !manager.Snapshot().IsAuthenticated {
			return errors.Wrap(ierrors.ErrNotAuthenticated, "run `agentdesk login` first")
		}
		return nil
	}
}

// RequireAnonymous admits only a session without a validated credential,
// used by login and register.
func RequireAnonymous(manager *session.Manager) Check {
	return func(cmd *cobra.Command, args []string) error {
		if err := settle(cmd.Context(), manager); err != nil {
			return err
		}
		snapshot := manager.Snapshot()
		if snapshot.IsAuthenticated {
			return errors.Wrapf(ierrors.ErrAlreadyAuthenticated,
				"logged in as %s, run `agentdesk logout` first", snapshot.User.Email)
		}
		return nil
	}
}

func settle(ctx context.Context, manager *session.Manager) error {
	if manager.State() != session.Initializing {
		return nil
	}
	return manager.Initialize(ctx)
}
