// Package cli provides CLI commands for the launchpad application.
package cli

import (
	gocontext "context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/launchpad/internal/config"
	"github.com/example/launchpad/internal/ctxutil"
	"github.com/example/launchpad/internal/logging"
	"github.com/example/launchpad/internal/wire"
)

// globalActorID stores the actor for the current CLI invocation.
// Set once at startup by Bootstrap.
var globalActorID string

// Bootstrap loads config, builds the logger and hands both to wire.
// Should be called once at CLI startup in PersistentPreRunE.
func Bootstrap(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Logging.Level = "debug"
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	wire.Configure(cfg, logger)
	globalActorID = detectActor(cfg)
	return nil
}

// detectActor prefers the configured owner, then the login name.
func detectActor(cfg *config.Config) string {
	if cfg.Owner != "" {
		return cfg.Owner
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "unknown"
}

// GetActorID returns the stored actor ID from CLI startup.
func GetActorID() string {
	return globalActorID
}

// NewContext creates a context carrying the current actor and a fresh
// request ID. CLI commands should use this instead of context.Background().
func NewContext() gocontext.Context {
	ctx := ctxutil.WithRequestID(gocontext.Background(), uuid.NewString())
	if globalActorID != "" {
		return ctxutil.WithActorID(ctx, globalActorID)
	}
	return ctx
}
