package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/pkgtags/internal/ctxutil"
)

// commandContext returns the command's context tagged with a fresh request ID
// so log lines from one invocation can be correlated.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctxutil.WithNewRequestID(ctx)
}
