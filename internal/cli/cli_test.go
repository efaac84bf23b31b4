package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/example/pkgtags/internal/ctxutil"
)

func TestTagCmd_Subcommands(t *testing.T) {
	want := []string{"get", "ensure", "rename", "list", "link", "versions"}

	cmd := TagCmd()
	for _, name := range want {
		sub, _, err := cmd.Find([]string{name})
		if err != nil || sub == cmd {
			t.Errorf("expected subcommand %q", name)
		}
	}
}

func TestTagCmd_CreateFlags(t *testing.T) {
	for _, sub := range []*cobra.Command{tagGetCmd, tagLinkCmd} {
		if sub.Flags().Lookup("create") == nil {
			t.Errorf("expected --create flag on %q", sub.Name())
		}
	}
}

func TestTagCmd_ArgValidation(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		args []string
		ok   bool
	}{
		{tagGetCmd, []string{"symfony"}, true},
		{tagGetCmd, []string{}, false},
		{tagRenameCmd, []string{"a"}, false},
		{tagRenameCmd, []string{"a", "b"}, true},
		{tagLinkCmd, []string{"a", "1"}, true},
		{tagListCmd, []string{"extra"}, false},
	}

	for _, tt := range tests {
		err := tt.cmd.Args(tt.cmd, tt.args)
		if tt.ok && err != nil {
			t.Errorf("%s %v: expected args accepted, got %v", tt.cmd.Name(), tt.args, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("%s %v: expected args rejected", tt.cmd.Name(), tt.args)
		}
	}
}

func TestVersionCmd_Subcommands(t *testing.T) {
	cmd := VersionCmd()
	for _, name := range []string{"add", "tags"} {
		sub, _, err := cmd.Find([]string{name})
		if err != nil || sub == cmd {
			t.Errorf("expected subcommand %q", name)
		}
	}
}

func TestMigrateCmd_SeedFlag(t *testing.T) {
	if MigrateCmd().Flags().Lookup("seed") == nil {
		t.Error("expected --seed flag")
	}
}

func TestCommandContext_RequestID(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	first := ctxutil.RequestIDFromContext(commandContext(cmd))
	second := ctxutil.RequestIDFromContext(commandContext(cmd))

	if first == "" {
		t.Fatal("expected a request id")
	}
	if first == second {
		t.Error("expected a fresh request id per invocation")
	}
}
