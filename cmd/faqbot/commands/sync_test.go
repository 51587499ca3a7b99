// ABOUTME: Tests for sync command structure
// ABOUTME: Verifies subcommands and confirmation flags without contacting Charm

package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewSyncCmd(t *testing.T) {
	cmd := NewSyncCmd()

	if cmd.Use != "sync" {
		t.Errorf("Use = %q, want %q", cmd.Use, "sync")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if !strings.Contains(cmd.Long, "SQLite") {
		t.Error("Long description should mention local SQLite storage")
	}
}

func TestSyncCmd_Subcommands(t *testing.T) {
	cmd := NewSyncCmd()

	expectedSubcommands := []string{"status", "push", "pull", "now", "wipe", "keys"}

	for _, subCmdName := range expectedSubcommands {
		t.Run(subCmdName, func(t *testing.T) {
			found := false
			for _, sub := range cmd.Commands() {
				if sub.Use == subCmdName {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Subcommand %q not found", subCmdName)
			}
		})
	}
}

func TestSyncCmd_ConfirmFlags(t *testing.T) {
	for _, name := range []string{"pull", "wipe"} {
		t.Run(name, func(t *testing.T) {
			cmd := NewSyncCmd()
			sub, _, err := cmd.Find([]string{name})
			if err != nil {
				t.Fatalf("Find(%q) error = %v", name, err)
			}

			flag := sub.Flags().Lookup("confirm")
			if flag == nil {
				t.Fatal("--confirm flag not found")
			}
			if flag.DefValue != "false" {
				t.Errorf("--confirm default = %q, want %q", flag.DefValue, "false")
			}
		})
	}
}

func TestSyncCmd_RequiresConfirm(t *testing.T) {
	for _, name := range []string{"pull", "wipe"} {
		t.Run(name, func(t *testing.T) {
			cmd := NewSyncCmd()
			var output bytes.Buffer
			cmd.SetOut(&output)
			cmd.SetErr(&output)
			cmd.SetArgs([]string{name})

			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if !strings.Contains(output.String(), "--confirm") {
				t.Errorf("output = %q, want a --confirm hint", output.String())
			}
		})
	}
}
