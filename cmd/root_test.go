package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestSetVersion(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()

	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "testctl" {
		t.Errorf("Expected Use to be 'testctl', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}

	// Set the same version template as in Execute()
	testCmd.SetVersionTemplate(`{{printf "testctl version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})
	if err := testCmd.Execute(); err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	expected := "testctl version 1.0.0\n"
	if buf.String() != expected {
		t.Errorf("Expected version output %q, got %q", expected, buf.String())
	}
}

func TestSubcommands(t *testing.T) {
	expectedCommands := []string{"run", "list", "cache", "mcp-server", "version", "self-update"}
	foundCommands := make(map[string]bool)

	for _, cmd := range rootCmd.Commands() {
		foundCommands[cmd.Name()] = true
	}

	for _, expected := range expectedCommands {
		if !foundCommands[expected] {
			t.Errorf("Expected subcommand %s to be registered", expected)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	for _, name := range []string{"config", "cache-path", "log-level", "debug"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent flag --%s", name)
		}
	}
}

func TestRootCommandHelp(t *testing.T) {
	out, _, err := executeCommand(t, "--help")
	if err != nil {
		t.Fatalf("Error executing help command: %v", err)
	}

	if !strings.Contains(out, "testctl") {
		t.Errorf("Help output should contain 'testctl'. Got: %q", out)
	}

	if !strings.Contains(out, "Checks are grouped into categories") {
		t.Errorf("Help output should contain the long description. Got: %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()
	rootCmd.Version = "0.4.2"

	out, _, err := executeCommand(t, "version")
	if err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}
	if out != "testctl version 0.4.2\n" {
		t.Errorf("Unexpected version output %q", out)
	}
}

func TestUnknownLogLevel(t *testing.T) {
	_, _, err := executeCommand(t, "version", "--log-level", "loud")
	if err == nil || !strings.Contains(err.Error(), `unknown log level "loud"`) {
		t.Errorf("Expected log level error, got %v", err)
	}
}
