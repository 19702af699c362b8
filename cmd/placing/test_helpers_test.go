package main

import (
	"bytes"
	"strings"
	"testing"

	"placing/internal/testsupport"
)

func writeTestConfig(t *testing.T, dir string, opts ...testsupport.ConfigOption) string {
	t.Helper()
	return testsupport.WriteConfig(t, dir, testsupport.NewConfig(t, opts...))
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommandWithConfig(configPath)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func dataRow(id, title, lon, lat string) string {
	return strings.Join([]string{id, "u", "d", "t", "x", "y", title, "", "tag1,tag2", "", lon, lat}, "\t")
}
