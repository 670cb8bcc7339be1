package cmd

import (
	"strings"
	"testing"
)

func TestRunServeInvalidTransport(t *testing.T) {
	err := runServe("websocket", "", "", false, true)
	if err == nil {
		t.Fatal("runServe() with invalid transport did not fail")
	}
	if !strings.Contains(err.Error(), "invalid transport type") {
		t.Errorf("error = %v, want invalid transport type", err)
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3")

	cmd := newVersionCmd()
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	if got := out.String(); got != "gcalmcp version 1.2.3\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestServeCommandFlags(t *testing.T) {
	cmd := newServeCmd()

	for _, flag := range []string{"transport", "http-addr", "metrics-addr", "debug", "skip-verify"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("serve command is missing --%s", flag)
		}
	}

	if got := cmd.Flags().Lookup("transport").DefValue; got != "stdio" {
		t.Errorf("transport default = %q, want stdio", got)
	}
}
