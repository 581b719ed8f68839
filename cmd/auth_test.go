package cmd

import (
	"testing"
)

func TestNewAuthCmd(t *testing.T) {
	cmd := newAuthCmd()

	if cmd.Use != "auth" {
		t.Errorf("expected Use to be 'auth', got %s", cmd.Use)
	}

	accountFlag := cmd.Flags().Lookup("account")
	if accountFlag == nil {
		t.Fatal("expected flag 'account' to be registered")
	}
	if accountFlag.DefValue != "default" {
		t.Errorf("expected account default 'default', got %q", accountFlag.DefValue)
	}

	codeFlag := cmd.Flags().Lookup("code")
	if codeFlag == nil {
		t.Fatal("expected flag 'code' to be registered")
	}
	if codeFlag.DefValue != "" {
		t.Errorf("expected code default to be empty, got %q", codeFlag.DefValue)
	}
}

func TestNewVersionCmd(t *testing.T) {
	cmd := newVersionCmd()
	if cmd.Use != "version" {
		t.Errorf("expected Use to be 'version', got %s", cmd.Use)
	}
}
