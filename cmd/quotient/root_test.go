package main

import "testing"

func TestRootCommandStructure(t *testing.T) {
	if rootCmd.Use != "quotient" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "quotient")
	}

	want := []string{"convert", "cost", "tiers", "audit", "serve", "version"}
	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	for _, name := range []string{"config", "verbose", "output"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag %q not registered", name)
		}
	}
}

func TestTiersSubcommands(t *testing.T) {
	found := false
	for _, cmd := range tiersCmd.Commands() {
		if cmd.Name() == "sweep" {
			found = true
		}
	}
	if !found {
		t.Error("sweep subcommand not registered under tiers")
	}
}
