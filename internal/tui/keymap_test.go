package tui

import (
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Reset", km.Reset},
		{"Theme", km.Theme},
		{"Export", km.Export},
		{"Generate", km.Generate},
		{"Select", km.Select},
		{"Next", km.Next},
		{"Prev", km.Prev},
		{"Up", km.Up},
		{"Down", km.Down},
		{"Help", km.Help},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			if !b.binding.Enabled() {
				t.Errorf("expected %s binding to be enabled", b.name)
			}
			if len(b.binding.Keys()) == 0 {
				t.Errorf("expected %s binding to have at least one key", b.name)
			}
			if b.binding.Help().Key == "" {
				t.Errorf("expected %s binding to have help text", b.name)
			}
		})
	}
}

func TestDefaultKeyMap_QuitKeys(t *testing.T) {
	keys := DefaultKeyMap().Quit.Keys()
	for _, want := range []string{"q", "ctrl+c"} {
		if !slices.Contains(keys, want) {
			t.Errorf("expected Quit binding to include %q", want)
		}
	}
}

func TestKeyMap_HelpCoversEveryBinding(t *testing.T) {
	km := DefaultKeyMap()
	var n int
	for _, col := range km.FullHelp() {
		n += len(col)
	}
	if n != 11 {
		t.Errorf("FullHelp lists %d bindings, want 11", n)
	}
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp is empty")
	}
}
