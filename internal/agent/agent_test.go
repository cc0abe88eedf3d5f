package agent

import (
	"sort"
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	a, ok := Lookup("claude")
	if !ok {
		t.Fatal("expected claude to be registered")
	}
	if a.Folder != ".claude/" {
		t.Errorf("Folder = %q, want %q", a.Folder, ".claude/")
	}
	if !a.RequiresCLI {
		t.Error("claude should require a CLI")
	}

	if _, ok := Lookup("nope"); ok {
		t.Error("unknown key should not resolve")
	}
}

func TestTableInvariants(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range All() {
		if seen[a.Key] {
			t.Errorf("duplicate key %q", a.Key)
		}
		seen[a.Key] = true

		if !strings.HasSuffix(a.Folder, "/") {
			t.Errorf("%s: folder %q should end with /", a.Key, a.Folder)
		}
		if !strings.HasPrefix(a.CommandsDir, strings.TrimSuffix(a.Folder, "/")) {
			t.Errorf("%s: commands dir %q outside folder %q", a.Key, a.CommandsDir, a.Folder)
		}
		if a.RequiresCLI && a.InstallURL == "" {
			t.Errorf("%s: CLI agents need an install URL", a.Key)
		}
		if a.CommandExt != "md" && a.CommandExt != "toml" {
			t.Errorf("%s: unexpected command extension %q", a.Key, a.CommandExt)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Name = "mutated"

	again := All()
	if again[0].Name == "mutated" {
		t.Error("All() must not expose the backing table")
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	if !sort.StringsAreSorted(keys) {
		t.Errorf("Keys() not sorted: %v", keys)
	}
	if len(keys) != len(All()) {
		t.Errorf("got %d keys, want %d", len(keys), len(All()))
	}
}

func TestValidScript(t *testing.T) {
	for _, s := range []string{"sh", "ps"} {
		if !ValidScript(s) {
			t.Errorf("ValidScript(%q) = false", s)
		}
	}
	if ValidScript("bat") {
		t.Error("ValidScript(bat) = true")
	}
}
