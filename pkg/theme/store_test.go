package theme

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTheme(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestStoreLoad(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "noir", `{"name":"Noir Lights","mode":"night_lights","bg":"#040408"}`)

	store := NewStore(dir, nil)

	th := store.Load("noir")
	if th.Name != "Noir Lights" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.Mode() != ModeNightLights {
		t.Errorf("Mode = %s", th.Mode())
	}
}

func TestStoreLoadMissingReturnsDefault(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	th := store.Load("does-not-exist")
	if !reflect.DeepEqual(th, Default()) {
		t.Errorf("missing theme should load the default, got %q", th.Name)
	}
}

func TestStoreLoadMalformedReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "broken", `{"bg": `)

	store := NewStore(dir, nil)
	th := store.Load("broken")
	if !reflect.DeepEqual(th, Default()) {
		t.Errorf("malformed theme should load the default, got %q", th.Name)
	}
}

func TestStoreLoadFillsName(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "plain", `{"bg":"#FFFFFF"}`)

	store := NewStore(dir, nil)
	if th := store.Load("plain"); th.Name != "plain" {
		t.Errorf("Name = %q, want file stem", th.Name)
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "zen", `{}`)
	writeTheme(t, dir, "autumn", `{}`)
	writeTheme(t, dir, "noir", `{}`)
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(dir, nil)
	got := store.List()
	want := []string{"autumn", "noir", "zen"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope"), nil)
	if got := store.List(); got != nil {
		t.Errorf("List() = %v, want nil", got)
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	merged := Merge(base, map[string]any{"bg": "#101010", "water": "#223344"})

	if merged.Values["bg"] != "#101010" || merged.Values["water"] != "#223344" {
		t.Errorf("overrides not applied: %v", merged.Values["bg"])
	}
	if merged.Name != "Default (custom)" {
		t.Errorf("Name = %q", merged.Name)
	}
	if base.Values["bg"] != "#FFFFFF" {
		t.Error("Merge mutated the base theme")
	}
}

func TestMergeEmptyOverrides(t *testing.T) {
	base := Default()
	if merged := Merge(base, nil); merged.Name != base.Name {
		t.Errorf("empty overrides should return base, got %q", merged.Name)
	}
}
