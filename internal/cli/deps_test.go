package cli

import "testing"

func TestInitDependencies(t *testing.T) {
	orig := deps
	defer func() { deps = orig }()

	if err := InitDependencies(); err != nil {
		t.Fatalf("InitDependencies() error: %v", err)
	}

	d := GetDeps()
	if d == nil {
		t.Fatal("GetDeps() returned nil after InitDependencies")
	}
	if d.Registry == nil || d.Composer == nil || d.Headless == nil || d.Theme == nil || d.Logger == nil {
		t.Errorf("dependencies not fully wired: %+v", d)
	}
	if len(d.Registry.Mandatory()) == 0 {
		t.Error("default registry should have mandatory features")
	}
}

func TestSetDeps(t *testing.T) {
	orig := deps
	defer func() { deps = orig }()

	custom := &Dependencies{}
	SetDeps(custom)
	if GetDeps() != custom {
		t.Error("SetDeps did not replace dependencies")
	}
	SetDeps(nil)
	if GetDeps() != nil {
		t.Error("SetDeps(nil) should clear dependencies")
	}
}
