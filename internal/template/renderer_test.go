package template

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeTree(t *testing.T, files map[string][]byte) string {
	t.Helper()
	root := t.TempDir()
	for rel, data := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestRenderTree(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '{', '{', 'A', 'P', 'P', '_', 'N', 'A', 'M', 'E', '}', '}', 0x00}
	root := writeTree(t, map[string][]byte{
		"src/main.ts":       []byte(`title: "{{WINDOW_TITLE}}", frame: !{{FRAMELESS}}`),
		"README.md":         []byte("# {{APP_NAME}}\n{{APP_NAME}} by {{AUTHOR}}"),
		".gitignore":        []byte("{{APP_NAME}}.log\n"),
		"public/icon.png":   png,
		"src/plain.ts":      []byte("nothing to render"),
		"node_modules/x.js": []byte("{{APP_NAME}}"),
		"src/style.css":     []byte("/* {{APP_NAME}} */"),
	})

	tokens := Tokens{
		"APP_NAME":     "dev-app",
		"WINDOW_TITLE": "Dev App",
		"AUTHOR":       "Jane",
		"FRAMELESS":    "false",
	}

	result, err := NewRenderer().RenderTree(context.Background(), root, tokens)
	if err != nil {
		t.Fatalf("RenderTree error: %v", err)
	}

	checks := map[string]string{
		"src/main.ts":       `title: "Dev App", frame: !false`,
		"README.md":         "# dev-app\ndev-app by Jane",
		".gitignore":        "dev-app.log\n",
		"src/plain.ts":      "nothing to render",
		"node_modules/x.js": "{{APP_NAME}}",
		"src/style.css":     "/* dev-app */",
	}
	for rel, want := range checks {
		if got := readFile(t, filepath.Join(root, rel)); got != want {
			t.Errorf("%s = %q, want %q", rel, got, want)
		}
	}

	if got := readFile(t, filepath.Join(root, "public/icon.png")); got != string(png) {
		t.Error("binary asset was modified")
	}

	slices.Sort(result.Files)
	want := []string{".gitignore", "README.md", "src/main.ts", "src/style.css"}
	if !slices.Equal(result.Files, want) {
		t.Errorf("Files = %v, want %v", result.Files, want)
	}
	if len(result.Unexpanded) != 0 {
		t.Errorf("Unexpanded = %v, want none", result.Unexpanded)
	}
}

func TestRenderTree_SinglePass(t *testing.T) {
	root := writeTree(t, map[string][]byte{
		"a.txt": []byte("{{TITLE}} / {{NAME}}"),
	})
	tokens := Tokens{
		"TITLE": "{{NAME}}",
		"NAME":  "app",
	}

	if _, err := NewRenderer().RenderTree(context.Background(), root, tokens); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, filepath.Join(root, "a.txt")); got != "{{NAME}} / app" {
		t.Errorf("a.txt = %q, substituted values must not be expanded again", got)
	}
}

func TestRenderTree_ReportsUnexpanded(t *testing.T) {
	root := writeTree(t, map[string][]byte{
		"src/App.tsx": []byte(`<div style={{ color: "red" }}>{{APP_NAME}} {{UNKNOWN}} {{UNKNOWN}}</div>`),
	})

	result, err := NewRenderer().RenderTree(context.Background(), root, Tokens{"APP_NAME": "x"})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Unexpanded) != 1 {
		t.Fatalf("Unexpanded = %v, want exactly one entry", result.Unexpanded)
	}
	if got := result.Unexpanded[0]; got.File != "src/App.tsx" || got.Token != "{{UNKNOWN}}" {
		t.Errorf("Unexpanded[0] = %+v", got)
	}
}

func TestRenderTree_PreservesMode(t *testing.T) {
	root := writeTree(t, map[string][]byte{"run.js": []byte("{{APP_NAME}}")})
	path := filepath.Join(root, "run.js")
	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := NewRenderer().RenderTree(context.Background(), root, Tokens{"APP_NAME": "x"}); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("mode = %v, want 0755", info.Mode().Perm())
	}
}

func TestRenderTree_MissingRoot(t *testing.T) {
	_, err := NewRenderer().RenderTree(context.Background(), filepath.Join(t.TempDir(), "gone"), Tokens{})
	if err == nil {
		t.Fatal("RenderTree on a missing root should fail")
	}
}

func TestIsTextFile(t *testing.T) {
	tests := map[string]bool{
		"main.ts":           true,
		"App.TSX":           true,
		"electron-main.mjs": true,
		"package.json":      true,
		".gitignore":        true,
		".prettierrc":       true,
		"icon.png":          false,
		"font.woff2":        false,
		"binary":            false,
	}
	for name, want := range tests {
		if got := IsTextFile(name); got != want {
			t.Errorf("IsTextFile(%q) = %v, want %v", name, got, want)
		}
	}
}
