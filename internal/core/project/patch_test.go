package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStripPreloadWiring(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		want        string
		wantChanged bool
	}{
		{
			name: "removes_preload_and_unused_path_import",
			src: strings.Join([]string{
				`import { app } from "electron";`,
				`import path from "path";`,
				`webPreferences: {`,
				`  sandbox: true,`,
				`  preload: path.join(__dirname, "preload.js"),`,
				`},`,
			}, "\n"),
			want: strings.Join([]string{
				`import { app } from "electron";`,
				`webPreferences: {`,
				`  sandbox: true`,
				`},`,
			}, "\n"),
			wantChanged: true,
		},
		{
			name: "keeps_path_import_when_still_used",
			src: strings.Join([]string{
				`import path from 'path';`,
				`  preload: path.join(a, "preload.js"),`,
				`win.loadFile(path.join(dir, "index.html"));`,
			}, "\n"),
			want: strings.Join([]string{
				`import path from 'path';`,
				`win.loadFile(path.join(dir, "index.html"));`,
			}, "\n"),
			wantChanged: true,
		},
		{
			name:        "only_first_preload_line",
			src:         "a,\npreload: 1,\npreload: 2",
			want:        "a\npreload: 2",
			wantChanged: true,
		},
		{
			name:        "preload_on_first_line",
			src:         "preload: x\nnext",
			want:        "next",
			wantChanged: true,
		},
		{
			name:        "normalizes_crlf",
			src:         "a,\r\npreload: x\r\nb",
			want:        "a\nb",
			wantChanged: true,
		},
		{
			name:        "nothing_to_strip",
			src:         "const x = 1;\r\n",
			want:        "const x = 1;\r\n",
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := stripPreloadWiring(tt.src)
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if got != tt.want {
				t.Errorf("stripPreloadWiring() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestStripEffectBlock(t *testing.T) {
	src := strings.Join([]string{
		`export default function App() {`,
		`  const [m, setM] = useState("");`,
		``,
		`  useEffect(() => {`,
		`    window.api?.ping().then((r) => { setM(r); });`,
		`  }, []);`,
		``,
		`  useEffect(() => {`,
		`    document.title = m;`,
		`  }, [m]);`,
		`  return null;`,
		`}`,
	}, "\n")

	got, changed := stripEffectBlock(src)
	if !changed {
		t.Fatal("stripEffectBlock() reported no change")
	}
	if strings.Contains(got, "window.api") {
		t.Errorf("mount effect not removed:\n%s", got)
	}
	if !strings.Contains(got, "document.title = m;") {
		t.Errorf("dependent effect must survive:\n%s", got)
	}
	if !strings.Contains(got, `useState("");`+"\n\n  useEffect") {
		t.Errorf("surrounding whitespace not collapsed as expected:\n%s", got)
	}

	if _, changed := stripEffectBlock("const a = 1;"); changed {
		t.Error("stripEffectBlock() changed source without an effect")
	}
}

func TestInjectImports(t *testing.T) {
	src := strings.Join([]string{
		`import { app } from "electron";`,
		`import path from "path";`,
		``,
		`app.whenReady();`,
	}, "\n")

	got, changed := injectImports(src, []string{"../auth.js", "./extra.js"})
	if !changed {
		t.Fatal("injectImports() reported no change")
	}
	want := strings.Join([]string{
		`import { app } from "electron";`,
		`import path from "path";`,
		`import '../auth.js';`,
		`import './extra.js';`,
		``,
		`app.whenReady();`,
	}, "\n")
	if got != want {
		t.Errorf("injectImports() =\n%s\nwant\n%s", got, want)
	}

	again, changed := injectImports(got, []string{"../auth.js"})
	if changed || again != got {
		t.Error("injectImports() must not duplicate an existing import")
	}

	onlyImports, _ := injectImports(`import a from "a";`, []string{"b"})
	if onlyImports != "import a from \"a\";\nimport 'b';" {
		t.Errorf("append at end = %q", onlyImports)
	}
}

func TestPruneInclude(t *testing.T) {
	src := []byte(`{
  "compilerOptions": {"strict": true, "outDir": "dist"},
  "include": ["src/main.ts", "src/global.d.ts", "src/**/*.ts"],
  "exclude": ["node_modules"]
}`)

	out, changed, err := pruneInclude(src, "src/global.d.ts")
	if err != nil {
		t.Fatalf("pruneInclude error: %v", err)
	}
	if !changed {
		t.Fatal("pruneInclude reported no change")
	}

	want := `{
  "compilerOptions": {
    "strict": true,
    "outDir": "dist"
  },
  "include": [
    "src/main.ts",
    "src/**/*.ts"
  ],
  "exclude": [
    "node_modules"
  ]
}
`
	if string(out) != want {
		t.Errorf("pruneInclude() =\n%s\nwant\n%s", out, want)
	}

	t.Run("absent_entry", func(t *testing.T) {
		in := []byte(`{"include": ["src/main.ts"]}`)
		out, changed, err := pruneInclude(in, "src/global.d.ts")
		if err != nil || changed || string(out) != string(in) {
			t.Errorf("pruneInclude() = %q, %v, %v; want input unchanged", out, changed, err)
		}
	})

	t.Run("include_not_array", func(t *testing.T) {
		in := []byte(`{"include": "src"}`)
		if _, changed, err := pruneInclude(in, "src"); err != nil || changed {
			t.Errorf("pruneInclude() changed = %v, err = %v", changed, err)
		}
	})

	t.Run("invalid_json", func(t *testing.T) {
		if _, _, err := pruneInclude([]byte(`{"include": [`), "x"); err == nil {
			t.Error("pruneInclude() should fail on malformed JSON")
		}
		if _, _, err := pruneInclude([]byte(`[]`), "x"); err == nil {
			t.Error("pruneInclude() should fail on a non-object document")
		}
	})
}

func TestPatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.ts")
	if err := os.WriteFile(path, []byte("a,\npreload: x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := patchFile(path, stripPreloadWiring); err != nil {
		t.Fatalf("patchFile error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a" {
		t.Errorf("patched content = %q, want %q", data, "a")
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	if err := patchFile(filepath.Join(t.TempDir(), "missing.ts"), stripPreloadWiring); err == nil {
		t.Error("patchFile on a missing file should fail")
	}
}
