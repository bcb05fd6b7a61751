package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// preloadMarker identifies the BrowserWindow preload wiring in the main-process entry.
const preloadMarker = "preload"

var (
	lineBreakPattern     = regexp.MustCompile(`\r?\n`)
	trailingSepPattern   = regexp.MustCompile(`,\s*$`)
	pathImportPattern    = regexp.MustCompile(`^import\s+path\s+from\s+["']path["']`)
	lifecycleEffectBlock = regexp.MustCompile(`\s*useEffect\(\(\) => \{[\s\S]*?\}\s*,\s*\[\]\);?`)
)

// stripPreloadWiring removes the first line mentioning preload, trims a
// trailing separator from the line before it, and drops the path import when
// nothing else uses the path module. Line endings are normalized to "\n".
func stripPreloadWiring(src string) (string, bool) {
	lines := lineBreakPattern.Split(src, -1)
	changed := false

	if idx := indexOfLine(lines, func(l string) bool { return strings.Contains(l, preloadMarker) }); idx != -1 {
		lines = append(lines[:idx], lines[idx+1:]...)
		if idx > 0 {
			lines[idx-1] = trailingSepPattern.ReplaceAllString(lines[idx-1], "")
		}
		changed = true
	}

	if idx := indexOfLine(lines, pathImportPattern.MatchString); idx != -1 {
		stillUsed := false
		for i, l := range lines {
			if i != idx && strings.Contains(l, "path.") {
				stillUsed = true
				break
			}
		}
		if !stillUsed {
			lines = append(lines[:idx], lines[idx+1:]...)
			changed = true
		}
	}

	if !changed {
		return src, false
	}
	return strings.Join(lines, "\n"), true
}

// stripEffectBlock removes the first mount-only useEffect block, together
// with the whitespace preceding it.
func stripEffectBlock(src string) (string, bool) {
	loc := lifecycleEffectBlock.FindStringIndex(src)
	if loc == nil {
		return src, false
	}
	return src[:loc[0]] + src[loc[1]:], true
}

// injectImports inserts a side-effect import for each module right before
// the first line that is not an import statement. Modules already imported
// that way are skipped.
func injectImports(src string, modules []string) (string, bool) {
	lines := lineBreakPattern.Split(src, -1)

	insertAt := indexOfLine(lines, func(l string) bool { return !strings.HasPrefix(l, "import ") })
	if insertAt == -1 {
		insertAt = len(lines)
	}

	var added []string
	for _, m := range modules {
		stmt := fmt.Sprintf("import '%s';", m)
		if indexOfLine(lines, func(l string) bool { return l == stmt }) != -1 {
			continue
		}
		added = append(added, stmt)
	}
	if len(added) == 0 {
		return src, false
	}

	out := make([]string, 0, len(lines)+len(added))
	out = append(out, lines[:insertAt]...)
	out = append(out, added...)
	out = append(out, lines[insertAt:]...)
	return strings.Join(out, "\n"), true
}

// jsonMember is one top-level member of a JSON object in source order.
type jsonMember struct {
	key   string
	value json.RawMessage
}

// pruneInclude removes entry from the top-level "include" array of a
// tsconfig document. Member order is preserved; the document is re-indented
// with two spaces. A document without an include array is left unchanged.
func pruneInclude(data []byte, entry string) ([]byte, bool, error) {
	members, err := decodeObject(data)
	if err != nil {
		return nil, false, fmt.Errorf("parse tsconfig: %w", err)
	}

	changed := false
	for i, m := range members {
		if m.key != "include" {
			continue
		}
		var include []any
		if err := json.Unmarshal(m.value, &include); err != nil {
			// Not an array.
			return data, false, nil
		}
		kept := make([]any, 0, len(include))
		for _, v := range include {
			if s, ok := v.(string); ok && s == entry {
				changed = true
				continue
			}
			kept = append(kept, v)
		}
		if !changed {
			return data, false, nil
		}
		raw, err := json.Marshal(kept)
		if err != nil {
			return nil, false, fmt.Errorf("encode include: %w", err)
		}
		members[i].value = raw
	}
	if !changed {
		return data, false, nil
	}

	out, err := encodeObject(members)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func decodeObject(data []byte) ([]jsonMember, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var members []jsonMember
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		members = append(members, jsonMember{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return members, nil
}

func encodeObject(members []jsonMember) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, m := range members {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		if err := json.Indent(&buf, m.value, "  ", "  "); err != nil {
			return nil, fmt.Errorf("indent %q: %w", m.key, err)
		}
	}
	if len(members) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func indexOfLine(lines []string, match func(string) bool) int {
	for i, l := range lines {
		if match(l) {
			return i
		}
	}
	return -1
}

// patchFile applies fn to the file content and writes it back when changed,
// keeping the file mode.
func patchFile(path string, fn func(string) (string, bool)) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out, changed := fn(string(data))
	if !changed {
		return nil
	}
	return os.WriteFile(path, []byte(out), info.Mode().Perm())
}
