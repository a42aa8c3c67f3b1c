// Package theme reads and writes Ghostty terminal themes.
package theme

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/jmylchreest/ansigen/internal/colour"
)

// DefaultDir is the directory generated themes are written to.
const DefaultDir = "themes"

// Theme is a named 16-colour palette.
type Theme struct {
	Name    string
	Colours [colour.PaletteSize]colour.RGB
}

// TemplateFuncs returns the functions available to theme templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"hex": func(c colour.RGB) string { return c.Hex() },
		"hexNoHash": func(c colour.RGB) string {
			return strings.TrimPrefix(c.Hex(), "#")
		},
		"rgb": func(c colour.RGB) string {
			return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
		},
		"slot": func(t *Theme, i int) (colour.RGB, error) {
			if i < 0 || i >= colour.PaletteSize {
				return colour.RGB{}, fmt.Errorf("slot %d out of range", i)
			}
			return t.Colours[i], nil
		},
		"slotName": colour.SlotName,
	}
}

// Render executes a theme template against t.
func Render(t *Theme, tmpl []byte) ([]byte, error) {
	parsed, err := template.New("theme").Funcs(TemplateFuncs()).Parse(string(tmpl))
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme template: %w", err)
	}
	var buf bytes.Buffer
	if err := parsed.Execute(&buf, t); err != nil {
		return nil, fmt.Errorf("failed to execute theme template: %w", err)
	}
	return buf.Bytes(), nil
}

// Ghostty renders t with the built-in Ghostty template.
func (t *Theme) Ghostty() string {
	content, err := Render(t, defaultTemplate())
	if err != nil {
		// The embedded template is fixed and only indexes in-range slots.
		panic(err)
	}
	return string(content)
}

// Parse reads a Ghostty theme. Only the palette entries are required; the name comes from the
// first comment line, falling back to fallbackName.
func Parse(r io.Reader, fallbackName string) (*Theme, error) {
	t := &Theme{Name: fallbackName}
	var seen [colour.PaletteSize]bool
	count := 0

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first && strings.HasPrefix(line, "#") {
			if name := strings.TrimSpace(strings.TrimPrefix(line, "#")); name != "" {
				t.Name = name
			}
		}
		if line != "" {
			first = false
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(key) != "palette" {
			continue
		}
		idxStr, hex, ok := strings.Cut(value, "=")
		if !ok {
			return nil, fmt.Errorf("malformed palette entry %q", line)
		}
		idx, err := strconv.Atoi(strings.TrimSpace(idxStr))
		if err != nil || idx < 0 || idx >= colour.PaletteSize {
			return nil, fmt.Errorf("invalid palette index in %q", line)
		}
		c, err := colour.ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette %d: %w", idx, err)
		}
		if !seen[idx] {
			seen[idx] = true
			count++
		}
		t.Colours[idx] = c
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read theme: %w", err)
	}

	if count != colour.PaletteSize {
		return nil, fmt.Errorf("theme %s has %d colours, expected %d", t.Name, count, colour.PaletteSize)
	}
	return t, nil
}

// ParseFile reads a Ghostty theme from disk, naming it after the file when it has no header.
func ParseFile(path string) (*Theme, error) {
	f, err := os.Open(path) // #nosec G304 - user supplied theme path
	if err != nil {
		return nil, fmt.Errorf("failed to open theme: %w", err)
	}
	defer f.Close()

	t, err := Parse(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// SafeName turns a theme name into a file name.
func SafeName(name string) string {
	r := strings.NewReplacer(" ", "-", "/", "-", "(", "", ")", "")
	return r.Replace(strings.TrimSpace(name))
}

// DefaultPath returns the timestamped default output path under dir.
func DefaultPath(dir string, now time.Time) string {
	return filepath.Join(dir, "ansigen-"+now.Format("20060102-150405"))
}

// Write writes rendered theme content to path, creating parent directories.
func Write(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - theme directories are user readable
			return fmt.Errorf("failed to create theme directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil { // #nosec G306 - themes are not secret
		return fmt.Errorf("failed to write theme: %w", err)
	}
	return nil
}
