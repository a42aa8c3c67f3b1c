package theme

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// GhosttyTemplate is the file name of the Ghostty theme template.
const GhosttyTemplate = "ghostty.tmpl"

//go:embed *.tmpl
var templates embed.FS

func defaultTemplate() []byte {
	content, err := templates.ReadFile(GhosttyTemplate)
	if err != nil {
		panic(fmt.Sprintf("embedded template %s missing: %v", GhosttyTemplate, err))
	}
	return content
}

// DefaultTemplateDir returns the base directory searched for custom templates.
func DefaultTemplateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ".config", "ansigen", "templates")
}

// Loader loads theme templates, preferring a custom override in {base}/ghostty/ over the
// embedded default.
type Loader struct {
	customBase string
	logger     hclog.Logger
}

// NewLoader returns a loader rooted at DefaultTemplateDir.
func NewLoader(logger hclog.Logger) *Loader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Loader{customBase: DefaultTemplateDir(), logger: logger}
}

// WithCustomBase changes the directory searched for overrides.
func (l *Loader) WithCustomBase(base string) *Loader {
	l.customBase = base
	return l
}

// CustomPath returns where a custom Ghostty template would be located.
func (l *Loader) CustomPath() string {
	return filepath.Join(l.customBase, "ghostty", GhosttyTemplate)
}

// HasCustom reports whether a custom template exists.
func (l *Loader) HasCustom() bool {
	_, err := os.Stat(l.CustomPath())
	return err == nil
}

// Load returns the template content and whether it came from a custom override.
func (l *Loader) Load() (content []byte, fromCustom bool, err error) {
	path := l.CustomPath()
	if content, err := os.ReadFile(path); err == nil { // #nosec G304 - template path under the user's config dir
		l.logger.Debug("using custom template", "path", path)
		return content, true, nil
	}
	l.logger.Debug("using embedded template", "name", GhosttyTemplate)
	return defaultTemplate(), false, nil
}

// Render renders t with the loaded template.
func (l *Loader) Render(t *Theme) ([]byte, error) {
	tmpl, custom, err := l.Load()
	if err != nil {
		return nil, err
	}
	content, err := Render(t, tmpl)
	if err != nil && custom {
		return nil, fmt.Errorf("custom template %s: %w", l.CustomPath(), err)
	}
	return content, err
}

// Dump writes the embedded template to CustomPath. Existing files are kept unless force is set.
func (l *Loader) Dump(force bool) (string, error) {
	path := l.CustomPath()
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("custom template already exists: %s (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { // #nosec G301 - templates are user readable
		return "", fmt.Errorf("failed to create directory %q: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, defaultTemplate(), 0o644); err != nil { // #nosec G306 - templates are not secret
		return "", fmt.Errorf("failed to write template to %q: %w", path, err)
	}
	return path, nil
}
