//go:build windows

package theme

import "fmt"

// Reload is not supported on Windows.
func Reload() (int, error) {
	return 0, fmt.Errorf("automatic reload is not supported on Windows - restart ghostty to apply the theme")
}
