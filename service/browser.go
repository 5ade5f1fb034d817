package service

import (
	"fmt"
	"os/exec"
	"runtime"
)

// BrowserOpener opens a URL in a browser
type BrowserOpener func(url string) error

// OpenBrowser opens the specified URL in the default browser
func OpenBrowser(url string) error {
	name, args, err := browserCommand(runtime.GOOS, url, exec.LookPath)
	if err != nil {
		return err
	}

	// Start, not Run: the browser outlives this process
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

// browserCommand picks the opener for goos
func browserCommand(goos, url string, lookPath func(string) (string, error)) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "cmd", []string{"/c", "start", url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		for _, openCmd := range []string{"xdg-open", "gnome-open", "kde-open"} {
			if _, err := lookPath(openCmd); err == nil {
				return openCmd, []string{url}, nil
			}
		}
		return "", nil, fmt.Errorf("no suitable browser opener found for %s", goos)
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
