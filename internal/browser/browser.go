package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// start is swapped out in tests.
var start = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// command returns the opener invocation for goos.
func command(goos, rawURL string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		// rundll32 instead of cmd /c start avoids shell interpretation
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
	default:
		return "xdg-open", []string{rawURL}
	}
}

// Open launches the system browser on an http(s) URL without waiting for it.
func Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("refusing to open URL without a host: %q", rawURL)
	}

	name, args := command(runtime.GOOS, rawURL)
	if err := start(name, args...); err != nil {
		return fmt.Errorf("launching %s: %w", name, err)
	}
	return nil
}
