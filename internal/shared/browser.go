package shared

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

var getRuntime = func() string { return runtime.GOOS }

// browserCommand picks the launcher for the current platform. A BROWSER
// environment variable overrides the platform default, matching the
// convention most Linux terminal tools follow.
func browserCommand(url string) (string, []string, error) {
	if b := os.Getenv("BROWSER"); b != "" {
		return b, []string{url}, nil
	}
	switch rt := getRuntime(); rt {
	case "darwin":
		return "open", []string{url}, nil
	case "linux":
		return "xdg-open", []string{url}, nil
	case "windows":
		return "cmd", []string{"/c", "start", url}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", rt)
	}
}

// OpenBrowser opens the default system browser to the specified URL.
//
// Supports macOS, Linux, and Windows platforms.
func OpenBrowser(url string) error {
	name, args, err := browserCommand(url)
	if err != nil {
		return err
	}
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

// OpenBrowserAfter opens the browser once the delay elapses, giving a server
// started in the same process time to begin listening. Runs in its own
// goroutine; the returned channel carries the result.
func OpenBrowserAfter(url string, delay time.Duration) <-chan error {
	errs := make(chan error, 1)
	go func() {
		time.Sleep(delay)
		errs <- OpenBrowser(url)
	}()
	return errs
}
