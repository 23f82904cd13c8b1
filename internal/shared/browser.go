package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// platformOpeners maps GOOS to the command that hands a URL to the default
// browser. Used by the sync login flow to start the OAuth dance.
var platformOpeners = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open"},
	"windows": {"cmd", "/c", "start"},
}

var getRuntime = func() string { return runtime.GOOS }

// OpenBrowser opens url in the system default browser. The command is started
// and not waited on; the caller blocks on the OAuth callback instead.
func OpenBrowser(url string) error {
	opener, ok := platformOpeners[getRuntime()]
	if !ok {
		return fmt.Errorf("unsupported platform: %s", getRuntime())
	}

	cmd := exec.Command(opener[0], append(opener[1:], url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
