// Package open hands URLs and built pages to the desktop browser.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hsflores7/folio/internal/commits"
)

// Commit opens the page of the commit matching idOrPrefix.
func Commit(list []commits.CommitSummary, idOrPrefix, urlBase string) (string, error) {
	c, ok := commits.Find(list, idOrPrefix)
	if !ok {
		return "", fmt.Errorf("commit not found or ambiguous: %s", idOrPrefix)
	}
	url := c.URL(urlBase)
	return url, Browser(url)
}

// Page opens a built page from the output directory.
func Page(outputDir, page string) error {
	path := filepath.Join(outputDir, filepath.FromSlash(strings.TrimPrefix(page, "/")))
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, "index.html")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("page not found: %s (run folio build first)", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return Browser("file://" + filepath.ToSlash(abs))
}

// Browser launches the platform opener for target. $BROWSER wins when set.
func Browser(target string) error {
	cmd := browserCommand(runtime.GOOS, os.Getenv("BROWSER"), target)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	return cmd.Process.Release()
}

func browserCommand(goos, browser, target string) *exec.Cmd {
	switch {
	case browser != "":
		return exec.Command(browser, target)
	case goos == "darwin":
		return exec.Command("open", target)
	case goos == "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return exec.Command("xdg-open", target)
	}
}
