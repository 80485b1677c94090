// Package locate resolves where each browser keeps its history database on
// this machine. Resolution is pure path logic over an injectable home
// directory and OS name, so the lookup tables are testable without a real
// browser install.
package locate

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/vburojevic/webtrail/internal/adapter"
	"github.com/vburojevic/webtrail/internal/domain"
)

// Locator finds history sources for supported browsers
type Locator struct {
	home string
	goos string
}

// New returns a locator for the current user and OS
func New() (*Locator, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return ForSystem(home, runtime.GOOS), nil
}

// ForSystem returns a locator rooted at an explicit home directory and OS
// name ("darwin" or "linux")
func ForSystem(home, goos string) *Locator {
	return &Locator{home: home, goos: goos}
}

// Find returns the existing history sources for one browser. An empty slice
// means the browser is not installed or keeps no history here.
func (l *Locator) Find(b domain.Browser) []adapter.Source {
	switch b {
	case domain.BrowserSafari:
		return l.safariSources()
	case domain.BrowserFirefox, domain.BrowserLibreWolf:
		return l.mozillaSources(b)
	case domain.BrowserTor:
		return l.torSources()
	default:
		return l.chromiumSources(b)
	}
}

// FindAll resolves sources for every browser in the list, keeping the
// list's order
func (l *Locator) FindAll(browsers []domain.Browser) []adapter.Source {
	var out []adapter.Source
	for _, b := range browsers {
		out = append(out, l.Find(b)...)
	}
	return out
}

// Chromium-family stores: one well-known History file per OS. Opera keeps
// it at the app-support root instead of a Default profile dir.
func (l *Locator) chromiumSources(b domain.Browser) []adapter.Source {
	var darwin, linux, profile string
	switch b {
	case domain.BrowserChrome:
		darwin = "Library/Application Support/Google/Chrome/Default/History"
		linux = ".config/google-chrome/Default/History"
		profile = "Default"
	case domain.BrowserBrave:
		darwin = "Library/Application Support/BraveSoftware/Brave-Browser/Default/History"
		linux = ".config/BraveSoftware/Brave-Browser/Default/History"
		profile = "Default"
	case domain.BrowserOpera:
		darwin = "Library/Application Support/com.operasoftware.Opera/History"
		linux = ".config/opera/History"
	case domain.BrowserEdge:
		darwin = "Library/Application Support/Microsoft Edge/Default/History"
		linux = ".config/microsoft-edge/Default/History"
		profile = "Default"
	case domain.BrowserVivaldi:
		darwin = "Library/Application Support/Vivaldi/Default/History"
		linux = ".config/vivaldi/Default/History"
		profile = "Default"
	case domain.BrowserChromium:
		darwin = "Library/Application Support/Chromium/Default/History"
		linux = ".config/chromium/Default/History"
		profile = "Default"
	default:
		return nil
	}

	rel := linux
	if l.goos == "darwin" {
		rel = darwin
	}
	path := filepath.Join(l.home, filepath.FromSlash(rel))
	if !fileExists(path) {
		return nil
	}
	return []adapter.Source{{Browser: b, Profile: profile, Path: path}}
}

// Mozilla-family stores: scan the profiles directory for default profiles
// holding a places.sqlite. More than one default-named profile is possible
// after OS migrations; all are reported.
func (l *Locator) mozillaSources(b domain.Browser) []adapter.Source {
	var dir string
	switch {
	case b == domain.BrowserLibreWolf && l.goos == "darwin":
		dir = "Library/Application Support/LibreWolf/Profiles"
	case b == domain.BrowserLibreWolf:
		dir = ".librewolf"
	case l.goos == "darwin":
		dir = "Library/Application Support/Firefox/Profiles"
	default:
		dir = ".mozilla/firefox"
	}
	return profileSources(b, filepath.Join(l.home, filepath.FromSlash(dir)), func(name string) bool {
		return strings.Contains(strings.ToLower(name), "default")
	})
}

func (l *Locator) torSources() []adapter.Source {
	candidates := []string{
		filepath.Join(l.home, filepath.FromSlash(".tor-browser/app/Browser/TorBrowser/Data/Browser")),
		filepath.Join(l.home, filepath.FromSlash("Desktop/tor-browser_en-US/Browser/TorBrowser/Data/Browser")),
	}
	if l.goos == "darwin" {
		candidates = []string{
			filepath.Join(l.home, filepath.FromSlash("Library/Application Support/TorBrowser-Data/Browser")),
		}
	}
	for _, dir := range candidates {
		srcs := profileSources(domain.BrowserTor, dir, func(name string) bool {
			return strings.HasSuffix(name, ".default")
		})
		if len(srcs) > 0 {
			return srcs
		}
	}
	return nil
}

// Safari moved its store twice over the years; take the first candidate
// that exists. macOS only.
func (l *Locator) safariSources() []adapter.Source {
	if l.goos != "darwin" {
		return nil
	}
	for _, rel := range []string{
		"Library/Safari/History.db",
		"Library/Safari/History.sqlite",
		"Library/Safari/UserData/History.db",
		"Library/Containers/com.apple.Safari/Data/Library/Safari/History.db",
	} {
		path := filepath.Join(l.home, filepath.FromSlash(rel))
		if fileExists(path) {
			return []adapter.Source{{Browser: domain.BrowserSafari, Path: path}}
		}
	}
	return nil
}

func profileSources(b domain.Browser, dir string, match func(string) bool) []adapter.Source {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []adapter.Source
	for _, e := range entries {
		if !e.IsDir() || !match(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name(), "places.sqlite")
		if fileExists(path) {
			out = append(out, adapter.Source{Browser: b, Profile: e.Name(), Path: path})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Profile < out[j].Profile })
	return out
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
