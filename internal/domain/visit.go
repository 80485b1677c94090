package domain

import "time"

// Browser identifies one of the supported browser families
type Browser string

const (
	BrowserChrome    Browser = "Chrome"
	BrowserFirefox   Browser = "Firefox"
	BrowserSafari    Browser = "Safari"
	BrowserBrave     Browser = "Brave"
	BrowserOpera     Browser = "Opera"
	BrowserEdge      Browser = "Edge"
	BrowserVivaldi   Browser = "Vivaldi"
	BrowserTor       Browser = "Tor Browser"
	BrowserChromium  Browser = "Chromium"
	BrowserLibreWolf Browser = "LibreWolf"
)

// Family groups browsers that share a history database schema
type Family string

const (
	FamilyChromium Family = "chromium"
	FamilyFirefox  Family = "firefox"
	FamilySafari   Family = "safari"
)

// AllBrowsers lists every supported browser in stable display order
func AllBrowsers() []Browser {
	return []Browser{
		BrowserChrome,
		BrowserFirefox,
		BrowserSafari,
		BrowserBrave,
		BrowserOpera,
		BrowserEdge,
		BrowserVivaldi,
		BrowserTor,
		BrowserChromium,
		BrowserLibreWolf,
	}
}

// Family returns the schema family a browser belongs to
func (b Browser) Family() Family {
	switch b {
	case BrowserFirefox, BrowserTor, BrowserLibreWolf:
		return FamilyFirefox
	case BrowserSafari:
		return FamilySafari
	default:
		return FamilyChromium
	}
}

// Key returns the lowercase identifier used in config files and CLI flags
func (b Browser) Key() string {
	switch b {
	case BrowserChrome:
		return "chrome"
	case BrowserFirefox:
		return "firefox"
	case BrowserSafari:
		return "safari"
	case BrowserBrave:
		return "brave"
	case BrowserOpera:
		return "opera"
	case BrowserEdge:
		return "edge"
	case BrowserVivaldi:
		return "vivaldi"
	case BrowserTor:
		return "tor"
	case BrowserChromium:
		return "chromium"
	case BrowserLibreWolf:
		return "librewolf"
	default:
		return ""
	}
}

// ParseBrowser converts a config/CLI identifier to a Browser.
// The second return value is false for unknown identifiers.
func ParseBrowser(s string) (Browser, bool) {
	for _, b := range AllBrowsers() {
		if b.Key() == s {
			return b, true
		}
	}
	return "", false
}

// Visit is one normalized browsing event. VisitedAt is always canonical UTC;
// raw source epochs never cross the adapter boundary.
type Visit struct {
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	VisitedAt  time.Time `json:"visited_at"`
	VisitCount uint      `json:"visit_count"`
	Browser    Browser   `json:"browser"`
	Profile    string    `json:"profile,omitempty"`
}

// Domain returns the host-name component of the visit URL,
// or "unknown" when the URL cannot be parsed.
func (v *Visit) Domain() string {
	return Host(v.URL)
}
