package collector

import (
	"strings"

	"github.com/mileusna/useragent"
)

// Environment is the attribute set captured once at session start.
type Environment struct {
	DeviceType   string
	OSName       string
	Browser      string
	NetworkType  string
	PWAInstalled bool
	LanguageCode string
	Timezone     string
}

// EnvironmentProbe inspects the execution environment for the session's
// device/browser/network attributes. Implementations are host-specific; the
// collector only sees the attribute set.
type EnvironmentProbe interface {
	Probe() Environment
}

// StaticProbe returns a fixed environment, for tests and hosts whose
// attributes are known at construction time (kiosks, embedded webviews).
type StaticProbe struct {
	Env Environment
}

func (p StaticProbe) Probe() Environment {
	return p.Env
}

// UserAgentProbe derives device class, OS name and browser family from a
// user-agent string; the remaining attributes come from the configured base.
type UserAgentProbe struct {
	UserAgent string
	Base      Environment
}

func (p UserAgentProbe) Probe() Environment {
	env := p.Base
	parsed := useragent.Parse(p.UserAgent)

	switch {
	case parsed.Mobile:
		env.DeviceType = "mobile"
	case parsed.Tablet:
		env.DeviceType = "tablet"
	case parsed.Desktop:
		env.DeviceType = "desktop"
	case parsed.Bot:
		env.DeviceType = "bot"
	}
	if parsed.OS != "" {
		env.OSName = parsed.OS
	}
	if parsed.Name != "" {
		env.Browser = parsed.Name
	}
	return env
}

// PrimaryLanguage reduces an ordered preference list ("es-AR", "es", "en")
// to the two-letter code of the first entry.
func PrimaryLanguage(languages []string) string {
	if len(languages) == 0 {
		return ""
	}
	lang := languages[0]
	if i := strings.IndexByte(lang, '-'); i > 0 {
		lang = lang[:i]
	}
	return strings.ToLower(lang)
}
