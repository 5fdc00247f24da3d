package render

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// localeFS holds one active.<lang>.json per language; message keys are declared in internal/config.
//
//go:embed locales/*.json
var localeFS embed.FS

// Catalog resolves message keys to English text and formats numbers with digit grouping.
type Catalog struct {
	localizer *i18n.Localizer
	printer   *message.Printer
	langs     []string
}

// factKeys maps fact identifiers to their message keys.
var factKeys = map[string]string{
	config.FactFullMoons:  config.TKeyFactMoons,
	config.FactHeartbeats: config.TKeyFactHeart,
	config.FactWeeks:      config.TKeyFactWeeks,
	config.FactSunrises:   config.TKeyFactSunrises,
}

// errorKeys maps validation kinds to user-facing messages.
var errorKeys = map[engine.Kind]string{
	engine.KindMissingInput: config.TKeyErrMissing,
	engine.KindFutureDate:   config.TKeyErrFuture,
	engine.KindTooOld:       config.TKeyErrTooOld,
}

// NewCatalog loads the embedded message files. Only English ships.
func NewCatalog() *Catalog {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	c := &Catalog{printer: message.NewPrinter(language.English)}

	entries, err := localeFS.ReadDir(config.LocalesDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, config.LocalePrefix) || !strings.HasSuffix(name, config.LocaleSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, config.LocalePrefix), config.LocaleSuffix)
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, config.LocalesDir+"/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		c.langs = append(c.langs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	c.localizer = i18n.NewLocalizer(bundle, config.DefaultLanguage)
	return c
}

// Languages lists the loaded catalogue languages.
func (c *Catalog) Languages() []string {
	return c.langs
}

// Msg translates key, falling back to the key itself when it is missing.
func (c *Catalog) Msg(key string, data map[string]any) string {
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// Number formats n with thousands separators ("8,766").
func (c *Catalog) Number(n int64) string {
	return c.printer.Sprintf("%d", n)
}

// Headline is the "You are X years, Y months, and Z days old!" sentence.
func (c *Catalog) Headline(b engine.Breakdown) string {
	return c.Msg(config.TKeyHeadline, map[string]any{
		"Years":  b.Years,
		"Months": b.Months,
		"Days":   b.Days,
	})
}

// FactText renders a fun fact sentence.
func (c *Catalog) FactText(f engine.Fact) string {
	key, ok := factKeys[f.ID]
	if !ok {
		return c.Number(f.Value)
	}
	return c.Msg(key, map[string]any{"Value": c.Number(f.Value)})
}

// WithText fills the Text field of every fact.
func (c *Catalog) WithText(facts []engine.Fact) []engine.Fact {
	out := make([]engine.Fact, len(facts))
	for i, f := range facts {
		f.Text = c.FactText(f)
		out[i] = f
	}
	return out
}

// ErrorMessage returns the user-facing text for a validation error, or err.Error() otherwise.
func (c *Catalog) ErrorMessage(err error) string {
	if kind, ok := engine.KindOf(err); ok {
		return c.Msg(errorKeys[kind], nil)
	}
	return err.Error()
}

// Summary titles calendar events. It satisfies engine.SummaryFunc.
func (c *Catalog) Summary(name string, age int, ageKnown bool) string {
	switch {
	case !ageKnown:
		return c.Msg(config.TKeyEvtSummary, map[string]any{"Name": name})
	case age == 0:
		return c.Msg(config.TKeyEvtBirth, map[string]any{"Name": name})
	default:
		return c.Msg(config.TKeyEvtSummaryAge, map[string]any{"Name": name, "Age": age})
	}
}
