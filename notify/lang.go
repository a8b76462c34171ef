package notify

import (
	"embed"
	"path"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

//go:embed locales/*.yaml
var locales embed.FS

var (
	bundle     *i18n.Bundle
	bundleOnce sync.Once
)

func initBundle() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		data, err := locales.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			panic(err)
		}
		bundle.MustParseMessageFileBytes(data, e.Name())
	}
}

// Outcome is the result of a listing operation worth telling the user about
type Outcome string

const (
	Added        Outcome = "added"
	Updated      Outcome = "updated"
	Deleted      Outcome = "deleted"
	AddFailed    Outcome = "add_failed"
	UpdateFailed Outcome = "update_failed"
	DeleteFailed Outcome = "delete_failed"
	NotFound     Outcome = "not_found"
)

func (o Outcome) failed() bool {
	switch o {
	case Added, Updated, Deleted:
		return false
	}
	return true
}

// Messages renders notifications in one language
type Messages struct {
	localizer *i18n.Localizer
}

// NewMessages returns the messages of the given languages, e.g. "zh-TW".
// Unknown languages fall back to English.
func NewMessages(langs ...string) *Messages {
	bundleOnce.Do(initBundle)
	return &Messages{localizer: i18n.NewLocalizer(bundle, langs...)}
}

func (m *Messages) text(id string, data map[string]interface{}) string {
	s, err := m.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return s
}

// Listing describes the outcome of an operation on a listing kind, which
// is "donation" or "request"
func (m *Messages) Listing(kind string, outcome Outcome) Notification {
	if outcome.failed() {
		return Notification{
			Level:       LevelError,
			Title:       m.text("error", nil),
			Description: m.text(kind+"_"+string(outcome)+"_detail", nil),
		}
	}

	return Notification{
		Level:       LevelSuccess,
		Title:       m.text(kind+"_"+string(outcome), nil),
		Description: m.text(kind+"_"+string(outcome)+"_detail", nil),
	}
}

func (m *Messages) ConnectionError() Notification {
	return Notification{
		Level:       LevelError,
		Title:       m.text("connection_error", nil),
		Description: m.text("connection_error_detail", nil),
	}
}

func (m *Messages) Welcome(name string) Notification {
	return Notification{
		Level: LevelSuccess,
		Title: m.text("welcome", map[string]interface{}{"Name": name}),
	}
}

func (m *Messages) InvalidCredentials() Notification {
	return Notification{Level: LevelError, Title: m.text("invalid_credentials", nil)}
}

func (m *Messages) LoggedOut() Notification {
	return Notification{Level: LevelInfo, Title: m.text("logged_out", nil)}
}
