// AngelaMos | 2026
// templates.go

package mail

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*
var templateFS embed.FS

const company = "A.N.D. GROUP OF COMPANIES LLC"

// Templates renders the transactional emails. HTML bodies are escaped by
// html/template; text bodies use text/template.
type Templates struct {
	siteName string
	siteURL  string
	html     *htmltemplate.Template
	text     *texttemplate.Template
	now      func() time.Time
}

func NewTemplates(siteName, siteURL string) (*Templates, error) {
	html, err := htmltemplate.New("html").
		Option("missingkey=error").
		Funcs(sprig.FuncMap()).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}

	text, err := texttemplate.New("text").
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}

	return &Templates{
		siteName: siteName,
		siteURL:  siteURL,
		html:     html,
		text:     text,
		now:      time.Now,
	}, nil
}

type templateData struct {
	SiteName   string
	SiteURL    string
	Company    string
	Year       int
	Name       string
	Code       string
	TTLMinutes int
}

func (t *Templates) data(name string) templateData {
	return templateData{
		SiteName: t.siteName,
		SiteURL:  t.siteURL,
		Company:  company,
		Year:     t.now().Year(),
		Name:     name,
	}
}

func (t *Templates) Verification(
	to, name, code string,
	ttl time.Duration,
) (Message, error) {
	d := t.data(name)
	d.Code = code
	d.TTLMinutes = int(ttl / time.Minute)

	return t.render(
		to,
		fmt.Sprintf("Verify your %s account", t.siteName),
		"verification",
		d,
	)
}

func (t *Templates) Welcome(to, name string) (Message, error) {
	return t.render(
		to,
		fmt.Sprintf("Welcome to %s", t.siteName),
		"welcome",
		t.data(name),
	)
}

func (t *Templates) render(
	to, subject, name string,
	d templateData,
) (Message, error) {
	var html, text bytes.Buffer

	if err := t.html.ExecuteTemplate(&html, name+".html", d); err != nil {
		return Message{}, fmt.Errorf("render %s html: %w", name, err)
	}

	if err := t.text.ExecuteTemplate(&text, name+".txt", d); err != nil {
		return Message{}, fmt.Errorf("render %s text: %w", name, err)
	}

	return Message{
		To:      to,
		Subject: subject,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
