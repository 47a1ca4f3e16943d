package consolidated

import (
	"bytes"
	"html/template"
	"time"
)

const pageTemplate = `{{define "page"}}<!DOCTYPE html>
<html lang="fr">
<head><meta charset="utf-8"><title>{{.Entry.Title}} ({{.Entry.NorNumber}})</title></head>
<body>
<article class="journal-entry">
<header>
<h1>{{.Entry.Title}}</h1>
<p class="nor">NOR : {{.Entry.NorNumber}}</p>
{{if not .Entry.PublicationDate.IsZero}}<p class="date">Publié le {{date .Entry.PublicationDate}}</p>{{end}}
{{with .Entry.AuthorName}}<p class="author">{{.}}{{with $.Entry.AuthorRole}}, {{.}}{{end}}</p>{{end}}
<p class="tracking"><a href="{{trackedHref}}">{{if .Tracked}}Masquer{{else}}Afficher{{end}} les modifications</a></p>
</header>
<div class="outline">{{range .Outline}}{{template "section" .}}{{end}}</div>
{{with .History}}<section class="history">
<a class="toggle" href="{{historyHref}}">Historique des modifications ({{.Count}})</a>
{{if .Expanded}}<ol>{{range .Items}}<li value="{{.Index}}"><time>{{.Date}}</time> {{.HTML}}</li>{{end}}</ol>{{end}}
</section>{{end}}
</article>
</body>
</html>{{end}}
{{define "section"}}<section class="section level-{{.Level}}" id="s-{{.ID}}">
{{if .Collapsible}}<a class="toggle heading" href="{{toggleHref .Toggle}}">{{if .Collapsed}}[+]{{else}}[-]{{end}} {{.Title}}</a>
{{end}}{{.Content}}{{range .Children}}{{template "section" .}}{{end}}</section>
{{end}}`

var pageTmpl = template.Must(template.New("consolidated").Funcs(template.FuncMap{
	"date":        func(time.Time) string { return "" },
	"toggleHref":  func(string) string { return "" },
	"historyHref": func() string { return "" },
	"trackedHref": func() string { return "" },
}).Parse(pageTemplate))

// HTML renders the view as a standalone page. Links carry the next state in
// their query string.
func (v *View) HTML() ([]byte, error) {
	tmpl, err := pageTmpl.Clone()
	if err != nil {
		return nil, err
	}

	loc := v.opts.Location
	if loc == nil {
		loc = time.UTC
	}

	tmpl.Funcs(template.FuncMap{
		"date": func(t time.Time) string {
			return t.In(loc).Format("02/01/2006")
		},
		"toggleHref": func(collapsed string) string {
			q := v.opts.Query()
			q.Del("collapsed")
			if collapsed != "" {
				q.Set("collapsed", collapsed)
			}
			return "?" + q.Encode()
		},
		"historyHref": func() string {
			next := v.opts
			next.ShowHistory = !next.ShowHistory
			return "?" + next.Query().Encode()
		},
		"trackedHref": func() string {
			next := v.opts
			next.Tracked = !next.Tracked
			return "?" + next.Query().Encode()
		},
	})

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "page", v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
