package main

import (
	"fmt"
	"html/template"

	webassets "github.com/issuelens/issuelens/web"
)

func loadTemplate() (*template.Template, error) {
	tmpl, err := template.ParseFS(webassets.FS, "templates/index.html")
	if err == nil {
		return tmpl, nil
	}

	fallback, fallbackErr := template.New("index").Parse(defaultIndexTemplate)
	if fallbackErr != nil {
		return nil, fmt.Errorf("parse embedded template: %w", err)
	}
	return fallback, nil
}

const defaultIndexTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>issuelens</title>
</head>
<body>
  <main class="container">
    <h1>issuelens</h1>
    <form method="get" action="/dashboard">
      <label for="repo">Repository</label>
      <input id="repo" name="repo" type="text" required value="{{ .Repo }}" placeholder="owner/repo">
      <button type="submit">Analyze</button>
    </form>
    {{ if .Error }}<p class="error">{{ .Error }}</p>{{ end }}
    {{ if .HasReport }}
    <p>total={{ .Total }} open={{ .Open }} closed={{ .Closed }} avg={{ .AvgResolution }}</p>
    {{ if .NoData }}<p>No issues matched the selected criteria.</p>{{ end }}
    {{ end }}
  </main>
</body>
</html>`
