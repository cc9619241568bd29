package webassets

import "embed"

// FS contains web templates and static assets embedded at build time.
//
//go:embed templates/index.html static/*
var FS embed.FS
