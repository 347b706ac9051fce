// Package dashboard holds the embedded page templates and styles.
package dashboard

import "embed"

//go:embed templates/*.html
var Templates embed.FS

//go:embed assets/*
var Assets embed.FS
