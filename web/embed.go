// Package web holds the browser front end of the game window.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var Assets embed.FS

// StaticFS returns the front end rooted at its index page.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(Assets, "static")
	if err != nil {
		return http.FS(embed.FS{})
	}
	return http.FS(sub)
}
