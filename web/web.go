// Package web embeds the storefront templates and static assets.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed views static
var content embed.FS

// Views returns the page templates rooted at the views directory.
func Views() http.FileSystem {
	return subFS("views")
}

// Static returns the static assets rooted at the static directory.
func Static() http.FileSystem {
	return subFS("static")
}

func subFS(dir string) http.FileSystem {
	sub, err := fs.Sub(content, dir)
	if err != nil {
		// dir is a compile-time constant embedded above.
		panic(err)
	}
	return http.FS(sub)
}
