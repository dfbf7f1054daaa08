package enhancers

import (
	"embed"
	"io/fs"
)

//go:embed assets/*.css
var embeddedAssets embed.FS

// AssetsFS exposes the stylesheet for the rendered widgets.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(enhancers.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
