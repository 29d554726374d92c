package spaces

import (
	"io/fs"

	"github.com/LyzrCore/spaces/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// AssetsFS exposes the stylesheet and the form runtime script so Go
// applications can serve them next to rendered pages.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(spaces.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}
