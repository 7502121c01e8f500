package views

import (
	"errors"
	"html/template"
	"io"
	"io/fs"

	"github.com/Asad-28/weather-app/internal/modules/weather/viewstate"
)

// Guidance is the help text shown under the labels.
const Guidance = "Press Enter or click 'Get Weather' to fetch weather information.\n" +
	"Use 'Clear' to clear the displayed weather information."

var pageTmpl *template.Template

// loadTemplatesFromFS loads page templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	pageTmpl, err = template.ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return err
	}
	return nil
}

// LoadTemplates loads embedded page templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// PageData is the view model for the weather window.
type PageData struct {
	State    viewstate.State
	Guidance string
}

func NewPageData(s viewstate.State) *PageData {
	return &PageData{State: s, Guidance: Guidance}
}

// RenderPage writes the whole document.
func RenderPage(w io.Writer, data *PageData) error {
	if pageTmpl == nil {
		return errors.New("page template not loaded: call views.LoadTemplates during startup")
	}
	return pageTmpl.ExecuteTemplate(w, "index.html", data)
}

// RenderWindowPartial executes only the window partial into w.
// Use for HTMX fragment swaps.
func RenderWindowPartial(w io.Writer, data *PageData) error {
	if pageTmpl == nil {
		return errors.New("page template not loaded: call views.LoadTemplates during startup")
	}
	return pageTmpl.ExecuteTemplate(w, "partials/window.html", data)
}
