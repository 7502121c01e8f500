package views

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/Asad-28/weather-app/internal/modules/weather/types"
	"github.com/Asad-28/weather-app/internal/modules/weather/viewstate"
)

func TestLoadTemplates_success(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates() = %v; want nil", err)
	}
	if pageTmpl == nil {
		t.Fatal("LoadTemplates() left pageTmpl nil")
	}
}

func TestLoadTemplates_failure_sub(t *testing.T) {
	// Empty FS has no "templates" directory; ParseFS finds nothing.
	err := loadTemplatesFromFS(fstest.MapFS{}, "templates")
	if err == nil {
		t.Fatal("loadTemplatesFromFS(emptyFS, \"templates\") = nil; want error")
	}
}

func TestLoadTemplates_failure_parse(t *testing.T) {
	badFS := fstest.MapFS{
		"templates/index.html":          {Data: []byte("{{ .")},
		"templates/partials/window.html": {Data: []byte("ok")},
	}
	if err := loadTemplatesFromFS(badFS, "templates"); err == nil {
		t.Fatal("loadTemplatesFromFS(badFS, \"templates\") = nil; want error")
	}
}

func TestRenderPage_notLoaded(t *testing.T) {
	prev := pageTmpl
	pageTmpl = nil
	t.Cleanup(func() { pageTmpl = prev })

	var buf bytes.Buffer
	for name, render := range map[string]func(io.Writer, *PageData) error{
		"page":    RenderPage,
		"partial": RenderWindowPartial,
	} {
		err := render(&buf, NewPageData(viewstate.New()))
		if err == nil || !strings.Contains(err.Error(), "not loaded") {
			t.Errorf("%s: err = %v; want message containing \"not loaded\"", name, err)
		}
	}
}

func TestRenderPage_emptyState(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}

	var buf bytes.Buffer
	if err := RenderPage(&buf, NewPageData(viewstate.New())); err != nil {
		t.Fatalf("RenderPage(empty) = %v; want nil", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<main",
		"<title>Weather App</title>",
		"Enter the city name:",
		`name="city"`,
		"autofocus",
		"Get Weather",
		`formaction="/clear"`,
		"Press Enter or click",
		`id="summary"`,
		`id="details"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "summary small") {
		t.Error("empty state rendered the small font")
	}
}

func TestRenderPage_withReading(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}

	s := viewstate.New().WithInput("Lima").WithReading(types.Reading{
		Condition: "Clear", Temp: 20, TempMin: 18, TempMax: 22,
		Pressure: 1013, Humidity: 40, Wind: 3.6,
		Sunrise: "04:13:20 PM", Sunset: "01:23:20 AM",
	})

	var buf bytes.Buffer
	if err := RenderPage(&buf, NewPageData(s)); err != nil {
		t.Fatalf("RenderPage() = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`value="Lima"`,
		"☀️ Clear\n20°C",
		"\nMin Temp: 18°C\nMax Temp: 22°C",
		"Sunset: 01:23:20 AM",
		`data-status="ok"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderWindowPartial_errorState(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}

	var buf bytes.Buffer
	if err := RenderWindowPartial(&buf, NewPageData(viewstate.New().WithInput("Atlantis").WithNotFound())); err != nil {
		t.Fatalf("RenderWindowPartial() = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<!DOCTYPE html>") {
		t.Error("partial must not render the document shell")
	}
	if !strings.Contains(out, viewstate.NotFoundText) {
		t.Errorf("output missing not-found text; got %q", out)
	}
	if !strings.Contains(out, "summary small") {
		t.Error("error state must render the small font")
	}
}

func TestRenderPage_escapesInput(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}

	var buf bytes.Buffer
	s := viewstate.New().WithInput(`"><script>alert(1)</script>`)
	if err := RenderPage(&buf, NewPageData(s)); err != nil {
		t.Fatalf("RenderPage() = %v", err)
	}
	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Error("city input was not escaped")
	}
}

// Ensure RenderPage propagates write errors (e.g. closed writer).
func TestRenderPage_writeError(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}

	w := &failingWriter{err: io.ErrClosedPipe}
	err := RenderPage(w, NewPageData(viewstate.New()))
	if err != io.ErrClosedPipe {
		t.Errorf("RenderPage() = %v; want %v", err, io.ErrClosedPipe)
	}
}

type failingWriter struct{ err error }

func (f *failingWriter) Write([]byte) (int, error) { return 0, f.err }
