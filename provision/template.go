package provision

import (
	"strings"
	"text/template"
)

// Template contains fields used to resolve url formats and paths for a specific SDK release.
type Template struct {
	// Version of the SDK, as published on the vendor page (e.g. "1.32.0")
	Version string
	// Directory the SDK gets extracted into
	Directory string
	// Archive is the local path the downloaded archive is written to
	Archive string
}

// Resolve executes the provided format string as a template with the Template's fields.
// It returns the resolved string and any error that occurred during template parsing or execution.
func (t Template) Resolve(format string) (string, error) {
	tmpl, err := template.New("sdk").Option("missingkey=error").Parse(format)
	if err != nil {
		return "", err
	}

	var bld strings.Builder
	if err := tmpl.Execute(&bld, t); err != nil {
		return "", err
	}

	return bld.String(), nil
}

// MustResolve executes the provided format string as a template with the Template's fields.
// Panics if the template can't be resolved correctly.
func (t Template) MustResolve(format string) string {
	resolved, err := t.Resolve(format)
	if err != nil {
		panic(err)
	}
	return resolved
}
