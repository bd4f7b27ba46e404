package form

import (
	"bytes"
	"html/template"

	"github.com/G-Node/formtonic/templates"
)

var wrapperTmpl = template.Must(template.New("formwrapper").Parse(templates.FormWrapper))

// Wrapper puts a rendered body (usually a *Form) inside a <form
// method="POST"> element together with the CSRF token of the current
// request.
type Wrapper struct {
	Body      Renderer
	CSRFToken string
}

// NewWrapper returns a Wrapper around body.
func NewWrapper(body Renderer, csrfToken string) *Wrapper {
	return &Wrapper{Body: body, CSRFToken: csrfToken}
}

// AsHTML executes the wrapper template.
func (w *Wrapper) AsHTML() (template.HTML, error) {
	data := struct {
		CSRFToken string
		Body      template.HTML
	}{
		CSRFToken: w.CSRFToken,
	}
	if w.Body != nil {
		data.Body = w.Body.AsHTML()
	}
	buf := new(bytes.Buffer)
	if err := wrapperTmpl.Execute(buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
