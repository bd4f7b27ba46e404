package templates

// Fail is the generic failure page.  Errors raised while handling a form
// end up here.
const Fail = `
{{ define "content" }}
<div class="ui container">
	<h2 class="ui header">{{ .StatusCode }}: {{ .StatusText }}</h2>
	<div class="ui error message">{{ .Message }}</div>
	<a class="ui button" href="/">Back to the form</a>
</div>
{{ end }}
`
