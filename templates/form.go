package templates

// FormWrapper wraps a pre-rendered form body in a POST form carrying the
// session's CSRF token.
const FormWrapper = `<form method="POST">
<input type="hidden" name="_csrf" value="{{ .CSRFToken }}">
{{ .Body }}
</form>`

// FormPage shows a wrapped form with its title and, after an invalid
// submission, the summary of problems.
const FormPage = `
{{ define "content" }}
			<div class="formtonic">
				<div class="ui middle very relaxed page grid">
					<div class="column">
						<h3 class="ui top attached header">
							{{ .title }}
						</h3>
						<div class="ui attached segment">
							{{ if .problems }}
								<div class="ui error message">
									{{ .problems }}
								</div>
							{{ end }}
							{{ .form }}
						</div>
					</div>
				</div>
			</div>
{{ end }}
`

// SubmissionView shows the stored values of a single submission and the
// output of the action that processed it.
const SubmissionView = `
{{ define "content" }}
			<div class="formtonic">
				<div class="ui container">
					<h3 class="ui top attached header">
						Submission S{{ .submission.ID }}
					</h3>
					<div class="ui attached segment">
						<table class="ui definition table">
							<tbody>
								{{ range $key, $value := .submission.ValueMap }}
									<tr>
										<td class="four wide">{{ $key }}</td>
										<td>{{ $value }}</td>
									</tr>
								{{ end }}
							</tbody>
						</table>
						<div>
							Submitted {{ .submit_time }}
						</div>
						<div>
							{{ if .end_time }}
								Finished {{ .end_time }}
							{{ else }}
								In queue
							{{ end }}
						</div>
						{{ range $msg := .submission.Messages }}
							<div>{{ $msg }}</div>
						{{ end }}
						{{ if .submission.Error }}
							<div class="ui error message">{{ .submission.Error }}</div>
						{{ end }}
					</div>
				</div>
			</div>
{{ end }}
`
