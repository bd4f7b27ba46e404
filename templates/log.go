package templates

// LogView lists the stored submissions given as "submissions".
const LogView = `
{{define "content"}}
	<div class="formtonic list">
		<div class="ui container">
			<p>
				<span class="description">Submissions</span>
			</p>
			<table class="ui unstackable fixed single line table">
				<tbody>
					{{range $sub := .submissions}}
						<tr>
							<td class="name two wide">S{{$sub.ID}}</td>
							<td class="name text bold four wide"><a href="/log/{{$sub.ID}}">{{$sub.Label}}</a></td>
							<td class="name four wide">{{$sub.SubmitTime.Format "15:04:05 Mon Jan 2 2006"}}</td>
							<td class="name four wide">{{if not $sub.EndTime.IsZero}}{{$sub.EndTime.Format "15:04:05 Mon Jan 2 2006"}}{{else}}In queue{{end}}</td>
							<td class="name four wide">{{if $sub.Error}}{{$sub.Error}}{{end}}</td>
						</tr>
					{{end}}
				</tbody>
			</table>
		</div>
	</div>
{{end}}
`
