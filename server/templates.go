package server

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>iltable</title>
  <style>
    body { font-family: sans-serif; }
    table { border-collapse: collapse; }
    th, td { border: 1px solid #ccc; padding: 2px 6px; text-align: left; }
    .badge { color: #888; font-size: 0.8em; margin-right: 4px; }
    .legend span { margin-right: 12px; }
    form { display: inline; }
    button.active { font-weight: bold; color: #06c; }
  </style>
</head>
<body>
  <div class="legend">
    {{- range .Legend }}
    <span><span class="badge">[{{ .Badge }}]</span>{{ .Kind }}</span>
    {{- end }}
  </div>
  <table>
    <thead>
      <tr>
        <th></th>
        {{- range .Columns }}
        <th>
          {{ .Name }}
          <form method="post" action="/sort/{{ .Path }}/asc"><button{{ if eq .Sort "asc" }} class="active"{{ end }}>&#9650;</button></form>
          <form method="post" action="/sort/{{ .Path }}/desc"><button{{ if eq .Sort "desc" }} class="active"{{ end }}>&#9660;</button></form>
          <form method="post" action="/filter/{{ .Path }}/toggle"><button>{{ if .FilterOpen }}&#10005;{{ else }}&#128269;{{ end }}</button></form>
          {{- if .FilterOpen }}
          <form method="post" action="/filter/{{ .Path }}/search">
            <input type="hidden" name="key" value="Enter">
            <input type="text" name="query" value="{{ .Query }}" autofocus>
          </form>
          {{- end }}
        </th>
        {{- end }}
      </tr>
    </thead>
    <tbody>
      {{- range .Rows }}
      <tr>
        <td>{{ .Index }}</td>
        {{- range .Cells }}
        <td>{{ if not .Null }}<span class="badge">[{{ .Badge }}]</span>{{ .Value }}{{ end }}</td>
        {{- end }}
      </tr>
      {{- end }}
    </tbody>
  </table>
  <p>{{ .Visible }} of {{ .Total }} rows</p>
</body>
</html>
`))

var statusTemplate = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>iltable</title>
  {{- if .Retry }}
  <meta http-equiv="refresh" content="1">
  {{- end }}
</head>
<body>
  <p>{{ .Message }}</p>
</body>
</html>
`))
