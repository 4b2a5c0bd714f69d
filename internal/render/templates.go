package render

// nodeTemplate renders a compose.Node tree. It recurses through "children".
const nodeTemplate = `
{{- define "children"}}{{range .Children}}{{template "node" .}}{{end}}{{end}}

{{- define "node"}}
{{- if eq .Kind "page"}}<div class="page page-{{.Key}}">{{template "children" .}}</div>
{{- else if eq .Kind "section"}}<section class="section{{with .Role}} section-{{.}}{{end}}"{{with .Key}} id="{{slug .}}"{{end}}>{{template "children" .}}</section>
{{- else if eq .Kind "heading"}}{{template "heading" .}}
{{- else if eq .Kind "text"}}<p class="text{{with .Role}} text-{{.}}{{end}}">{{.Text}}</p>
{{- else if eq .Kind "prose"}}<div class="prose">{{prose .Text}}</div>
{{- else if eq .Kind "grid"}}<div class="grid">{{template "children" .}}</div>
{{- else if eq .Kind "card"}}<article class="card">{{template "children" .}}</article>
{{- else if eq .Kind "image"}}<div class="card-image"><img src="{{.Src}}" alt="{{.Alt}}" loading="lazy"></div>
{{- else if eq .Kind "link"}}{{template "link" .}}
{{- else if eq .Kind "list"}}{{if .Ordered}}<ol class="list list-ordered">{{template "children" .}}</ol>{{else}}<ul class="list">{{template "children" .}}</ul>{{end}}
{{- else if eq .Kind "list-item"}}<li>{{template "children" .}}</li>
{{- else if eq .Kind "collapsible"}}<details class="collapsible"{{with .Key}} id="{{slug .}}"{{end}}{{if .Expanded}} open{{end}}><summary>{{.Text}}</summary><div class="collapsible-body">{{template "children" .}}</div></details>
{{- else if eq .Kind "notice"}}<div class="notice" role="status"><p class="notice-title">{{.Text}}</p>{{template "children" .}}</div>
{{- else if eq .Kind "actions"}}<div class="actions">{{template "children" .}}</div>
{{- else}}{{unknown .Kind}}
{{- end}}
{{- end}}

{{- define "heading"}}
{{- if eq .Level 1}}<h1>{{template "heading-text" .}}</h1>
{{- else if eq .Level 2}}<h2>{{template "heading-text" .}}</h2>
{{- else if eq .Level 3}}<h3>{{template "heading-text" .}}</h3>
{{- else}}<h4>{{template "heading-text" .}}</h4>
{{- end}}
{{- end}}

{{- define "heading-text"}}
{{- if .Children}}{{range $i, $c := .Children}}{{if $i}} {{end}}<span{{with $c.Role}} class="{{.}}"{{end}}>{{$c.Text}}</span>{{end}}
{{- else}}{{.Text}}{{end}}
{{- end}}

{{- define "link"}}
{{- if .External}}<a class="link{{with .Role}} link-{{.}}{{end}}" href="{{.Href}}" target="_blank" rel="noopener noreferrer">{{.Text}}</a>
{{- else}}<a class="link{{with .Role}} link-{{.}}{{end}}" href="{{.Href}}">{{.Text}}</a>
{{- end}}
{{- end}}
`

// shellTemplate is the layout frame shared by every page: header with the
// primary nav, the mobile menu built from the same entries, and the body.
const shellTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.SiteName}}</title>
  <meta name="description" content="{{.Description}}">
  <link rel="stylesheet" href="{{.Stylesheet}}">
</head>
<body{{if .LiveReload}} data-livereload="{{.LiveReload}}"{{end}}>
  <header class="navbar" data-menu-open="{{.MenuOpen}}">
    <div class="navbar-inner">
      <a class="brand" href="{{.Home}}">{{.Brand}}</a>
      <nav class="nav-primary" aria-label="Primary">
        <ul>
          {{- range .Items}}
          <li class="nav-item"><a href="{{.Href}}" data-active="{{.Active}}"{{if .Active}} aria-current="page"{{end}}>{{.Label}}</a></li>
          {{- end}}
        </ul>
      </nav>
      <div class="nav-end">
        {{- range .Links}}
        <a class="nav-external" href="{{.URL}}" target="_blank" rel="noopener noreferrer" aria-label="{{.Label}}">{{.Label}}</a>
        {{- end}}
        <button class="menu-toggle" type="button" aria-controls="nav-menu" aria-expanded="{{.MenuOpen}}" aria-label="{{.MenuLabel}}">
          <span></span><span></span><span></span>
        </button>
      </div>
    </div>
    <nav id="nav-menu" class="nav-menu" aria-label="Menu"{{if not .MenuOpen}} hidden{{end}}>
      <ul>
        {{- range .Items}}
        <li class="nav-menu-item"><a href="{{.Href}}" data-active="{{.Active}}"{{if .Active}} aria-current="page"{{end}}>{{.Label}}</a></li>
        {{- end}}
      </ul>
    </nav>
  </header>
  <main class="container">
    {{.Body}}
  </main>
  <footer class="footer">
    <p>{{.SiteName}}</p>
  </footer>
  <script src="{{.Script}}"></script>
</body>
</html>
`
