package render

const completionTmpl = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Doc.Title}}</title>
<style>
body{margin:0;font-family:system-ui,-apple-system,sans-serif;min-height:100vh;display:flex;align-items:center;justify-content:center;padding:1rem;box-sizing:border-box}
main{max-width:42rem;width:100%;background:rgba(255,255,255,.95);border-radius:.75rem;padding:3rem 2rem;text-align:center;box-shadow:0 10px 30px rgba(0,0,0,.1)}
.fs-sm{font-size:.875rem}.fs-md{font-size:1rem}.fs-lg{font-size:1.25rem}.fs-xl{font-size:1.5rem}
.align-left{text-align:left}.align-center{text-align:center}.align-right{text-align:right}
.block{margin:1rem 0}
.block-heading{font-weight:700}
.block-quote{font-style:italic;border-left:4px solid currentColor;padding-left:1rem}
.btn{display:inline-block;margin:.25rem;padding:.75rem 2rem;border-radius:.5rem;text-decoration:none;font-weight:600}
.btn-primary{background:linear-gradient(to right,#2563eb,#16a34a);color:#fff}
.btn-secondary{background:#e5e7eb;color:#111827}
.btn-outline{background:transparent;border:2px solid currentColor;color:inherit}
.hero-title{font-size:1.875rem;font-weight:700;margin:1.5rem 0 1rem}
.hero-description{font-size:1.125rem;opacity:.9;margin-bottom:2rem}
header,.subheader{margin-bottom:.5rem}
.main-image{max-width:100%;border-radius:.5rem;margin:1rem 0}
footer{margin-top:2rem;font-size:.875rem;opacity:.8}
footer nav a{margin:0 .5rem;color:inherit}
</style>
</head>
<body style="{{.PageStyle}}">
<main>
{{- if .Doc.Header.Enabled}}
<header class="{{fontClass .Doc.Header.FontSize}}" data-section="header">{{.Doc.Header.Text}}</header>
{{- end}}
{{- if .Doc.SubHeader.Enabled}}
<div class="subheader {{fontClass .Doc.SubHeader.FontSize}}" data-section="subheader">{{.Doc.SubHeader.Text}}</div>
{{- end}}
{{- if .Doc.MainImage.Enabled}}{{if .MainImageURL}}
<img class="main-image" data-section="main-image" src="{{.MainImageURL}}" alt="{{.Doc.MainImage.AltText}}">
{{- end}}{{end}}
<h1 class="hero-title" data-section="title">{{.Doc.Title}}</h1>
<p class="hero-description" data-section="description">{{.Doc.Description}}</p>
{{- range .Doc.TextBlocks}}
<div class="block block-{{blockTag .Kind}} {{fontClass .FontSize}} {{alignClass .Alignment}}" data-block="{{blockTag .Kind}}" data-block-id="{{.ID}}">{{.Content}}</div>
{{- end}}
<div data-section="actions">
<a class="btn btn-primary" data-button="primary" href="{{.Doc.PrimaryButtonURL}}">{{.Doc.PrimaryButtonText}}</a>
{{- range .Doc.SecondaryButtons}}
<a class="{{btnClass .Style}}" data-button="secondary" data-button-id="{{.ID}}" href="{{.URL}}">{{.Text}}</a>
{{- end}}
</div>
{{- if .Doc.Footer.Enabled}}
<footer data-section="footer">
<div data-footer-text>{{.Doc.Footer.Text}}</div>
<nav>
{{- range .Doc.Footer.Links}}
<a data-footer-link-id="{{.ID}}" href="{{.URL}}">{{.Text}}</a>
{{- end}}
</nav>
</footer>
{{- end}}
</main>
</body>
</html>
`

const notFoundTmpl = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Page Not Found</title>
<style>
body{margin:0;font-family:system-ui,-apple-system,sans-serif;min-height:100vh;display:flex;align-items:center;justify-content:center;background:#f9fafb}
main{max-width:28rem;text-align:center;background:#fff;border-radius:.75rem;padding:2rem;box-shadow:0 10px 30px rgba(0,0,0,.1)}
a{display:inline-block;margin-top:1rem;padding:.75rem 2rem;border-radius:.5rem;background:#2563eb;color:#fff;text-decoration:none;font-weight:600}
</style>
</head>
<body>
<main data-section="not-found">
<h1>Page Not Found</h1>
<p>The completion page you're looking for doesn't exist.</p>
<a href="{{.HomeURL}}">Go Home</a>
</main>
</body>
</html>
`
