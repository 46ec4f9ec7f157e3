package visualization

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/nvandessel/chromaroot/internal/palette"
)

var sheetTemplate = template.Must(template.New("sheet").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2rem; background: #fafafa; }
.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(10rem, 1fr)); gap: 1rem; }
.swatch { border-radius: 6px; overflow: hidden; box-shadow: 0 1px 3px rgba(0,0,0,.2); background: #fff; }
.chip { height: 6rem; display: flex; align-items: flex-end; padding: .5rem; font-weight: bold; }
.meta { padding: .5rem; font-size: .8rem; line-height: 1.4; }
code { font-size: .8rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{len .Swatches}} swatches</p>
<div class="grid">
{{- range .Swatches}}
<div class="swatch">
<div class="chip" style="background: {{.CSS}}; color: {{.Text}}">{{.Name}}</div>
<div class="meta"><code>{{.CSS}}</code><br>{{.CMYK}}<br>seed {{.Seed}}</div>
</div>
{{- end}}
</div>
</body>
</html>
`))

type sheetSwatch struct {
	Name string
	CSS  template.CSS
	Text template.CSS
	CMYK string
	Seed string
}

// RenderHTML produces a standalone HTML page showing every swatch.
func RenderHTML(title string, swatches []palette.Swatch) ([]byte, error) {
	data := struct {
		Title    string
		Swatches []sheetSwatch
	}{Title: title}

	for _, sw := range swatches {
		data.Swatches = append(data.Swatches, sheetSwatch{
			Name: sw.Name,
			// CSS values come from CMYKToCSS, always #rrggbb.
			CSS:  template.CSS(sw.CSS),
			Text: template.CSS(TextColor(sw.CSS)),
			CMYK: sw.CMYK.String(),
			Seed: sw.Seed.String(),
		})
	}

	var buf bytes.Buffer
	if err := sheetTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render palette html: %w", err)
	}
	return buf.Bytes(), nil
}
