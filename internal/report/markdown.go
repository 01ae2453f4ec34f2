package report

import (
	"bytes"
	"fmt"
	"path"
	"strconv"
	"strings"
	"text/template"

	"github.com/evalforge/mlreport/internal/metrics"
)

// markdownTemplate is the rendered document layout: title, data-info table,
// metrics table at the stated threshold, then the plot images.
const markdownTemplate = `# Metrics Report

#### Type: {{ .TaskType }}

## Data info

| Info | Value |
| --- | --- |
{{- range .DataInfo }}
| {{ .Name }} | {{ .Format }} |
{{- end }}

## Metrics
{{ if .Classification }}
**threshold: {{ .ThresholdString }}**
{{ end }}
| Metric | Value |
| --- | --- |
{{- range .Metrics }}
| {{ .Name }} | {{ .Format }} |
{{- end }}
{{ if .Plots }}
## Plots
{{ range .Plots }}
![{{ plotname . }}](./{{ . }})
{{- end }}
{{ end -}}
`

var mdTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"plotname": plotName,
}).Parse(markdownTemplate))

// plotName derives the image alt text from a plot path:
// "plots/roc_curve.png" -> "roc_curve".
func plotName(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

// markdownContext wraps a Report with the helpers the template needs.
type markdownContext struct {
	*Report
}

func (c markdownContext) Classification() bool {
	return c.TaskType == metrics.TaskClassification
}

func (c markdownContext) ThresholdString() string {
	return strconv.FormatFloat(c.Threshold, 'g', -1, 64)
}

// RenderMarkdown renders the report document as Markdown.
func RenderMarkdown(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, markdownContext{r}); err != nil {
		return nil, fmt.Errorf("report: render markdown: %w", err)
	}
	return buf.Bytes(), nil
}
