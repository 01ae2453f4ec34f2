package report

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// reportCSS is the stylesheet embedded in HTML reports.
const reportCSS = `body {
    font-family: Arial, sans-serif;
    font-size: 16px;
    line-height: 1.5;
}

h1, h2 {
    margin-top: 40px;
    margin-bottom: 20px;
}

table {
    border-collapse: collapse;
    margin-bottom: 40px;
}

th, td {
    border: 1px solid #ccc;
    padding: 8px;
}

th {
    background-color: #f2f2f2;
}

img {
    max-width: 100%;
    height: auto;
}`

// htmlConverter turns the Markdown body into HTML. GFM is needed for the
// metric tables.
var htmlConverter = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML renders the report as a standalone HTML document by converting
// the Markdown body and wrapping it with the report stylesheet.
func RenderHTML(r *Report) ([]byte, error) {
	md, err := RenderMarkdown(r)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := htmlConverter.Convert(md, &body); err != nil {
		return nil, fmt.Errorf("report: render html: %w", err)
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<style>\n")
	out.WriteString(reportCSS)
	out.WriteString("\n</style>\n</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}
