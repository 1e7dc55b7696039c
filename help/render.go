package help

import (
	md "github.com/russross/blackfriday/v2"
)

// Render turns a docstring into HTML.
//
// Docstrings are treated as Markdown, which is what the battery
// authors write anyway.  Signature paragraphs come through as plain
// paragraphs; fenced transcript blocks render as code.
func Render(doc string) []byte {
	return md.Run([]byte(doc),
		md.WithExtensions(md.CommonExtensions))
}

// RenderPage wraps a rendered docstring in a minimal HTML page.
func RenderPage(name, doc string) []byte {
	var buf []byte
	buf = append(buf, "<!DOCTYPE html>\n<meta charset=\"utf-8\">\n<html>\n<head><title>"...)
	buf = append(buf, name...)
	buf = append(buf, "</title></head>\n<body>\n<h1><code>"...)
	buf = append(buf, name...)
	buf = append(buf, "</code></h1>\n"...)
	buf = append(buf, Render(doc)...)
	buf = append(buf, "\n</body>\n</html>\n"...)
	return buf
}
