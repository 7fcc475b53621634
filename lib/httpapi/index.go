// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package httpapi

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed index.md
var indexMarkdown []byte

const indexStyle = `body { font-family: sans-serif; margin: 40px; line-height: 1.6; max-width: 60em; }
h2 { border-bottom: 1px solid #ddd; padding-bottom: 10px; }
code { background: #f4f4f4; padding: 2px 4px; border-radius: 3px; }
pre { background: #f4f4f4; padding: 15px; border-radius: 5px; overflow-x: auto; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ddd; padding: 4px 10px; }`

// renderIndex converts the embedded API documentation to a complete
// HTML page.
func renderIndex(serviceVersion string) ([]byte, error) {
	var body bytes.Buffer
	markdown := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := markdown.Convert(indexMarkdown, &body); err != nil {
		return nil, fmt.Errorf("rendering API documentation: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Garnix Insights API</title>\n<style>\n%s\n</style>\n</head>\n<body>\n", indexStyle)
	page.Write(body.Bytes())
	fmt.Fprintf(&page, "<p><strong>Version:</strong> %s</p>\n</body>\n</html>\n", html.EscapeString(serviceVersion))
	return page.Bytes(), nil
}
