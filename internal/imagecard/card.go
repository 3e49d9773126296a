// Package imagecard renders shareable quote cards and builds social
// share links for them.
package imagecard

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	"github.com/sergiomago/inspiro/internal/types"
)

var cardTmpl = template.Must(template.New("quote-card").Parse(`<html>
  <head>
    <link href="https://fonts.googleapis.com/css2?family=Satisfy&display=swap" rel="stylesheet">
    <style>
      body {
        margin: 0;
        padding: 0;
        width: 1080px;
        height: 1080px;
        display: flex;
        justify-content: center;
        align-items: center;
        background: #2D1B4D;
        font-family: Georgia, serif;
        color: white;
      }
      .container {
        max-width: 800px;
        padding: 60px;
        text-align: center;
        position: relative;
      }
      .quote {
        font-size: 48px;
        line-height: 1.4;
        margin-bottom: 40px;
        font-style: italic;
      }
      .author {
        font-size: 32px;
        opacity: 0.9;
      }
      .logo {
        position: absolute;
        bottom: 40px;
        left: 50%;
        transform: translateX(-50%);
        font-family: 'Satisfy', cursive;
        font-size: 42px;
        background: linear-gradient(to right, #9b87f5, #6E59A5);
        -webkit-background-clip: text;
        -webkit-text-fill-color: transparent;
        opacity: 0.9;
        padding: 0;
        margin: 0;
        display: inline-block;
        white-space: nowrap;
      }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="quote">&quot;{{.Text}}&quot;</div>
      <div class="author">- {{.Author}}</div>
      <div class="logo">inspiro</div>
    </div>
  </body>
</html>`))

// Render produces a 1080x1080 HTML quote card encoded as a
// data:text/html base64 URL.
func Render(q types.Quote) (string, error) {
	var buf strings.Builder
	if err := cardTmpl.Execute(&buf, q); err != nil {
		return "", fmt.Errorf("render quote card: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(buf.String()))
	return "data:text/html;base64," + encoded, nil
}
