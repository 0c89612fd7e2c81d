package routes

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/EGASHIRAAkihide/karada/internal/config"
)

//go:embed openapi.yaml
var openAPISpec []byte

const docsIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    body {
      margin: 0 auto;
      max-width: 56rem;
      padding: 48px 20px 64px;
      font-family: Georgia, "Times New Roman", serif;
      color: #132019;
      background: #f6f7f4;
    }
    .panel {
      background: #ffffff;
      border: 1px solid #d8ddd6;
      border-radius: 12px;
      padding: 28px;
      margin-bottom: 20px;
    }
    h1 { margin: 0 0 12px; }
    p { color: #536258; line-height: 1.6; }
    a.button {
      display: inline-block;
      margin-top: 16px;
      padding: 10px 18px;
      border-radius: 8px;
      background: #1f6f4a;
      color: #ffffff;
      text-decoration: none;
    }
    code { background: #eef1ec; padding: 2px 6px; border-radius: 4px; }
  </style>
</head>
<body>
  <main>
    <div class="panel">
      <h1>{{ .Title }}</h1>
      <p>The OpenAPI spec is served from the same origin at <code>/docs/openapi.yaml</code>. This docs surface is intended for development-only exposure.</p>
      <p>Loaded at {{ .LoadedAt }}.</p>
      <a class="button" href="/docs/openapi.yaml">Open Raw Spec</a>
    </div>
  </main>
</body>
</html>
`

type docsPageData struct {
	Title    string
	LoadedAt string
}

func registerDocsRoutes(app fiber.Router, cfg *config.Config) error {
	if !cfg.DocsEnabled() {
		return nil
	}

	indexTemplate, err := template.New("docs-index").Parse(docsIndexHTML)
	if err != nil {
		return fmt.Errorf("parse docs template: %w", err)
	}

	pageData := docsPageData{
		Title:    "karada API Docs",
		LoadedAt: time.Now().UTC().Format(time.RFC3339),
	}

	indexHandler := func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, fiber.MIMETextHTMLCharsetUTF8)
		c.Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; img-src 'self' data:; base-uri 'none'; form-action 'none'; frame-ancestors 'none'")

		var body bytes.Buffer
		if err := indexTemplate.Execute(&body, pageData); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render api docs")
		}

		return c.Status(fiber.StatusOK).Send(body.Bytes())
	}

	app.Get("/docs", indexHandler)
	app.Get("/docs/", indexHandler)
	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, "application/yaml; charset=utf-8")
		c.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="openapi.yaml"`)
		return c.Status(fiber.StatusOK).Send(openAPISpec)
	})

	return nil
}

func applyDocsBaseHeaders(c *fiber.Ctx, contentType string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "no-store, max-age=0")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderXFrameOptions, "DENY")
	c.Set("Referrer-Policy", "no-referrer")
	c.Set("X-Robots-Tag", "noindex, nofollow")
}
