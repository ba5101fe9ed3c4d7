package admin

import (
	"embed"
	"html/template"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/domain/waitlist"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
}).ParseFS(templateFS, "templates/*.html"))

type loginPageData struct {
	Error bool
}

type dashboardPageData struct {
	TotalSignups int
	WithWebsites int
	LatestSignup string
	Entries      []waitlist.EntryResponse
}

func renderPage(c *router.RequestContext, name string, data any) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(200)

	if err := pageTemplates.ExecuteTemplate(c.Writer, name, data); err != nil {
		router.GetLogger(c).Error("Failed to render page", "template", name, "error", err)
	}
}
