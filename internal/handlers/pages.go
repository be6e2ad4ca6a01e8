package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the static marketing pages and the admin view
type PageHandler struct {
	staticDir string
}

// NewPageHandler creates a new page handler serving files from staticDir
func NewPageHandler(staticDir string) *PageHandler {
	return &PageHandler{staticDir: staticDir}
}

// pageFiles maps routes to the HTML files behind them
var pageFiles = map[string]string{
	"/":         "index.html",
	"/about":    "about.html",
	"/services": "services.html",
	"/work":     "workdone.html",
}

// Register mounts the page routes plus the fallback handler
func (h *PageHandler) Register(r *gin.Engine) {
	for route, file := range pageFiles {
		r.GET(route, h.page(file))
	}
	r.GET("/admin", h.Admin)
	r.NoRoute(h.Fallback)
}

func (h *PageHandler) page(file string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.File(filepath.Join(h.staticDir, file))
	}
}

// Admin handles GET /admin: a server-rendered page that fetches
// /api/submissions client-side.
func (h *PageHandler) Admin(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(adminPage))
}

// Fallback serves remaining static assets (css, js, images) from the
// static dir and answers everything else with a JSON 404.
func (h *PageHandler) Fallback(c *gin.Context) {
	if c.Request.Method == http.MethodGet && !strings.HasPrefix(c.Request.URL.Path, "/api/") {
		rel := filepath.Clean(strings.TrimPrefix(c.Request.URL.Path, "/"))
		if rel != "." && !strings.HasPrefix(rel, "..") {
			path := filepath.Join(h.staticDir, rel)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				c.File(path)
				return
			}
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
}

const adminPage = `<!DOCTYPE html>
<html>
<head>
    <title>AutomateAce Admin</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background: #000; color: #fff; }
        table { width: 100%; border-collapse: collapse; background: #111; }
        th, td { border: 1px solid #333; padding: 12px; text-align: left; }
        th { background-color: #FFEB3B; color: #000; }
        h1 { color: #FFEB3B; }
    </style>
</head>
<body>
    <h1>AutomateAce Form Submissions</h1>
    <div id="submissions">Loading...</div>
    <script>
        fetch('/api/submissions')
            .then(res => res.json())
            .then(data => {
                let html = '<table><tr><th>Date</th><th>Name</th><th>Email</th><th>Company</th><th>Service</th><th>Message</th></tr>';
                data.forEach(submission => {
                    html += ` + "`" + `<tr>
                        <td>${submission.created_at ? new Date(submission.created_at).toLocaleDateString() : 'N/A'}</td>
                        <td>${submission.name}</td>
                        <td>${submission.email}</td>
                        <td>${submission.company || 'N/A'}</td>
                        <td>${submission.service_type || 'N/A'}</td>
                        <td>${submission.message || 'None'}</td>
                    </tr>` + "`" + `;
                });
                html += '</table>';
                document.getElementById('submissions').innerHTML = html;
            })
            .catch(error => {
                document.getElementById('submissions').innerHTML = 'Error loading submissions: ' + error;
            });
    </script>
</body>
</html>
`
