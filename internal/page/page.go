package page

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/entertext/internal/record"
	"github.com/gogotex/entertext/internal/record/handler"
	"github.com/gogotex/entertext/internal/record/service"
	"github.com/gogotex/entertext/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

const (
	Title      = "Enter Text"
	CardLabel  = "Text from the database:"
	indexName  = "index.html"
	apiPrefix  = "/api"
	assetsPath = "/pkg"
)

// View is the data the index template renders.
type View struct {
	Title      string
	CardLabel  string
	Content    string
	Button     string
	ShowDelete bool
	Error      string
	Sentinel   string
	SavePath   string
	DeletePath string
	GetPath    string
}

// NewView derives the button label and delete visibility from content.
func NewView(content, errMsg string) View {
	v := View{
		Title:      Title,
		CardLabel:  CardLabel,
		Content:    content,
		Button:     "Update",
		ShowDelete: true,
		Error:      errMsg,
		Sentinel:   record.EmptySentinel,
		SavePath:   apiPrefix + handler.SaveContentPath,
		DeletePath: apiPrefix + handler.DeleteContentPath,
		GetPath:    apiPrefix + handler.GetContentPath,
	}
	if content == record.EmptySentinel {
		v.Button = "Add"
		v.ShowDelete = false
	}
	return v
}

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// RegisterPageRoutes serves the index page, the embedded script and stylesheet under /pkg,
// and, when siteRoot is set, /assets and /favicon.ico from disk.
func RegisterPageRoutes(r *gin.Engine, svc service.Service, siteRoot string) {
	r.SetHTMLTemplate(Templates())

	static, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	r.StaticFS(assetsPath, http.FS(static))

	if siteRoot != "" {
		r.Static("/assets", siteRoot)
		r.StaticFile("/favicon.ico", filepath.Join(siteRoot, "favicon.ico"))
	}

	r.GET("/", func(c *gin.Context) {
		content, err := svc.GetContent(c.Request.Context())
		if err != nil {
			logger.Warnf("page: %v", err)
			content = record.EmptySentinel
		}
		c.HTML(http.StatusOK, indexName, NewView(content, c.Query("error")))
	})
}
