package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/entertext/internal/record/service"
	"github.com/gogotex/entertext/pkg/apperror"
)

// RPC procedure names, mounted under /api.
const (
	GetContentPath    = "/GetContent"
	SaveContentPath   = "/SaveContent"
	DeleteContentPath = "/DeleteContent"
)

type saveRequest struct {
	Content string `form:"content" json:"content"`
}

// RegisterRecordRoutes mounts the three record procedures on rg (normally the /api group).
func RegisterRecordRoutes(rg *gin.RouterGroup, svc service.Service) {
	rg.POST(GetContentPath, func(c *gin.Context) {
		content, err := svc.GetContent(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"content": content})
	})

	rg.POST(SaveContentPath, func(c *gin.Context) {
		var req saveRequest
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, apperror.Invalid(err.Error(), apperror.ErrBadRequest))
			return
		}
		content, err := svc.SaveContent(c.Request.Context(), req.Content)
		if err != nil {
			respondError(c, err)
			return
		}
		if wantsHTML(c) {
			redirectBack(c, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"content": content})
	})

	rg.POST(DeleteContentPath, func(c *gin.Context) {
		if err := svc.DeleteContent(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		if wantsHTML(c) {
			redirectBack(c, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	})
}

// wantsHTML reports a plain form submission from a browser without the page script.
func wantsHTML(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}

// redirectBack sends the browser to the page it came from, carrying errMsg as ?error=.
func redirectBack(c *gin.Context, errMsg string) {
	target := "/"
	if ref, err := url.Parse(c.GetHeader("Referer")); err == nil && ref.Path != "" && ref.Host == c.Request.Host {
		target = ref.Path
	}
	if errMsg != "" {
		target += "?" + url.Values{"error": {errMsg}}.Encode()
	}
	c.Redirect(http.StatusSeeOther, target)
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	if wantsHTML(c) {
		redirectBack(c, err.Error())
		return
	}
	c.AbortWithStatusJSON(apperror.MapErrorToStatus(err), gin.H{"error": err.Error()})
}
