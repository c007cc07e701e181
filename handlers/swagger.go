package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the record API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>entertext - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// OpenAPI document for the three record procedures and the operational endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "entertext", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "Content": { "type": "object", "properties": { "content": { "type": "string" } } },
      "Error": { "type": "object", "properties": { "error": { "type": "string" } } }
    }
  },
  "paths": {
    "/api/GetContent": {
      "post": {
        "summary": "Read the stored text (\"Database is empty\" when nothing is stored)",
        "responses": {
          "200": { "description": "current content", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Content" } } } },
          "500": { "description": "read error", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Error" } } } }
        }
      }
    },
    "/api/SaveContent": {
      "post": {
        "summary": "Overwrite the stored text",
        "requestBody": { "content": {
          "application/x-www-form-urlencoded": { "schema": { "$ref": "#/components/schemas/Content" } },
          "application/json": { "schema": { "$ref": "#/components/schemas/Content" } }
        }},
        "responses": {
          "200": { "description": "saved content", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Content" } } } },
          "303": { "description": "form post redirected back to the page" },
          "400": { "description": "blank content (Empty)", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Error" } } } },
          "500": { "description": "write error", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Error" } } } }
        }
      }
    },
    "/api/DeleteContent": {
      "post": {
        "summary": "Remove the stored text; succeeds when nothing is stored",
        "responses": {
          "200": { "description": "deleted" },
          "303": { "description": "form post redirected back to the page" },
          "500": { "description": "delete error", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Error" } } } }
        }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check (store ping)", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition format" } } } }
  }
}`
