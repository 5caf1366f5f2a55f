package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolsys/registrar/internal/middleware"
	"github.com/schoolsys/registrar/internal/pkg/flash"
)

// render writes an HTML page with the pending flash message and the current
// identity merged into the template data.
func render(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if msg, ok := flash.Pop(c); ok {
		data["Flash"] = msg
	}

	if identity, ok := middleware.CurrentIdentity(c); ok {
		data["Identity"] = identity
	}

	c.HTML(http.StatusOK, name, data)
}
