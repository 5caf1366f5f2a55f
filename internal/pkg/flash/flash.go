package flash

import (
	"encoding/base64"
	"strings"

	"github.com/gin-gonic/gin"
)

// cookieName holds the one-shot message between the redirect and the next render
const cookieName = "registrar_flash"

// Message is a one-shot notification carried across a redirect
type Message struct {
	Category string // success, danger, info
	Text     string
}

// Set stores a flash message in a short-lived cookie
func Set(c *gin.Context, category, text string) {
	value := base64.URLEncoding.EncodeToString([]byte(category + "|" + text))
	c.SetCookie(cookieName, value, 60, "/", "", false, true)
}

// Pop returns the pending flash message, if any, and clears it
func Pop(c *gin.Context) (Message, bool) {
	value, err := c.Cookie(cookieName)
	if err != nil || value == "" {
		return Message{}, false
	}

	// Clear regardless of whether the payload decodes
	c.SetCookie(cookieName, "", -1, "/", "", false, true)

	decoded, err := base64.URLEncoding.DecodeString(value)
	if err != nil {
		return Message{}, false
	}

	category, text, found := strings.Cut(string(decoded), "|")
	if !found {
		return Message{Category: "info", Text: string(decoded)}, true
	}
	return Message{Category: category, Text: text}, true
}
