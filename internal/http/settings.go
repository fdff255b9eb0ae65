package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sallahboussettah/readwise/internal/settingsstore"
)

type SettingsController struct {
	settings *settingsstore.SettingsStore
}

func NewSettingsController(settings *settingsstore.SettingsStore) *SettingsController {
	return &SettingsController{settings: settings}
}

func (controller *SettingsController) GetDarkMode(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{"dark_mode": controller.settings.GetDarkMode()})
}

type darkModeRequest struct {
	DarkMode bool `json:"dark_mode"`
}

func (controller *SettingsController) SetDarkMode(c *gin.Context) {
	var req darkModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := controller.settings.SetDarkMode(req.DarkMode); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"dark_mode": req.DarkMode})
}

// GetGeminiKey reports whether a credential is configured. The key
// itself is never echoed back.
func (controller *SettingsController) GetGeminiKey(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{"configured": controller.settings.GeminiAPIKey() != ""})
}

type geminiKeyRequest struct {
	APIKey string `json:"api_key"`
}

func (controller *SettingsController) SetGeminiKey(c *gin.Context) {
	var req geminiKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "api_key is required"})
		return
	}

	if err := controller.settings.SetGeminiAPIKey(strings.TrimSpace(req.APIKey)); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"configured": true})
}

func (controller *SettingsController) DeleteGeminiKey(c *gin.Context) {
	if err := controller.settings.ClearGeminiAPIKey(); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
