package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/changelog"
)

type AboutResponse struct {
	Version      string `json:"version"`
	SupportEmail string `json:"supportEmail"`
	WebsiteURL   string `json:"websiteUrl"`
}

type AboutController struct {
	about AboutResponse
	log   *zap.Logger
}

func NewAboutController(version, supportEmail, websiteURL string, log *zap.Logger) *AboutController {
	return &AboutController{
		about: AboutResponse{Version: version, SupportEmail: supportEmail, WebsiteURL: websiteURL},
		log:   log,
	}
}

func (ac *AboutController) About(c *gin.Context) {
	c.JSON(http.StatusOK, ac.about)
}

// Changelog returns the bundled release notes, newest first.
func (ac *AboutController) Changelog(c *gin.Context) {
	entries, err := changelog.Load()
	if err != nil {
		respondInternalError(c, ac.log, err, "load changelog")
		return
	}
	releases := changelog.Releases(entries)
	c.JSON(http.StatusOK, gin.H{"releases": releases, "count": len(releases)})
}
