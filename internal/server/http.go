package server

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/libelle-hq/volunteer-intake/internal/common"
	"github.com/libelle-hq/volunteer-intake/internal/intake"
)

type HTTPHandler struct {
	svc    *intake.Service
	logger *slog.Logger
}

func NewHTTPHandler(router *gin.Engine, svc *intake.Service, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	h := &HTTPHandler{svc: svc, logger: logger}

	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.POST("/api/upload", h.Upload)
}

func (h *HTTPHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Resume Intake API is running"})
}

func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "volunteer-intake",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type errorEnvelope struct {
	Status  string            `json:"status"`
	Code    string            `json:"code"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Upload accepts the multipart volunteer application. The success
// response is written as soon as the base row is committed; enrichment
// runs afterwards and its outcome is never surfaced here.
func (h *HTTPHandler) Upload(c *gin.Context) {
	form := intake.Form{
		FullName:        c.PostForm("full_name"),
		Email:           c.PostForm("email"),
		Location:        c.PostForm("location"),
		Interests:       c.PostForm("interests"),
		Availability:    c.PostForm("availability"),
		ExperienceLevel: c.PostForm("experience_level"),
		Consent:         parseConsent(c.PostForm("consent")),
		LinkedinURL:     c.PostForm("linkedin_url"),
		GithubURL:       c.PostForm("github_url"),
		Motivation:      c.PostForm("motivation"),
	}

	// A missing or unreadable file is reported by the validator, in
	// its documented order, not here.
	var (
		filename string
		data     []byte
	)
	if header, err := c.FormFile("file"); err == nil && header != nil {
		filename = header.Filename
		f, err := header.Open()
		if err != nil {
			h.writeError(c, common.NewProcessingError(err))
			return
		}
		defer f.Close()
		data, err = io.ReadAll(f)
		if err != nil {
			h.writeError(c, common.NewProcessingError(err))
			return
		}
	}

	res, err := h.svc.Submit(c.Request.Context(), form, filename, data)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"submission_id": res.SubmissionID,
		"message":       "Your application has been received",
	})
}

func (h *HTTPHandler) writeError(c *gin.Context, err error) {
	if app, ok := common.AsAppError(err); ok {
		c.JSON(app.Status, errorEnvelope{
			Status:  "error",
			Code:    app.Code,
			Message: app.Message,
			Fields:  app.Fields,
		})
		return
	}

	h.logger.Error("upload.failed", "error", err)
	app := common.NewProcessingError(err)
	c.JSON(app.Status, errorEnvelope{
		Status:  "error",
		Code:    app.Code,
		Message: app.Message,
	})
}

func parseConsent(raw string) bool {
	if raw == "on" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}
