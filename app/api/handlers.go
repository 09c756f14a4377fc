package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/contest-comb/app/pipeline"
	"github.com/lysyi3m/contest-comb/app/platforms"
	"github.com/lysyi3m/contest-comb/app/render"
)

func NewHandler(p PipelineInterface, renderer *render.Renderer,
	platformsConfig *platforms.Config, sourceCount int) *Handler {
	return &Handler{
		pipeline:        p,
		renderer:        renderer,
		platformsConfig: platformsConfig,
		sourceCount:     sourceCount,
	}
}

// GetContests is the thin adapter between query parameters and the typed
// pipeline options. No filtering logic lives here.
func (h *Handler) GetContests(c *gin.Context) {
	opts := h.parseOptions(c)

	contests, err := h.pipeline.Run(c.Request.Context(), opts)
	if err != nil {
		slog.Error("Contest query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "contest query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contests": contests,
		"total":    len(contests),
	})
}

// GetContestsMessage returns the rendered plain-text message, language
// negotiated from the Accept-Language header.
func (h *Handler) GetContestsMessage(c *gin.Context) {
	opts := h.parseOptions(c)
	acceptLanguage := c.GetHeader("Accept-Language")

	contests, err := h.pipeline.Run(c.Request.Context(), opts)
	if err != nil {
		slog.Error("Contest query failed", "error", err)
		c.String(http.StatusInternalServerError, h.renderer.QueryFailed(acceptLanguage))
		return
	}

	c.String(http.StatusOK, h.renderer.Run(contests, acceptLanguage, time.Now()))
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"sources":   h.sourceCount,
		"aliases":   len(h.platformsConfig.Aliases),
		"languages": len(h.platformsConfig.Messages),
	})
}

func (h *Handler) parseOptions(c *gin.Context) pipeline.Options {
	opts := pipeline.Options{
		Platform: c.Query("platform"),
		Phase:    c.Query("phase"),
		Date:     c.Query("date"),
	}

	if countParam := c.Query("count"); countParam != "" {
		if count, err := strconv.Atoi(countParam); err == nil {
			opts.Count = count
		}
	}

	return opts
}
