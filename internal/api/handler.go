package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fakestore-etl/internal/config"
	"fakestore-etl/internal/logger"
	"fakestore-etl/internal/scheduler"
	apperrors "fakestore-etl/pkg/errors"
)

type Handler struct {
	sched *scheduler.Scheduler
	cfg   *config.Config
	log   zerolog.Logger
}

func NewHandler(sched *scheduler.Scheduler, cfg *config.Config) *Handler {
	return &Handler{
		sched: sched,
		cfg:   cfg,
		log:   logger.Get(),
	}
}

// TriggerPipeline starts a manual run. The run executes asynchronously;
// a run already in flight is refused with 409.
func (h *Handler) TriggerPipeline(c *gin.Context) {
	if err := h.sched.Trigger(); err != nil {
		if errors.Is(err, apperrors.ErrRunInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "pipeline run already in progress"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to trigger pipeline run")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.log.Info().Msg("Manual pipeline run triggered")
	c.JSON(http.StatusAccepted, gin.H{"message": "Pipeline run triggered"})
}

// PipelineStatus returns the terminal record of the most recent run.
func (h *Handler) PipelineStatus(c *gin.Context) {
	last := h.sched.LastRun()
	if last == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No pipeline run recorded yet"})
		return
	}
	c.JSON(http.StatusOK, last)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.cfg.App.Name,
		"version": h.cfg.App.Version,
	})
}
