package app

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

// Any /reconcile
// Triggered by the external scheduler (or manually); runs one full cycle.
func (a *App) ReconcileHandler(c *gin.Context) {
	stats, err := a.Reconciler.Run(c.Request.Context())
	if err != nil {
		a.Log.Error("reconcile run failed", "error", err)
		msg := "reconciliation failed: upstream fetch error"
		if errors.Is(err, ErrNoTimeslots) {
			msg = "reconciliation failed: no timeslot data"
		}
		c.String(http.StatusInternalServerError, msg)
		return
	}
	a.Log.Info("reconcile run triggered via http", "written", stats.Written)
	c.String(http.StatusOK, "availability data updated")
}

// GET /sessions/past
// All sessions whose start time lies in the past, projected to their last
// recorded availability.
func (a *App) PastSessionsHandler(c *gin.Context) {
	sessions, err := a.Store.PastSessions(c.Request.Context(), a.Clock.Now())
	if err != nil {
		a.Log.Error("past sessions query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sessions"})
		return
	}
	c.JSON(http.StatusOK, summarize(sessions))
}

// GET /sessions/range?start=ISO&end=ISO
// Sessions starting within the inclusive [start, end] window.
func (a *App) SessionsRangeHandler(c *gin.Context) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end required (ISO8601)"})
		return
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start"})
		return
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end"})
		return
	}

	sessions, err := a.Store.SessionsInRange(c.Request.Context(), start, end)
	if err != nil {
		a.Log.Error("range sessions query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sessions"})
		return
	}
	c.JSON(http.StatusOK, summarize(sessions))
}

func summarize(sessions []SessionInstance) []SessionSummary {
	out := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Summary())
	}
	return out
}
