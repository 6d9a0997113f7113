package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"roastsim/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// bindTimeRange parses optional from/to query params. If 'to' is date-only it
// is treated as end-of-day inclusive. Writes a 400 and returns ok=false on a
// bad value or an inverted range.
func (h *Handler) bindTimeRange(c *gin.Context) (from, to time.Time, ok bool) {
	var err error
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return time.Time{}, time.Time{}, false
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return time.Time{}, time.Time{}, false
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'from' must be <= 'to'"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// @Summary      List roast milestones
// @Description  Filter milestones by run, date range, and type.
// @Tags         events
// @Produce      json
// @Param        run_id  query   string  false  "Run ID"
// @Param        from    query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"
// @Param        to      query   string  false  "End of range. Date-only treated as end of day."
// @Param        type    query   string  false  "Event type"  Enums(DRYING,FIRST_CRACK,TURN_POINT,DROP)
// @Success      200     {object}  map[string]interface{}  "count, events"
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/v1/events [get]
// @Security     BearerAuth
func (h *Handler) listEvents(c *gin.Context) {
	ctx := c.Request.Context()

	from, to, ok := h.bindTimeRange(c)
	if !ok {
		return
	}
	eventType := strings.ToUpper(strings.TrimSpace(c.Query("type")))
	runID := strings.TrimSpace(c.Query("run_id"))

	events, err := h.services.EventLog.List(ctx, service.LogFilter{
		RunID: runID,
		From:  from,
		To:    to,
		Type:  eventType,
	})
	if err != nil {
		if h.log != nil {
			h.log.Errorw("events_list_failed", "err", err, "from", from, "to", to, "type", eventType)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format %q", s)
}
