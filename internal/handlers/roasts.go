package handlers

import (
	"errors"
	"net/http"

	"roastsim/internal/repository"
	"roastsim/internal/service"
	"roastsim/internal/simulation"

	"github.com/gin-gonic/gin"
)

const (
	errSimulate      = "failed to run simulation"
	errListRuns      = "failed to load runs"
	errGetRun        = "failed to load run"
	errRunNotFound   = "run not found"
	errInvalidParams = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// SimulateRequest is the payload for running a roast. A nil Parameters is
// rejected up front; a pointer distinguishes missing from all-zero.
type SimulateRequest struct {
	// Free-form label stored with the run
	Label string `json:"label" example:"ethiopia washed, light"`
	// Batch and drum parameters
	Parameters *simulation.Parameters `json:"parameters"`
	// PID gains for this run
	Gains service.PIDGains `json:"gains"`
	// Optional (time_min, temperature) target curve; default five-point curve when omitted
	TargetProfile []simulation.ProfilePoint `json:"target_profile,omitempty"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Run a roast simulation
// @Description  Runs the full 500-step roast with a fresh PID controller, stores the run, and returns the result with all series.
// @Tags         roasts
// @Accept       json
// @Produce      json
// @Param        body  body   SimulateRequest  true  "Simulation payload"
// @Success      200   {object}  map[string]interface{}  "run, result"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/roasts [post]
// @Security     BearerAuth
func (h *Handler) simulateRoast(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidParams + err.Error()})
		return
	}
	if req.Parameters == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidParams + "parameters are required"})
		return
	}

	ctx := c.Request.Context()
	run, result, err := h.services.Roaster.Simulate(ctx, service.SimulationRequest{
		Label:         req.Label,
		Parameters:    *req.Parameters,
		Gains:         req.Gains,
		TargetProfile: req.TargetProfile,
	})
	if err != nil {
		if errors.Is(err, simulation.ErrInvalidParameters) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSimulate, "roast_simulate_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run":    run,
		"result": result,
	})
}

// @Summary      List stored runs
// @Tags         roasts
// @Produce      json
// @Param        from  query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"
// @Param        to    query   string  false  "End of range. Date-only treated as end of day."
// @Success      200   {object}  map[string]interface{}  "count, runs"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/roasts [get]
// @Security     BearerAuth
func (h *Handler) listRuns(c *gin.Context) {
	ctx := c.Request.Context()

	from, to, ok := h.bindTimeRange(c)
	if !ok {
		return
	}

	runs, err := h.services.History.ListRuns(ctx, service.RunFilter{From: from, To: to})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListRuns, "roast_list_failed", err, "from", from, "to", to)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(runs),
		"runs":  runs,
	})
}

// @Summary      Get one stored run
// @Tags         roasts
// @Produce      json
// @Param        id   path      string  true  "Run ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/roasts/{id} [get]
// @Security     BearerAuth
func (h *Handler) getRun(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	run, err := h.services.History.GetRun(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errRunNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetRun, "roast_get_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, run)
}
