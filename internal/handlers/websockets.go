package handlers

import (
	"net/http"
	"strconv"
	"time"

	"roastsim/internal/service"
	"roastsim/internal/simulation"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 100 * time.Millisecond
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
)

// Demo gains used when the client does not supply its own.
const (
	playbackKp = 2.0
	playbackKi = 0.05
	playbackKd = 8.0
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// wsSample is one playback frame: the step values of the plotted series.
type wsSample struct {
	T            float64 `json:"t"`
	BeanTemp     float64 `json:"bean_temp"`
	TrueBeanTemp float64 `json:"true_bean_temp"`
	ROR          float64 `json:"ror"`
	Target       float64 `json:"target"`
	Power        float64 `json:"power"`
}

// Upgrader for HTTP -> WebSocket.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins for production
}

// wsPlayback runs one simulation and replays its series step by step.
// Query params: interval / interval_ms (frame pacing), kp / ki / kd (gains),
// duration (minutes). Unset values fall back to the demo batch.
func (h *Handler) wsPlayback(c *gin.Context) {
	interval := h.parseInterval(c)
	req := h.parsePlaybackRequest(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	run, result, err := h.services.Roaster.Simulate(c.Request.Context(), req)
	if err != nil {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: err.Error()})
		return
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(wsEnvelope{Type: "run", Data: run}); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	step := 0
	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if step >= sampleCount(result) {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteJSON(wsEnvelope{Type: "summary", Data: run.Summary})
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(wsEnvelope{Type: "sample", Data: sampleAt(result, step)}); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
			step++
		}
	}
}

// sampleCount is the shared length of the plotted series.
func sampleCount(r *simulation.Result) int {
	if len(r.Plots) == 0 || len(r.Plots[0].Series) == 0 {
		return 0
	}
	return len(r.Plots[0].Series[0])
}

// sampleAt flattens one step across the two plot groups. Group 0 carries
// measured / true / ROR / target, group 1 leads with power.
func sampleAt(r *simulation.Result, i int) wsSample {
	temps := r.Plots[0].Series
	return wsSample{
		T:            temps[0][i].X,
		BeanTemp:     temps[0][i].Y,
		TrueBeanTemp: temps[1][i].Y,
		ROR:          temps[2][i].Y,
		Target:       temps[3][i].Y,
		Power:        r.Plots[1].Series[0][i].Y,
	}
}

// parsePlaybackRequest builds a simulation request from query params, falling
// back to the demo batch and gains.
func (h *Handler) parsePlaybackRequest(c *gin.Context) service.SimulationRequest {
	params := simulation.DefaultParameters()
	if v, err := strconv.ParseFloat(c.Query("duration"), 64); err == nil && v > 0 {
		params.Duration = v
	}

	gains := service.PIDGains{Kp: playbackKp, Ki: playbackKi, Kd: playbackKd}
	if v, err := strconv.ParseFloat(c.Query("kp"), 64); err == nil {
		gains.Kp = v
	}
	if v, err := strconv.ParseFloat(c.Query("ki"), 64); err == nil {
		gains.Ki = v
	}
	if v, err := strconv.ParseFloat(c.Query("kd"), 64); err == nil {
		gains.Kd = v
	}

	return service.SimulationRequest{
		Label:      c.Query("label"),
		Parameters: params,
		Gains:      gains,
	}
}

// parseInterval reads ?interval=200ms or ?interval_ms=200 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}
