package handlers

import (
	"context"
	"net/http"
	"time"

	"roastsim/internal/models"
	"roastsim/internal/service"
	"roastsim/internal/simulation"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockRoaster struct {
	run     models.RoastRun
	result  *simulation.Result
	err     error
	calls   int
	lastReq service.SimulationRequest
}

func (m *mockRoaster) Simulate(ctx context.Context, req service.SimulationRequest) (models.RoastRun, *simulation.Result, error) {
	m.calls++
	m.lastReq = req
	return m.run, m.result, m.err
}

type mockHistory struct {
	run     models.RoastRun
	runs    []models.RoastRun
	getErr  error
	listErr error

	lastGetID  string
	lastFilter service.RunFilter
}

func (m *mockHistory) GetRun(ctx context.Context, id string) (models.RoastRun, error) {
	m.lastGetID = id
	return m.run, m.getErr
}
func (m *mockHistory) ListRuns(ctx context.Context, f service.RunFilter) ([]models.RoastRun, error) {
	m.lastFilter = f
	return m.runs, m.listErr
}

type mockEventLog struct {
	resp       []models.RoastEvent
	err        error
	lastFilter service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.RoastEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// smallResult builds a minimal n-point result in the two-plot-group shape the
// engine emits, for streaming tests that don't need a real run.
func smallResult(n int) *simulation.Result {
	mk := func(scale float64) []simulation.Point {
		pts := make([]simulation.Point, n)
		for i := range pts {
			pts[i] = simulation.Point{X: float64(i), Y: float64(i) * scale}
		}
		return pts
	}
	return &simulation.Result{
		Plots: []simulation.PlotGroup{
			{Series: [][]simulation.Point{mk(1), mk(2), mk(0.5), mk(1.5)}},
			{Series: [][]simulation.Point{mk(10), mk(-1), mk(-2)}},
		},
		Info:      "test",
		FinalTemp: 200,
	}
}

func testRun() models.RoastRun {
	return models.RoastRun{
		ID:        "run-1",
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Label:     "test batch",
		Kp:        2, Ki: 0.1, Kd: 5,
		Parameters: simulation.DefaultParameters(),
		Summary:    models.RoastSummary{Info: "test", FinalTemp: 200},
	}
}
