// Package web exposes the gaze pipeline over HTTP and websockets:
// session and calibration control, attention statistics queries, a
// landmark ingest socket, and a display broadcast stream.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/irisline/gazekit/internal/log"
	"github.com/irisline/gazekit/pkg/gaze"
	"github.com/irisline/gazekit/pkg/hub"
)

// Server is the gazed HTTP/websocket server.
type Server struct {
	app     *fiber.App
	addr    string
	tracker *gaze.Tracker

	frameWidth  float64
	frameHeight float64

	// Display broadcast
	gazeHub *hub.Hub
}

// NewServer creates a server around one tracker session.
func NewServer(addr string, tracker *gaze.Tracker, frameWidth, frameHeight float64) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
		}),
		addr:        addr,
		tracker:     tracker,
		frameWidth:  frameWidth,
		frameHeight: frameHeight,
		gazeHub:     hub.New("gaze"),
	}
	s.routes()
	return s
}

// Hub returns the display broadcast hub for external publishers
// (e.g. the stats ticker in cmd/gazed).
func (s *Server) Hub() *hub.Hub {
	return s.gazeHub
}

// UpdateTarget implements gaze.DisplaySink: calibration dot position,
// phase, and progress for the guided overlay.
func (s *Server) UpdateTarget(target gaze.Point, phase string, progress float64) {
	s.gazeHub.Publish("target", fiber.Map{
		"x":        target.X,
		"y":        target.Y,
		"phase":    phase,
		"progress": progress,
	})
}

// UpdateGaze implements gaze.DisplaySink: the live gaze cursor.
func (s *Server) UpdateGaze(p gaze.Point) {
	s.gazeHub.Publish("gaze", p)
}

// Start runs the hub loop and listens. Blocks until shutdown.
func (s *Server) Start() error {
	go s.gazeHub.Run()
	log.Info("web server listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) routes() {
	s.app.Use(cors.New())

	api := s.app.Group("/api")
	api.Get("/status", s.handleStatus)

	api.Post("/session/start", s.handleSessionStart)
	api.Post("/session/stop", s.handleSessionStop)

	api.Post("/calibration/start", s.handleCalibrationStart)
	api.Post("/calibration/cancel", s.handleCalibrationCancel)
	api.Post("/verification/confirm", s.handleVerificationConfirm)

	api.Get("/stats/heatmap", s.handleHeatmap)
	api.Get("/stats/regions", s.handleRegions)
	api.Get("/stats/timeline", s.handleTimeline)

	api.Get("/tuning", s.handleGetTuning)
	api.Put("/tuning", s.handleSetTuning)

	// Websockets require an upgrade check before the handler
	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	s.app.Get("/ws/gaze", websocket.New(s.handleGazeSocket))
	s.app.Get("/ws/landmarks", websocket.New(s.handleLandmarkSocket))
}

// handleGazeSocket attaches a display client to the broadcast hub.
func (s *Server) handleGazeSocket(conn *websocket.Conn) {
	client := hub.NewClient(s.gazeHub, conn)
	client.Run()
}

// handleLandmarkSocket ingests landmark frames pushed by a detector.
// Each JSON text frame is one gaze.LandmarkFrame; the pipeline runs
// synchronously inside the read loop, preserving delivery order.
func (s *Server) handleLandmarkSocket(conn *websocket.Conn) {
	defer conn.Close()
	log.Info("landmark provider connected", "remote", conn.RemoteAddr().String())

	for {
		var frame gaze.LandmarkFrame
		if err := conn.ReadJSON(&frame); err != nil {
			log.Info("landmark provider disconnected", "err", err)
			return
		}
		s.tracker.IngestFrame(frame)
	}
}
