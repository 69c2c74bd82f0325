package web

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/irisline/gazekit/pkg/attention"
	"github.com/irisline/gazekit/pkg/gaze"
)

func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.tracker.Status())
}

func (s *Server) handleSessionStart(c *fiber.Ctx) error {
	var req struct {
		Source string `json:"source"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if req.Source == "" {
		req.Source = "default"
	}

	rec := s.tracker.StartTracking(req.Source)
	return c.JSON(fiber.Map{
		"recording_id": rec.ID().String(),
		"source":       rec.Source(),
	})
}

func (s *Server) handleSessionStop(c *fiber.Ctx) error {
	summary, ok := s.tracker.StopTracking()
	if !ok {
		return fiber.NewError(fiber.StatusConflict, "no active recording")
	}
	return c.JSON(summary)
}

func (s *Server) handleCalibrationStart(c *fiber.Ctx) error {
	if err := s.tracker.BeginCalibration(); err != nil {
		if errors.Is(err, gaze.ErrSessionActive) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return err
	}
	return c.JSON(s.tracker.Status())
}

func (s *Server) handleCalibrationCancel(c *fiber.Ctx) error {
	s.tracker.CancelCalibration()
	return c.JSON(s.tracker.Status())
}

func (s *Server) handleVerificationConfirm(c *fiber.Ctx) error {
	if err := s.tracker.ConfirmVerification(); err != nil {
		if errors.Is(err, gaze.ErrNotCalibrating) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return err
	}
	return c.JSON(s.tracker.Status())
}

func (s *Server) handleHeatmap(c *fiber.Ctx) error {
	window := queryWindow(c)
	grid := attention.Heatmap(s.tracker.Points(), window,
		s.frameWidth, s.frameHeight, attention.DefaultHeatmapOptions())
	return c.JSON(fiber.Map{
		"grid":   grid,
		"window": fiber.Map{"start": window.Start, "end": window.End},
	})
}

func (s *Server) handleRegions(c *fiber.Ctx) error {
	window := queryWindow(c)
	n := queryInt(c, "n", 4)
	regions := attention.Regions(s.tracker.Points(), window, n,
		s.frameWidth, s.frameHeight)
	return c.JSON(fiber.Map{
		"regions":   regions,
		"quadrants": attention.Quadrants(regions),
	})
}

func (s *Server) handleTimeline(c *fiber.Ctx) error {
	bucket := queryFloat(c, "bucket", 5)
	rate := queryFloat(c, "rate", attention.DefaultExpectedRate)
	buckets := attention.Timeline(s.tracker.Points(), bucket,
		queryBase(c), rate)
	return c.JSON(fiber.Map{"buckets": buckets})
}

func (s *Server) handleGetTuning(c *fiber.Ctx) error {
	return c.JSON(s.tracker.GetTuningParams())
}

func (s *Server) handleSetTuning(c *fiber.Ctx) error {
	var params gaze.TuningParams
	if err := c.BodyParser(&params); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid tuning body")
	}
	s.tracker.SetTuningParams(params)
	return c.JSON(s.tracker.GetTuningParams())
}

// queryWindow builds the aggregation window from start/end/base query
// params. A missing end means "everything so far".
func queryWindow(c *fiber.Ctx) attention.Window {
	const openEnd = 1e18
	return attention.Window{
		Start: queryFloat(c, "start", 0),
		End:   queryFloat(c, "end", openEnd),
		Base:  queryBase(c),
	}
}

// queryBase selects the time base; wall time unless base=content.
func queryBase(c *fiber.Ctx) attention.TimeBase {
	if c.Query("base") == "content" {
		return attention.ContentTime
	}
	return attention.WallTime
}

func queryFloat(c *fiber.Ctx, key string, fallback float64) float64 {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
