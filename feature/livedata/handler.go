package livedata

import (
	"regexp"
	"time"

	"park-pulse/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// apiError is the structured error payload on the read API.
type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	Timestamp string `json:"timestamp"`
}

func newAPIError(code, message, details string) apiError {
	return apiError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Handler handles HTTP requests for live park data.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the live data routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/live")
	group.Get("/sync-status", h.HandleGetSyncStatus)
	group.Get("/:parkID", h.HandleGetPark)
	group.Get("/:parkID/wait-times", h.HandleGetWaitTimes)
	group.Get("/:parkID/entertainment", h.HandleGetEntertainment)
	group.Get("/:parkID/crowds", h.HandleGetCrowdPredictions)
	group.Get("/:parkID/date/:date", h.HandleGetParkForDate)
}

func (h *Handler) requirePark(c *fiber.Ctx) (string, bool) {
	parkID := c.Params("parkID")
	if !h.service.KnownPark(parkID) {
		_ = c.Status(fiber.StatusNotFound).JSON(
			newAPIError("UNKNOWN_PARK", "park is not supported", parkID))
		return "", false
	}
	return parkID, true
}

// HandleGetPark returns the live park record.
// @Summary Get Park
// @Description Get current status, hours and crowd level for a park.
// @Tags live
// @Produce json
// @Param parkID path string true "Internal park ID (e.g. 'magic-kingdom')"
// @Success 200 {object} canonical.Park "Park"
// @Failure 404 {object} apiError "Unknown park"
// @Router /live/{parkID} [get]
func (h *Handler) HandleGetPark(c *fiber.Ctx) error {
	parkID, ok := h.requirePark(c)
	if !ok {
		return nil
	}
	return c.JSON(h.service.GetPark(c.Context(), parkID))
}

// HandleGetWaitTimes returns current attraction wait times.
// @Summary Get Wait Times
// @Tags live
// @Produce json
// @Param parkID path string true "Internal park ID"
// @Success 200 {array} canonical.Attraction "Attractions"
// @Failure 404 {object} apiError "Unknown park"
// @Router /live/{parkID}/wait-times [get]
func (h *Handler) HandleGetWaitTimes(c *fiber.Ctx) error {
	parkID, ok := h.requirePark(c)
	if !ok {
		return nil
	}
	return c.JSON(h.service.GetWaitTimes(c.Context(), parkID))
}

// HandleGetEntertainment returns the show schedule.
// @Summary Get Entertainment
// @Tags live
// @Produce json
// @Param parkID path string true "Internal park ID"
// @Success 200 {array} canonical.Entertainment "Shows"
// @Failure 404 {object} apiError "Unknown park"
// @Router /live/{parkID}/entertainment [get]
func (h *Handler) HandleGetEntertainment(c *fiber.Ctx) error {
	parkID, ok := h.requirePark(c)
	if !ok {
		return nil
	}
	return c.JSON(h.service.GetEntertainment(c.Context(), parkID))
}

// HandleGetCrowdPredictions returns crowd predictions for a date range.
// This endpoint can fail: crowd predictions are the one read without a safe
// default unless the fallback flag is configured.
// @Summary Get Crowd Predictions
// @Tags live
// @Produce json
// @Param parkID path string true "Internal park ID"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} canonical.CrowdPrediction "Predictions"
// @Failure 400 {object} apiError "Bad date range"
// @Failure 404 {object} apiError "Unknown park"
// @Failure 502 {object} apiError "Crowd data unavailable"
// @Router /live/{parkID}/crowds [get]
func (h *Handler) HandleGetCrowdPredictions(c *fiber.Ctx) error {
	parkID, ok := h.requirePark(c)
	if !ok {
		return nil
	}

	start, end := c.Query("start"), c.Query("end")
	if !dateRe.MatchString(start) || !dateRe.MatchString(end) {
		return c.Status(fiber.StatusBadRequest).JSON(
			newAPIError("BAD_DATE_RANGE", "start and end must be YYYY-MM-DD", ""))
	}

	predictions, err := h.service.GetCrowdPredictions(c.Context(), parkID, start, end)
	if err != nil {
		l := logger.WithRayID(h.logger, c)
		l.Error("crowd prediction read failed", zap.String("park", parkID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(
			newAPIError("CROWD_DATA_UNAVAILABLE", "crowd predictions unavailable", err.Error()))
	}
	return c.JSON(predictions)
}

// HandleGetParkForDate returns the park record with one day's prediction.
// @Summary Get Park For Date
// @Tags live
// @Produce json
// @Param parkID path string true "Internal park ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} ParkForDate "Park with prediction"
// @Failure 400 {object} apiError "Bad date"
// @Failure 404 {object} apiError "Unknown park"
// @Router /live/{parkID}/date/{date} [get]
func (h *Handler) HandleGetParkForDate(c *fiber.Ctx) error {
	parkID, ok := h.requirePark(c)
	if !ok {
		return nil
	}

	date := c.Params("date")
	if !dateRe.MatchString(date) {
		return c.Status(fiber.StatusBadRequest).JSON(
			newAPIError("BAD_DATE", "date must be YYYY-MM-DD", date))
	}
	return c.JSON(h.service.GetParkForDate(c.Context(), parkID, date))
}

// HandleGetSyncStatus returns per-source sync health.
// @Summary Get Sync Status
// @Tags live
// @Produce json
// @Success 200 {array} models.SyncStatus "Sync status rows"
// @Failure 500 {object} apiError "Internal Server Error"
// @Router /live/sync-status [get]
func (h *Handler) HandleGetSyncStatus(c *fiber.Ctx) error {
	rows, err := h.service.GetSyncStatus(c.Context())
	if err != nil {
		l := logger.WithRayID(h.logger, c)
		l.Error("sync status read failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			newAPIError("SYNC_STATUS_FAILED", "could not load sync status", err.Error()))
	}
	return c.JSON(rows)
}
