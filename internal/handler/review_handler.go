package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tndevelopers2024/scribe-api/internal/dto"
	"github.com/tndevelopers2024/scribe-api/internal/service"
	"github.com/tndevelopers2024/scribe-api/internal/utils"
)

// ReviewHandler exposes the single review mutation endpoint.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler builds a review handler instance.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("component", "review_handler").Logger(),
	}
}

// Register attaches the route to the provided router group.
func (h *ReviewHandler) Register(router fiber.Router) {
	router.Put("/review", h.review)
}

func (h *ReviewHandler) review(c *fiber.Ctx) error {
	var payload dto.ReviewRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.service.Review(c.Context(), actorFromContext(c), payload)
	if err != nil {
		return mapServiceError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "review applied", item)
}
