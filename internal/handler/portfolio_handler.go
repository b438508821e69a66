package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tndevelopers2024/scribe-api/internal/dto"
	"github.com/tndevelopers2024/scribe-api/internal/models"
	"github.com/tndevelopers2024/scribe-api/internal/service"
	"github.com/tndevelopers2024/scribe-api/internal/utils"
)

// PortfolioHandler manages the student-facing profile and entry endpoints.
// One generic handler serves all twelve categories; the category comes from
// the route and is validated against the registry.
type PortfolioHandler struct {
	service service.PortfolioService
	logger  zerolog.Logger
}

// NewPortfolioHandler builds a portfolio handler instance.
func NewPortfolioHandler(service service.PortfolioService, logger zerolog.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		service: service,
		logger:  logger.With().Str("component", "portfolio_handler").Logger(),
	}
}

// RegisterProfile attaches the profile route.
func (h *PortfolioHandler) RegisterProfile(router fiber.Router) {
	router.Get("/profile", h.profile)
}

// Register attaches the category entry routes to the provided router group.
func (h *PortfolioHandler) Register(router fiber.Router) {
	router.Post("/:category", h.create)
	router.Put("/:category/:itemId", h.update)
	router.Post("/:category/:itemId/resubmit", h.resubmit)
	router.Delete("/:category/:itemId", h.remove)
}

func (h *PortfolioHandler) profile(c *fiber.Ctx) error {
	actor := actorFromContext(c)

	profile, err := h.service.Profile(c.Context(), actor, actor.ID)
	if err != nil {
		return mapServiceError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *PortfolioHandler) create(c *fiber.Ctx) error {
	category, err := models.ParseCategory(c.Params("category"))
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ItemCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.service.Create(c.Context(), actorFromContext(c), category, payload)
	if err != nil {
		return mapServiceError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "entry created", item)
}

func (h *PortfolioHandler) update(c *fiber.Ctx) error {
	category, itemID, err := h.entryParams(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ItemUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.service.UpdateFields(c.Context(), actorFromContext(c), category, itemID, payload)
	if err != nil {
		return mapServiceError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "entry updated", item)
}

func (h *PortfolioHandler) resubmit(c *fiber.Ctx) error {
	category, itemID, err := h.entryParams(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	item, err := h.service.Resubmit(c.Context(), actorFromContext(c), category, itemID)
	if err != nil {
		return mapServiceError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "entry resubmitted", item)
}

func (h *PortfolioHandler) remove(c *fiber.Ctx) error {
	category, itemID, err := h.entryParams(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), actorFromContext(c), category, itemID); err != nil {
		return mapServiceError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "entry deleted", nil)
}

func (h *PortfolioHandler) entryParams(c *fiber.Ctx) (models.Category, uint, error) {
	category, err := models.ParseCategory(c.Params("category"))
	if err != nil {
		return "", 0, err
	}

	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		return "", 0, err
	}

	return category, itemID, nil
}
