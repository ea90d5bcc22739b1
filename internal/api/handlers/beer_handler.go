package handlers

import (
	"shiftiq/internal/dto"
	"shiftiq/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BeerHandler struct {
	beerService *service.BeerService
	logger      *zap.Logger
}

func NewBeerHandler(beerService *service.BeerService, logger *zap.Logger) *BeerHandler {
	return &BeerHandler{
		beerService: beerService,
		logger:      logger,
	}
}

// ListBeers godoc
// @Summary List the tap and bottle menu
// @Tags beers
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.BeerResponse
// @Router /api/v1/beers [get]
func (h *BeerHandler) ListBeers(c *fiber.Ctx) error {
	beers, err := h.beerService.List(c.Context())
	if err != nil {
		h.logger.Error("Failed to list beers", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list beers",
		})
	}

	return c.JSON(beers)
}

// CreateBeer godoc
// @Summary Add a beer to the menu
// @Tags beers
// @Accept json
// @Produce json
// @Param request body dto.BeerRequest true "Beer"
// @Security Bearer
// @Success 201 {object} dto.BeerResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/beers [post]
func (h *BeerHandler) CreateBeer(c *fiber.Ctx) error {
	var req dto.BeerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	beer, err := h.beerService.Create(c.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create beer", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create beer",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(beer)
}

// UpdateBeer godoc
// @Summary Update a beer
// @Tags beers
// @Accept json
// @Produce json
// @Param id path string true "Beer ID"
// @Param request body dto.BeerRequest true "Beer"
// @Security Bearer
// @Success 200 {object} dto.BeerResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/beers/{id} [put]
func (h *BeerHandler) UpdateBeer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid beer ID",
		})
	}

	var req dto.BeerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	beer, err := h.beerService.Update(c.Context(), id, &req)
	if err != nil {
		h.logger.Error("Failed to update beer", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update beer",
		})
	}

	return c.JSON(beer)
}

// DeleteBeer godoc
// @Summary Remove a beer from the menu
// @Tags beers
// @Produce json
// @Param id path string true "Beer ID"
// @Security Bearer
// @Success 204
// @Router /api/v1/beers/{id} [delete]
func (h *BeerHandler) DeleteBeer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid beer ID",
		})
	}

	if err := h.beerService.Delete(c.Context(), id); err != nil {
		h.logger.Error("Failed to delete beer", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete beer",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
