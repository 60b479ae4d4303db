package handlers

import (
	"github.com/catnipgames/catpacks/internal/services"
	"github.com/catnipgames/catpacks/internal/types"
	"github.com/catnipgames/catpacks/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PackHandler handles the pack-opening route
type PackHandler struct {
	DB    *gorm.DB
	Rolls services.RollSource
}

// OpenPack handles POST /api/open-pack
// @Summary Open a pack
// @Description Spend credits to open one pack and receive a random collectible
// @Tags Packs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /open-pack [post]
func (h *PackHandler) OpenPack(c *fiber.Ctx) error {
	identity, err := getIdentity(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, types.KindUnauthenticated, err.Error())
	}

	result, err := services.OpenPack(h.DB, identity.ID, h.Rolls)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "openPack")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"credits": result.Credits,
		"cat": fiber.Map{
			"name":      result.Item.Name,
			"rarity":    result.Item.Rarity,
			"image_url": result.Item.ImageURL,
		},
	})
}
