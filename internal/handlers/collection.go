package handlers

import (
	"github.com/catnipgames/catpacks/internal/services"
	"github.com/catnipgames/catpacks/internal/types"
	"github.com/catnipgames/catpacks/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CollectionHandler handles the collection and catalog routes
type CollectionHandler struct {
	DB *gorm.DB
}

// GetCollection handles GET /api/collection
// @Summary Get own collection
// @Description Owned collectibles with per-item counts
// @Tags Collection
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /collection [get]
func (h *CollectionHandler) GetCollection(c *fiber.Ctx) error {
	identity, err := getIdentity(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, types.KindUnauthenticated, err.Error())
	}

	owned, err := services.GetCollection(h.DB, identity.ID)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getCollection")
	}

	if owned == nil {
		owned = []services.OwnedCat{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"cats": owned})
}

// GetCatalog handles GET /api/catalog
// @Summary Get the full catalog
// @Description All collectible definitions, public
// @Tags Collection
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /catalog [get]
func (h *CollectionHandler) GetCatalog(c *fiber.Ctx) error {
	items, err := services.ListCatalog(h.DB)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getCatalog")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"cats": items})
}
