package handlers

import (
	"github.com/catnipgames/catpacks/internal/services"
	"github.com/catnipgames/catpacks/internal/types"
	"github.com/catnipgames/catpacks/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DailyHandler handles the daily-claim route
type DailyHandler struct {
	DB *gorm.DB
}

// ClaimDaily handles POST /api/claim-daily
// @Summary Claim daily credits
// @Description Grant the daily credit allowance, once per calendar date
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /claim-daily [post]
func (h *DailyHandler) ClaimDaily(c *fiber.Ctx) error {
	identity, err := getIdentity(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, types.KindUnauthenticated, err.Error())
	}

	credits, claimed, err := services.ClaimDaily(h.DB, identity.ID, services.Today())
	if err != nil {
		return utils.DomainErrorResponse(c, err, "claimDaily")
	}

	message := "Daily credits claimed!"
	if !claimed {
		message = "Already claimed today."
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"credits": credits,
		"message": message,
		"claimed": claimed,
	})
}
