package handlers

import (
	"time"

	"github.com/catnipgames/catpacks/internal/services"
	"github.com/catnipgames/catpacks/internal/types"
	"github.com/catnipgames/catpacks/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProfileHandler handles the profile route
type ProfileHandler struct {
	DB *gorm.DB
}

// GetMe handles GET /api/me
// @Summary Get own profile
// @Description Current credits, last daily claim and collection size
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /me [get]
func (h *ProfileHandler) GetMe(c *fiber.Ctx) error {
	identity, err := getIdentity(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, types.KindUnauthenticated, err.Error())
	}

	account, err := services.GetOrCreateAccount(h.DB, identity.ID)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getMe")
	}

	owned, err := services.CountOwned(h.DB, identity.ID)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getMe")
	}

	var lastClaim *string
	if account.LastDailyClaim != nil {
		s := time.Time(*account.LastDailyClaim).Format("2006-01-02")
		lastClaim = &s
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user_id":          identity.ID,
		"email":            identity.Email,
		"credits":          account.Credits,
		"last_daily_claim": lastClaim,
		"cats_owned":       owned,
	})
}
