package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"

	"github.com/aebalz/vibetrack/internal/service"
)

// PreferenceHandler serves the theme and reminder settings.
type PreferenceHandler struct {
	Service service.PreferenceServiceInterface
}

func NewPreferenceHandler(svc service.PreferenceServiceInterface) *PreferenceHandler {
	return &PreferenceHandler{Service: svc}
}

func (h *PreferenceHandler) get(ctx context.Context) (int, any) {
	pref, err := h.Service.Get(ctx)
	if err != nil {
		return fail(err)
	}
	return ok(pref)
}

func (h *PreferenceHandler) update(ctx context.Context, in service.PreferenceInput) (int, any) {
	pref, err := h.Service.Update(ctx, in)
	if err != nil {
		return fail(err)
	}
	return ok(pref)
}

// @Summary Get preferences
// @Tags Preferences
// @Produce json
// @Success 200 {object} Envelope{data=model.Preference}
// @Router /api/v1/preferences [get]
func (h *PreferenceHandler) GetFiber(c *fiber.Ctx) error {
	status, body := h.get(c.UserContext())
	return c.Status(status).JSON(body)
}

func (h *PreferenceHandler) GetGin(c *gin.Context) {
	c.JSON(h.get(c.Request.Context()))
}

// @Summary Update preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Param preferences body service.PreferenceInput true "Fields to change"
// @Success 200 {object} Envelope{data=model.Preference}
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/preferences [put]
func (h *PreferenceHandler) UpdateFiber(c *fiber.Ctx) error {
	var in service.PreferenceInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	status, body := h.update(c.UserContext(), in)
	return c.Status(status).JSON(body)
}

func (h *PreferenceHandler) UpdateGin(c *gin.Context) {
	var in service.PreferenceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	c.JSON(h.update(c.Request.Context(), in))
}
