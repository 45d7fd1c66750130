package handler

import (
	"errors"

	"festival_portal/constants"
	"festival_portal/model"
	"festival_portal/service"
	"festival_portal/utils"

	"github.com/gofiber/fiber/v2"
)

type ActivityHandler struct {
	Service *service.ActivityService
}

func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: svc}
}

func (h *ActivityHandler) GetActivities(c *fiber.Ctx) error {
	activities := h.Service.GetActivities(c.Context())
	return utils.SuccessResponse(c, fiber.StatusOK, activities)
}

func (h *ActivityHandler) GetActivity(c *fiber.Ctx) error {
	activity, err := h.Service.GetActivity(c.Context(), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, activity)
}

func (h *ActivityHandler) CreateActivity(c *fiber.Ctx) error {
	_, claim, ok := adminRefFromToken(c)
	if !ok || claim.Role == constants.ROLE_JUDGE {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("admin or moderator required"))
	}
	input, ok := c.Locals("activityInput").(*model.CreateActivityInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	id, err := h.Service.CreateActivity(c.Context(), *input)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"activityId": id})
}

func (h *ActivityHandler) UpdateActivity(c *fiber.Ctx) error {
	_, claim, ok := adminRefFromToken(c)
	if !ok || claim.Role == constants.ROLE_JUDGE {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("admin or moderator required"))
	}
	input, ok := c.Locals("updateActivityInput").(*model.UpdateActivityInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	if err := h.Service.UpdateActivity(c.Context(), c.Params("id"), *input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ERROR_EDIT, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "activity updated"})
}

func (h *ActivityHandler) DeleteActivity(c *fiber.Ctx) error {
	_, claim, ok := adminRefFromToken(c)
	if !ok || claim.Role == constants.ROLE_JUDGE {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("admin or moderator required"))
	}

	if err := h.Service.DeleteActivity(c.Context(), c.Params("id")); err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ERROR_DELETE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "activity deleted"})
}

// ActivityQR streams the check-in QR code as a PNG image.
func (h *ActivityHandler) ActivityQR(c *fiber.Ctx) error {
	png, err := h.Service.ActivityCheckinQR(c.Context(), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
