package handler

import (
	"errors"

	"festival_portal/constants"
	"festival_portal/model"
	"festival_portal/service"
	"festival_portal/utils"

	"github.com/gofiber/fiber/v2"
)

type PartnerHandler struct {
	Service *service.PartnerService
}

func NewPartnerHandler(svc *service.PartnerService) *PartnerHandler {
	return &PartnerHandler{Service: svc}
}

func (h *PartnerHandler) GetPartners(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active", false)
	partners := h.Service.GetPartners(c.Context(), activeOnly)
	return utils.SuccessResponse(c, fiber.StatusOK, partners)
}

func (h *PartnerHandler) GetPartner(c *fiber.Ctx) error {
	partner, err := h.Service.GetPartner(c.Context(), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, partner)
}

func (h *PartnerHandler) CreatePartner(c *fiber.Ctx) error {
	_, claim, ok := adminRefFromToken(c)
	if !ok || claim.Role == constants.ROLE_JUDGE {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("admin or moderator required"))
	}
	input, ok := c.Locals("partnerInput").(*model.CreatePartnerInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	id, err := h.Service.CreatePartner(c.Context(), *input)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"partnerId": id})
}

func (h *PartnerHandler) UpdatePartner(c *fiber.Ctx) error {
	_, claim, ok := adminRefFromToken(c)
	if !ok || claim.Role == constants.ROLE_JUDGE {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("admin or moderator required"))
	}
	input, ok := c.Locals("updatePartnerInput").(*model.UpdatePartnerInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	if err := h.Service.UpdatePartner(c.Context(), c.Params("id"), *input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ERROR_EDIT, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "partner updated"})
}

func (h *PartnerHandler) DeletePartner(c *fiber.Ctx) error {
	_, claim, ok := adminRefFromToken(c)
	if !ok || claim.Role == constants.ROLE_JUDGE {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("admin or moderator required"))
	}

	if err := h.Service.DeletePartner(c.Context(), c.Params("id")); err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ERROR_DELETE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "partner deleted"})
}
