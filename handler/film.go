package handler

import (
	"errors"

	"festival_portal/constants"
	"festival_portal/model"
	"festival_portal/service"
	"festival_portal/utils"

	"github.com/gofiber/fiber/v2"
)

type FilmHandler struct {
	Service *service.FilmService
}

func NewFilmHandler(svc *service.FilmService) *FilmHandler {
	return &FilmHandler{Service: svc}
}

func (h *FilmHandler) CreateFilm(c *fiber.Ctx) error {
	admin, _, ok := adminRefFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("portal role required"))
	}
	input, ok := c.Locals("filmInput").(*model.FilmInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	result := h.Service.CreateFeatureFilm(c.Context(), *input, admin.ID)
	if !result.Success {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, errors.New(result.Error))
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, result)
}

func (h *FilmHandler) UpdateFilm(c *fiber.Ctx) error {
	admin, _, ok := adminRefFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("portal role required"))
	}
	input, ok := c.Locals("filmInput").(*model.FilmInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	result := h.Service.UpdateFeatureFilm(c.Context(), c.Params("id"), *input, admin.ID)
	if !result.Success {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, errors.New(result.Error))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func (h *FilmHandler) GetFilms(c *fiber.Ctx) error {
	var filters model.FilmFilters
	if err := c.QueryParser(&filters); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	result := h.Service.GetEnhancedFeatureFilms(c.Context(), filters)
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func (h *FilmHandler) GetFilm(c *fiber.Ctx) error {
	film, err := h.Service.GetFeatureFilm(c.Context(), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, film)
}

func (h *FilmHandler) GetFilmBySlug(c *fiber.Ctx) error {
	film, err := h.Service.GetFeatureFilmBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, film)
}

func (h *FilmHandler) GetFilmGuests(c *fiber.Ctx) error {
	guests, err := h.Service.GetGuests(c.Context(), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, guests)
}

func (h *FilmHandler) DeleteFilm(c *fiber.Ctx) error {
	_, claim, ok := adminRefFromToken(c)
	if !ok || claim.Role == constants.ROLE_JUDGE {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("admin or moderator required"))
	}

	if err := h.Service.DeleteFeatureFilm(c.Context(), c.Params("id")); err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ERROR_DELETE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "film deleted"})
}

func (h *FilmHandler) PublishFilm(c *fiber.Ctx) error {
	_, claim, ok := adminRefFromToken(c)
	if !ok || claim.Role == constants.ROLE_JUDGE {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("admin or moderator required"))
	}

	if err := h.Service.PublishFeatureFilm(c.Context(), c.Params("id")); err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ERROR_EDIT, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "film published"})
}

func (h *FilmHandler) ArchiveFilm(c *fiber.Ctx) error {
	_, claim, ok := adminRefFromToken(c)
	if !ok || claim.Role == constants.ROLE_JUDGE {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("admin or moderator required"))
	}

	if err := h.Service.ArchiveFeatureFilm(c.Context(), c.Params("id")); err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ERROR_EDIT, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "film archived"})
}
