package handler

import (
	"errors"
	"strconv"

	"festival_portal/constants"
	"festival_portal/helper"
	"festival_portal/model"
	"festival_portal/service"
	"festival_portal/utils"

	"github.com/gofiber/fiber/v2"
)

type CommentHandler struct {
	Service *service.CommentService
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{Service: svc}
}

// adminRefFromToken resolves the acting admin for stamping writes. Any
// portal role may comment; scoring is restricted in the specific handlers.
func adminRefFromToken(c *fiber.Ctx) (service.AdminRef, model.TokenClaim, bool) {
	claim, isAdmin, isModerator, isJudge := helper.GetInfoAdminFromToken(c)
	if !isAdmin && !isModerator && !isJudge {
		return service.AdminRef{}, claim, false
	}
	return service.AdminRef{
		ID:    strconv.FormatUint(uint64(claim.AdminID), 10),
		Name:  claim.Name,
		Email: claim.Email,
	}, claim, true
}

func (h *CommentHandler) GetComments(c *fiber.Ctx) error {
	submissionID := c.Params("submissionId")
	if submissionID == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("submissionId required"))
	}
	comments := h.Service.GetComments(c.Context(), submissionID)
	return utils.SuccessResponse(c, fiber.StatusOK, comments)
}

func (h *CommentHandler) AddGeneralComment(c *fiber.Ctx) error {
	admin, _, ok := adminRefFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("portal role required"))
	}
	input, ok := c.Locals("commentInput").(*model.CreateCommentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	id, err := h.Service.AddGeneralComment(c.Context(), c.Params("submissionId"), admin, input.Content, input.Metadata)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"commentId": id})
}

func (h *CommentHandler) AddScoringComment(c *fiber.Ctx) error {
	admin, _, ok := adminRefFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("portal role required"))
	}
	input, ok := c.Locals("scoringInput").(*model.CreateScoringCommentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	id, err := h.Service.AddScoringComment(c.Context(), c.Params("submissionId"), admin, input.Scores, input.Content, input.Metadata)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"commentId": id})
}

func (h *CommentHandler) AddStatusChangeComment(c *fiber.Ctx) error {
	admin, _, ok := adminRefFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("portal role required"))
	}
	input, ok := c.Locals("statusChangeInput").(*model.CreateStatusChangeInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	id, err := h.Service.AddStatusChangeComment(c.Context(), c.Params("submissionId"), admin, input.Content, input.FromStatus, input.ToStatus)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"commentId": id})
}

func (h *CommentHandler) AddFlagComment(c *fiber.Ctx) error {
	admin, _, ok := adminRefFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("portal role required"))
	}
	input, ok := c.Locals("flagInput").(*model.CreateFlagInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	id, err := h.Service.AddFlagComment(c.Context(), c.Params("submissionId"), admin, input.Content, input.Reason, input.Severity)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"commentId": id})
}

func (h *CommentHandler) UpdateScoringComment(c *fiber.Ctx) error {
	admin, _, ok := adminRefFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("portal role required"))
	}
	input, ok := c.Locals("updateScoringInput").(*model.UpdateScoringCommentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	err := h.Service.UpdateScoringComment(c.Context(), c.Params("submissionId"), c.Params("commentId"), input.Scores, input.Comments, admin.Name)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "score updated"})
}

func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	_, _, ok := adminRefFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("portal role required"))
	}

	if err := h.Service.DeleteComment(c.Context(), c.Params("commentId")); err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "comment deleted"})
}

func (h *CommentHandler) GetLatestScoreByAdmin(c *fiber.Ctx) error {
	admin, _, ok := adminRefFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("portal role required"))
	}
	adminID := c.Query("adminId", admin.ID)

	latest := h.Service.GetLatestScoreByAdmin(c.Context(), c.Params("submissionId"), adminID)
	return utils.SuccessResponse(c, fiber.StatusOK, latest)
}
