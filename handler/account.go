package handler

import (
	"errors"
	"strings"

	"festival_portal/constants"
	"festival_portal/database"
	"festival_portal/helper"
	"festival_portal/model"
	"festival_portal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func GetAccounts(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAdminFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("admin role required"))
	}

	filter := new(model.FilterAccount)
	if err := c.QueryParser(filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Account{})
	if filter.SearchKey != "" {
		like := "%" + strings.ToLower(filter.SearchKey) + "%"
		condition = condition.Where("LOWER(username) LIKE ? OR LOWER(display_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}
	if filter.Active != nil {
		condition = condition.Where("active = ?", *filter.Active)
	}
	if filter.Role != nil {
		condition = condition.Where("role = ?", *filter.Role)
	}

	var totalCount int64
	condition.Count(&totalCount)
	var accounts model.Accounts
	condition = utils.ApplyPagination(condition, filter.Limit, filter.Page)
	condition.Order("id DESC").Find(&accounts)

	response := &model.ResponseCustom{
		Rows:       accounts,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func Me(c *fiber.Ctx) error {
	info, _, _, _ := helper.GetInfoAdminFromToken(c)
	if info.AdminID == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_PERMISSION, errors.New("no account"))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, info)
}

func CreateAccount(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAdminFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("admin role required"))
	}

	accountInput, ok := c.Locals("accountInput").(*model.CreateAccountInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	existing, err := helper.GetAccountByUsername(accountInput.Username)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.INVALID_USERNAME, errors.New("username already exists"))
	}

	hashed, err := helper.HashPassword(accountInput.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	var newAccount model.Account
	copier.Copy(&newAccount, &accountInput)
	newAccount.Password = hashed
	newAccount.Active = true

	if err := database.DB.Create(&newAccount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newAccount)
}

func UpdateAccount(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAdminFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("admin role required"))
	}

	accountID, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	input, ok := c.Locals("updateAccountInput").(*model.UpdateAccountInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	db := database.DB
	var account model.Account
	if err := db.First(&account, accountID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	copier.CopyWithOption(&account, input, copier.Option{IgnoreEmpty: true})
	if err := db.Save(&account).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, account)
}

func ChangePassword(c *fiber.Ctx) error {
	info, _, _, _ := helper.GetInfoAdminFromToken(c)
	if info.AdminID == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_PERMISSION, errors.New("no account"))
	}

	input, ok := c.Locals("changePasswordInput").(*model.ChangePasswordInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	if input.NewPassword != input.RepeatPassword {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.NEW_PASSWORD_NOT_SAME_REPEAT, errors.New("password mismatch"))
	}

	db := database.DB
	var account model.Account
	if err := db.First(&account, info.AdminID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if !helper.CheckPasswordHash(input.CurrentPassword, account.Password) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_PASSWORD, errors.New("current password incorrect"))
	}

	hashed, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}
	if err := db.Model(&account).Update("password", hashed).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "password updated"})
}
