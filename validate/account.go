package validate

import (
	"errors"

	"festival_portal/constants"
	"festival_portal/database"
	"festival_portal/model"
	"festival_portal/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateAccount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.CreateAccountInput)
		if !parseBody(c, input) {
			return nil
		}

		var existing model.Account
		if err := database.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("username already exists"))
		}
		if err := database.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("email already exists"))
		}

		c.Locals("accountInput", input)

		return c.Next()
	}
}

func UpdateAccount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.UpdateAccountInput)
		if !parseBody(c, input) {
			return nil
		}

		c.Locals("updateAccountInput", input)

		return c.Next()
	}
}

func ChangePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.ChangePasswordInput)
		if !parseBody(c, input) {
			return nil
		}

		if input.NewPassword != input.RepeatPassword {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.NEW_PASSWORD_NOT_SAME_REPEAT, errors.New("password mismatch"))
		}

		c.Locals("changePasswordInput", input)

		return c.Next()
	}
}
