package validate

import (
	"errors"
	"strconv"

	"festival_portal/constants"
	"festival_portal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals("inputId", valueKey)

		return c.Next()
	}
}

// parseBody parses and validates a JSON body into dst, replying itself on
// failure. It returns false when the middleware should stop the chain.
func parseBody(c *fiber.Ctx, dst any) bool {
	if err := c.BodyParser(dst); err != nil {
		utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		return false
	}
	return true
}
