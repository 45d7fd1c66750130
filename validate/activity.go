package validate

import (
	"errors"
	"time"

	"festival_portal/constants"
	"festival_portal/model"
	"festival_portal/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateActivity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.CreateActivityInput)
		if !parseBody(c, input) {
			return nil
		}

		starts, err := time.Parse(time.RFC3339, input.StartsAt)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("startsAt must be RFC3339"))
		}
		if input.EndsAt != "" {
			ends, err := time.Parse(time.RFC3339, input.EndsAt)
			if err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("endsAt must be RFC3339"))
			}
			if ends.Before(starts) {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("endsAt before startsAt"))
			}
		}

		c.Locals("activityInput", input)

		return c.Next()
	}
}

func UpdateActivity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.UpdateActivityInput)
		if !parseBody(c, input) {
			return nil
		}

		if input.StartsAt != nil {
			if _, err := time.Parse(time.RFC3339, *input.StartsAt); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("startsAt must be RFC3339"))
			}
		}
		if input.EndsAt != nil && *input.EndsAt != "" {
			if _, err := time.Parse(time.RFC3339, *input.EndsAt); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("endsAt must be RFC3339"))
			}
		}

		c.Locals("updateActivityInput", input)

		return c.Next()
	}
}
