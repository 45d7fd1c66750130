package validate

import (
	"festival_portal/model"

	"github.com/gofiber/fiber/v2"
)

func CreatePartner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.CreatePartnerInput)
		if !parseBody(c, input) {
			return nil
		}

		c.Locals("partnerInput", input)

		return c.Next()
	}
}

func UpdatePartner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.UpdatePartnerInput)
		if !parseBody(c, input) {
			return nil
		}

		c.Locals("updatePartnerInput", input)

		return c.Next()
	}
}
