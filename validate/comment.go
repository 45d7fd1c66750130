package validate

import (
	"errors"

	"festival_portal/constants"
	"festival_portal/model"
	"festival_portal/utils"

	"github.com/gofiber/fiber/v2"
)

func requireSubmissionId(c *fiber.Ctx) bool {
	if c.Params("submissionId") == "" {
		utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("submissionId required"))
		return false
	}
	return true
}

func validScore(v float64) bool {
	return v >= 0 && v <= 10
}

// checkScores verifies each criterion sits in the 0 to 10 range. The total is
// recomputed downstream, so an inconsistent totalScore in the input is not an
// error here.
func checkScores(c *fiber.Ctx, scores model.ScoreRecord) bool {
	for _, v := range []float64{scores.Technical, scores.Story, scores.Creativity, scores.Chiangmai, scores.Overall} {
		if !validScore(v) {
			utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("score out of range"))
			return false
		}
	}
	return true
}

func CreateComment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !requireSubmissionId(c) {
			return nil
		}
		input := new(model.CreateCommentInput)
		if !parseBody(c, input) {
			return nil
		}

		c.Locals("commentInput", input)

		return c.Next()
	}
}

func CreateScoringComment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !requireSubmissionId(c) {
			return nil
		}
		input := new(model.CreateScoringCommentInput)
		if !parseBody(c, input) {
			return nil
		}
		if !checkScores(c, input.Scores) {
			return nil
		}

		c.Locals("scoringInput", input)

		return c.Next()
	}
}

func UpdateScoringComment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !requireSubmissionId(c) {
			return nil
		}
		if c.Params("commentId") == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("commentId required"))
		}
		input := new(model.UpdateScoringCommentInput)
		if !parseBody(c, input) {
			return nil
		}
		if !checkScores(c, input.Scores) {
			return nil
		}

		c.Locals("updateScoringInput", input)

		return c.Next()
	}
}

func CreateStatusChange() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !requireSubmissionId(c) {
			return nil
		}
		input := new(model.CreateStatusChangeInput)
		if !parseBody(c, input) {
			return nil
		}
		if input.FromStatus == input.ToStatus {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("status unchanged"))
		}

		c.Locals("statusChangeInput", input)

		return c.Next()
	}
}

func CreateFlag() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !requireSubmissionId(c) {
			return nil
		}
		input := new(model.CreateFlagInput)
		if !parseBody(c, input) {
			return nil
		}

		c.Locals("flagInput", input)

		return c.Next()
	}
}
