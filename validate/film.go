package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"festival_portal/constants"
	"festival_portal/model"
	"festival_portal/utils"

	"github.com/gofiber/fiber/v2"
)

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true}
var videoExts = map[string]bool{".mp4": true, ".mov": true, ".webm": true}

func formValue(form map[string][]string, key string) string {
	if vals, ok := form[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}

func formInt(form map[string][]string, key string) int {
	v, _ := strconv.Atoi(formValue(form, key))
	return v
}

// splitList accepts a comma separated form value ("Drama, Horror").
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// filmInputFromForm reads the multipart film payload. Structured fields
// (screenings, guests) arrive as JSON encoded form values.
func filmInputFromForm(c *fiber.Ctx) (*model.FilmInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("cannot read form data: %w", err)
	}

	input := &model.FilmInput{
		Title:          formValue(form.Value, "title"),
		TitleTh:        formValue(form.Value, "titleTh"),
		Synopsis:       formValue(form.Value, "synopsis"),
		Genres:         splitList(formValue(form.Value, "genres")),
		Country:        formValue(form.Value, "country"),
		Language:       splitList(formValue(form.Value, "language")),
		Duration:       formInt(form.Value, "duration"),
		ReleaseYear:    formInt(form.Value, "releaseYear"),
		Director:       formValue(form.Value, "director"),
		Producer:       formValue(form.Value, "producer"),
		MainActors:     formValue(form.Value, "mainActors"),
		Status:         formValue(form.Value, "status"),
		TargetAudience: formValue(form.Value, "targetAudience"),
	}

	if raw := formValue(form.Value, "screenings"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &input.Screenings); err != nil {
			return nil, fmt.Errorf("invalid screenings payload: %w", err)
		}
	}
	if raw := formValue(form.Value, "guests"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &input.Guests); err != nil {
			return nil, fmt.Errorf("invalid guests payload: %w", err)
		}
	}

	if files := form.File["poster"]; len(files) > 0 {
		ext := strings.ToLower(filepath.Ext(files[0].Filename))
		if !imageExts[ext] {
			return nil, errors.New("unsupported poster format")
		}
		input.PosterFile = files[0]
	}
	if files := form.File["trailer"]; len(files) > 0 {
		ext := strings.ToLower(filepath.Ext(files[0].Filename))
		if !videoExts[ext] {
			return nil, errors.New("unsupported trailer format")
		}
		input.TrailerFile = files[0]
	}
	for _, file := range form.File["gallery"] {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !imageExts[ext] {
			return nil, errors.New("unsupported gallery image format")
		}
		input.GalleryFiles = append(input.GalleryFiles, file)
	}

	return input, nil
}

func CreateFilm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := filmInputFromForm(c)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("filmInput", input)

		return c.Next()
	}
}

func UpdateFilm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Params("id") == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("film id required"))
		}
		input, err := filmInputFromForm(c)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("filmInput", input)

		return c.Next()
	}
}
