package handler

import (
	"github.com/gofiber/fiber/v2"

	"ambientefest/internal/service"
)

// UploadImages stores the files posted under "images" and returns their
// paths and URLs.
func UploadImages(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "multipart form with images is required")
		}
		files, done, err := formImages(form, "images", "content[]")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer done()

		res, err := svc.Upload(c.UserContext(), files)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}
