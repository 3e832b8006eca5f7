package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"ambientefest/internal/model"
	"ambientefest/internal/service"
	"ambientefest/internal/storage"
)

// ListServices filters the catalogue by category, price range and rating.
func ListServices(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := service.ServiceFilter{
			Category: c.Query("category", c.Query("categoria")),
			Order:    c.Query("order"),
		}
		var err error
		if f.MinPrice, err = queryFloat(c, "min_price"); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_MIN_PRICE", "invalid min_price")
		}
		if f.MaxPrice, err = queryFloat(c, "max_price"); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_MAX_PRICE", "invalid max_price")
		}
		if f.MinRating, err = queryFloat(c, "min_rating"); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_MIN_RATING", "invalid min_rating")
		}
		if raw := c.Query("limit"); raw != "" {
			if f.Limit, err = strconv.Atoi(raw); err != nil || f.Limit < 0 {
				return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
			}
		}
		switch f.Order {
		case "", service.OrderRatingDesc, service.OrderPriceAsc, service.OrderPriceDesc:
		default:
			return writeError(c, fiber.StatusBadRequest, "INVALID_ORDER", "order must be rating_desc, price_asc or price_desc")
		}

		res, err := svc.ListServices(c.UserContext(), f)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func FeaturedServices(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := strconv.Atoi(c.Query("limit", "4"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		res, err := svc.Featured(c.UserContext(), n)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func GetService(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		res, err := svc.GetService(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func ServiceCategories(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Categories(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateService accepts JSON or multipart/form-data with files under "images".
func CreateService(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, files, done, err := serviceRequest(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		defer done()
		res, err := svc.CreateService(c.UserContext(), in, files)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

func UpdateService(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		in, files, done, err := serviceRequest(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		defer done()
		res, err := svc.UpdateService(c.UserContext(), id, in, files)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func DeleteService(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		if err := svc.DeleteService(c.UserContext(), id); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func serviceRequest(c *fiber.Ctx) (model.ServiceInput, []storage.Upload, func(), error) {
	var in model.ServiceInput
	if !isMultipart(c) {
		err := c.BodyParser(&in)
		return in, nil, func() {}, err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return in, nil, func() {}, err
	}
	in.Name = formString(form, "nombre")
	in.Description = formString(form, "descripcion")
	in.Provider = formString(form, "proveedor")
	if v, ok := formValue(form, "disponibilidad"); ok {
		in.Availability = v
	}
	if in.Price, err = formFloat(form, "precio"); err != nil {
		return in, nil, func() {}, err
	}
	if in.Rating, err = formFloat(form, "rating"); err != nil {
		return in, nil, func() {}, err
	}
	if in.CategoryID, err = formInt(form, "service_category_id"); err != nil {
		return in, nil, func() {}, err
	}
	if in.UserID, err = formInt(form, "user_id"); err != nil {
		return in, nil, func() {}, err
	}
	files, done, err := formImages(form, "images", "imagen")
	return in, files, done, err
}
