package handler

import (
	"github.com/gofiber/fiber/v2"

	"ambientefest/internal/model"
	"ambientefest/internal/service"
	"ambientefest/internal/storage"
)

type commentRequest struct {
	Content string `json:"content"`
}

type blogStatusRequest struct {
	Status string `json:"estado"`
}

// ListBlogs returns the active posts.
func ListBlogs(svc service.BlogService) fiber.Handler {
	return listBlogs(svc, false)
}

// ListAllBlogs includes inactive posts for the back office.
func ListAllBlogs(svc service.BlogService) fiber.Handler {
	return listBlogs(svc, true)
}

func listBlogs(svc service.BlogService, includeAll bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext(), includeAll)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// GetBlog rejects non-numeric ids such as "undefined" with 400.
func GetBlog(svc service.BlogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func BlogCategories(svc service.BlogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Categories(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func BlogComments(svc service.BlogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		res, err := svc.Comments(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func AddBlogComment(svc service.BlogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := currentSession(c)
		if err != nil {
			return respondError(c, err)
		}
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req commentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := svc.AddComment(c.UserContext(), sess, id, req.Content)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// CreateBlog accepts JSON or multipart/form-data with the picture under
// "images" or "imagen".
func CreateBlog(svc service.BlogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := currentSession(c)
		if err != nil {
			return respondError(c, err)
		}
		in, files, done, err := blogRequest(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		defer done()
		res, err := svc.Create(c.UserContext(), sess.UserID, in, files)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

func UpdateBlog(svc service.BlogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		in, files, done, err := blogRequest(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		defer done()
		res, err := svc.Update(c.UserContext(), id, in, files)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func UpdateBlogStatus(svc service.BlogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req blogStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := svc.UpdateStatus(c.UserContext(), id, req.Status); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"id": id, "estado": req.Status})
	}
}

func DeleteBlog(svc service.BlogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func blogRequest(c *fiber.Ctx) (model.BlogInput, []storage.Upload, func(), error) {
	var in model.BlogInput
	if !isMultipart(c) {
		err := c.BodyParser(&in)
		return in, nil, func() {}, err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return in, nil, func() {}, err
	}
	in.Title, _ = formValue(form, "titulo")
	in.Subtitles, _ = formValue(form, "subtitulos")
	in.Content, _ = formValue(form, "contenido")
	in.Category, _ = formValue(form, "categoria")
	in.Status, _ = formValue(form, "estado")
	in.ImageURL, _ = formValue(form, "imagen_url")
	catID, err := formInt(form, "blog_category_id")
	if err != nil {
		return in, nil, func() {}, err
	}
	if catID != nil {
		in.CategoryID = *catID
	}
	files, done, err := formImages(form, "images", "imagen")
	return in, files, done, err
}
