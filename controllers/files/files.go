package filesController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"vendorhub/config"
	"vendorhub/middleware"
	"vendorhub/utils"
)

// Controller bundles the dependencies of the files endpoints.
type Controller struct {
	Cfg *config.Config
}

func New(cfg *config.Config) *Controller {
	return &Controller{Cfg: cfg}
}

// Upload stores a single image under a random filename and returns its
// retrieval path. Only the extension is validated; there is no size
// limit and no content inspection.
func (ctl *Controller) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeBadRequest, "File is required!")
	}

	if !utils.IsAllowedExtension(file.Filename) {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeUnsupportedFileType, "Unsupported file type!")
	}

	name, err := utils.SaveUploadedFile(file, ctl.Cfg.UploadDir)
	if err != nil {
		log.Printf("Error saving uploaded file: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeStorageError, "Failed to save file!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "File uploaded.", fiber.Map{
		"url": "/files/static/" + name,
	})
}
