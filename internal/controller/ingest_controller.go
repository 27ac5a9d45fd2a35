package controller

import (
	"ai-homematch-be/internal/dto"
	"ai-homematch-be/internal/pkg/apperror"
	"ai-homematch-be/internal/pkg/serverutils"
	"ai-homematch-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IIngestController interface {
	RegisterRoutes(r fiber.Router)
	IngestDocument(ctx *fiber.Ctx) error
}

type ingestController struct {
	ingestService service.IIngestService
}

func NewIngestController(ingestService service.IIngestService) IIngestController {
	return &ingestController{
		ingestService: ingestService,
	}
}

func (c *ingestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/project/v1/:id/documents")
	h.Post("", c.IngestDocument)
}

func (c *ingestController) IngestDocument(ctx *fiber.Ctx) error {
	projectId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.ErrProjectNotFound
	}

	var req dto.IngestDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.ProjectId = projectId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestService.IngestDocument(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ingest document", res))
}
