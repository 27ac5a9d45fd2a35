package controller

import (
	"ai-homematch-be/internal/dto"
	"ai-homematch-be/internal/pkg/serverutils"
	"ai-homematch-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInquiryController interface {
	RegisterRoutes(r fiber.Router)
	Import(ctx *fiber.Ctx) error
}

type inquiryController struct {
	inquiryService service.IInquiryService
}

func NewInquiryController(inquiryService service.IInquiryService) IInquiryController {
	return &inquiryController{
		inquiryService: inquiryService,
	}
}

func (c *inquiryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/inquiry/v1")
	h.Post("import", c.Import)
}

func (c *inquiryController) Import(ctx *fiber.Ctx) error {
	var req dto.ImportInquiriesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.inquiryService.Import(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success import inquiries", res))
}
