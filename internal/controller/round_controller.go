package controller

import (
	"ai-homematch-be/internal/dto"
	"ai-homematch-be/internal/pkg/apperror"
	"ai-homematch-be/internal/pkg/serverutils"
	"ai-homematch-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRoundController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Current(ctx *fiber.Ctx) error
	SubmitRatings(ctx *fiber.Ctx) error
}

type roundController struct {
	roundService service.IRoundService
}

func NewRoundController(roundService service.IRoundService) IRoundController {
	return &roundController{
		roundService: roundService,
	}
}

func (c *roundController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/project/v1/:id/round")
	h.Post("start", c.Start)
	h.Get("", c.Current)
	h.Post("ratings", c.SubmitRatings)
}

func (c *roundController) Start(ctx *fiber.Ctx) error {
	projectId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.ErrProjectNotFound
	}

	res, err := c.roundService.StartInitialRound(ctx.Context(), projectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start initial round", res))
}

func (c *roundController) Current(ctx *fiber.Ctx) error {
	projectId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.ErrProjectNotFound
	}

	res, err := c.roundService.GetCurrentRound(ctx.Context(), projectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show current round", res))
}

func (c *roundController) SubmitRatings(ctx *fiber.Ctx) error {
	projectId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.ErrProjectNotFound
	}

	var req dto.SubmitRatingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.ProjectId = projectId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.roundService.SubmitRatings(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit ratings", res))
}
