package controller

import (
	"errors"
	"strconv"

	"property-search-be/internal/pkg/serverutils"
	"property-search-be/internal/service"
	"property-search-be/pkg/geo"

	"github.com/gofiber/fiber/v2"
)

type IProximityController interface {
	RegisterRoutes(r fiber.Router)
	Proximity(ctx *fiber.Ctx) error
	Stations(ctx *fiber.Ctx) error
}

type proximityController struct {
	service service.IProximityService
}

func NewProximityController(service service.IProximityService) IProximityController {
	return &proximityController{service: service}
}

func (c *proximityController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/transit")
	h.Get("/proximity", c.Proximity)
	h.Get("/stations", c.Stations)
}

func (c *proximityController) Proximity(ctx *fiber.Ctx) error {
	lat, errLat := strconv.ParseFloat(ctx.Query("lat", ""), 64)
	lng, errLng := strconv.ParseFloat(ctx.Query("lng", ""), 64)
	if errLat != nil || errLng != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "lat and lng query parameters are required"))
	}

	radius := 0.0
	if raw := ctx.Query("radius", ""); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "radius must be a number of meters"))
		}
		radius = parsed
	}

	res, err := c.service.Proximity(ctx.Context(), lat, lng, radius, ctx.Query("type", ""))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownTransitType):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		case errors.Is(err, geo.ErrInvalidCoordinate):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		case errors.Is(err, geo.ErrOutOfServiceArea):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
		}
	}
	return ctx.JSON(res)
}

func (c *proximityController) Stations(ctx *fiber.Ctx) error {
	res, err := c.service.Stations(ctx.Context(), ctx.Query("type", ""), ctx.Query("line", ""))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(res)
}
