package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/sanaa/core/profile"
)

type profileApi struct {
	svc profile.Service
}

func registerProfileAPI(g *echo.Group, svc profile.Service) {
	api := profileApi{svc: svc}

	pg := g.Group("/profiles")
	pg.GET("", api.query)
	pg.DELETE("", api.destroyMultiple)
	pg.GET("/:id", api.retrieve)
}

// Handlers

func (api *profileApi) query(ctx echo.Context) error {
	filter := new(profile.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []profile.Profile{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	profiles, err := api.svc.Filter(ctx.Request().Context(), *filter, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying profiles")
	}
	if profiles == nil {
		profiles = []profile.Profile{}
	}
	return ctx.JSON(http.StatusOK, profiles)
}

func (api *profileApi) retrieve(ctx echo.Context) error {
	p, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == profile.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting profile")
	}
	return ctx.JSON(http.StatusOK, p)
}

type DeleteProfilesRequest struct {
	IDs []string `json:"ids"`
}

func (api *profileApi) destroyMultiple(ctx echo.Context) error {
	var data DeleteProfilesRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DeleteProfilesRequest")
	}

	if err := api.svc.Delete(ctx.Request().Context(), data.IDs...); err != nil {
		return errors.Wrap(err, "deleting profiles")
	}
	return ctx.NoContent(http.StatusNoContent)
}
