package router

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pressroom-io/pressroom/internal/apperr"
	"github.com/pressroom-io/pressroom/internal/domain"
	"github.com/pressroom-io/pressroom/internal/prefs"
)

type PreferencesRouter struct {
	e        *echo.Echo
	resolver *prefs.Resolver
}

func NewPreferencesRouter(e *echo.Echo, resolver *prefs.Resolver) *PreferencesRouter {
	return &PreferencesRouter{
		e:        e,
		resolver: resolver,
	}
}

func (r *PreferencesRouter) Bind() {
	r.e.GET("/preferences/:chatId", r.getHandler)
	r.e.PUT("/preferences/:chatId", r.putHandler)
}

// getHandler returns the effective preferences after chain resolution, not
// the raw row, so callers see what the pipeline will actually use.
func (r *PreferencesRouter) getHandler(c echo.Context) error {
	chatID, err := strconv.ParseInt(c.Param("chatId"), 10, 64)
	if err != nil {
		return apperr.NewValidationWrap("invalid chat id", err)
	}

	resolved := r.resolver.Resolve(c.Request().Context(), chatID)
	resolved.ChatID = chatID
	return c.JSON(http.StatusOK, resolved)
}

func (r *PreferencesRouter) putHandler(c echo.Context) error {
	chatID, err := strconv.ParseInt(c.Param("chatId"), 10, 64)
	if err != nil {
		return apperr.NewValidationWrap("invalid chat id", err)
	}

	var body domain.Preferences
	if err := c.Bind(&body); err != nil {
		return apperr.NewValidationWrap("malformed request body", err)
	}
	body.ChatID = chatID

	if err := r.resolver.Save(c.Request().Context(), body); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, body.Normalize())
}
