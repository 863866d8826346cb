package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"
	forma "github.com/reoring/forma"
	"github.com/reoring/forma/middleware"
)

// BindForm decodes the POSTed url-encoded form onto the fixed keyset of
// initial and stores the resulting Values in the request context. Parse
// failures return 400.
func BindForm(initial forma.Values) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := c.Request().ParseForm(); err != nil {
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			values := middleware.DecodeForm(c.Request().PostForm, initial)
			ctx := middleware.ContextWithValues(c.Request().Context(), values)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetValues fetches the decoded Values from echo.Context.
func GetValues(c echo.Context) (forma.Values, bool) {
	return middleware.ValuesFromContext(c.Request().Context())
}

// Submit runs the submission pipeline over a fresh form seeded with the
// decoded values, answering 422 with the field errors when validation
// fails and 200 on success.
func Submit(c echo.Context, resolver forma.Resolver, onSubmit forma.SubmitFunc, opts ...forma.SubmitOpt) error {
	values, ok := GetValues(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "no form values bound"})
	}
	f := forma.New(values)
	if err := forma.Submit(c.Request().Context(), f, resolver, onSubmit, opts...); err != nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": err.Error()})
	}
	if !f.Errors().Empty() {
		return c.JSON(http.StatusUnprocessableEntity, middleware.ErrorPayload(f.Errors()))
	}
	if f.Status() == forma.StatusError {
		return c.JSON(http.StatusBadGateway, map[string]any{"status": f.Status().String()})
	}
	return c.JSON(http.StatusOK, map[string]any{"status": f.Status().String()})
}
