package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"
	forma "github.com/reoring/forma"
	"github.com/reoring/forma/middleware"
)

// BindForm decodes the POSTed url-encoded form onto the fixed keyset of
// initial and stores the resulting Values in the request context. Parse
// failures return 400 and abort the chain.
func BindForm(initial forma.Values) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		values := middleware.DecodeForm(c.Request.PostForm, initial)
		c.Request = c.Request.WithContext(middleware.ContextWithValues(c.Request.Context(), values))
		c.Next()
	}
}

// GetValues fetches the decoded Values from gin.Context.
func GetValues(c *gin.Context) (forma.Values, bool) {
	return middleware.ValuesFromContext(c.Request.Context())
}

// Submit runs the submission pipeline over a fresh form seeded with the
// decoded values, answering 422 with the field errors when validation fails
// and 200 on success.
func Submit(c *gin.Context, resolver forma.Resolver, onSubmit forma.SubmitFunc, opts ...forma.SubmitOpt) {
	values, ok := GetValues(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no form values bound"})
		return
	}
	f := forma.New(values)
	if err := forma.Submit(c.Request.Context(), f, resolver, onSubmit, opts...); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if !f.Errors().Empty() {
		c.JSON(http.StatusUnprocessableEntity, middleware.ErrorPayload(f.Errors()))
		return
	}
	if f.Status() == forma.StatusError {
		c.JSON(http.StatusBadGateway, gin.H{"status": f.Status().String()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": f.Status().String()})
}
