// Package respond formats JSON responses for REST handlers.
//
// Errors are always returned as {"_errors": [...]} and plain string
// successes as {"message": "..."}, so clients have one shape to look for.
package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorsKey is the response field carrying error messages
const ErrorsKey = "_errors"

// FormatErrors builds the error body for the given messages
func FormatErrors(errs ...string) gin.H {
	if errs == nil {
		errs = []string{}
	}
	return gin.H{ErrorsKey: errs}
}

// Format normalizes a handler result into the response body:
//   - a string with code 200 becomes {"message": s}
//   - a string with any other code becomes {"_errors": [s]}
//   - a gin.H or map with a "message" key and a non-200 code has the message
//     moved into "_errors"
//
// Anything else is returned unchanged.
func Format(code int, data any) any {
	switch v := data.(type) {
	case string:
		if code != http.StatusOK {
			return FormatErrors(v)
		}
		return gin.H{"message": v}
	case gin.H:
		return formatMap(code, v)
	case map[string]any:
		return formatMap(code, v)
	}
	return data
}

func formatMap(code int, m map[string]any) any {
	if code == http.StatusOK {
		return m
	}
	msg, ok := m["message"]
	if !ok {
		return m
	}
	if s, ok := msg.(string); ok {
		return FormatErrors(s)
	}
	return gin.H{ErrorsKey: []any{msg}}
}

// JSON writes data using Format
func JSON(c *gin.Context, code int, data any) {
	c.JSON(code, Format(code, data))
}

// Errors writes an error body with the given messages
func Errors(c *gin.Context, code int, errs ...string) {
	c.JSON(code, FormatErrors(errs...))
}

// AbortErrors aborts the handler chain with an error body
func AbortErrors(c *gin.Context, code int, errs ...string) {
	c.AbortWithStatusJSON(code, FormatErrors(errs...))
}

// ValidationErrors writes 422 with one message list per invalid field.
// Errors that are not from the validator are reported under "_errors".
func ValidationErrors(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, FieldErrors(err))
}

// FieldErrors maps validator errors to {"field": ["rule"]}
func FieldErrors(err error) gin.H {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FormatErrors(err.Error())
	}

	out := gin.H{}
	for _, fe := range verrs {
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		existing, _ := out[fe.Field()].([]string)
		out[fe.Field()] = append(existing, msg)
	}
	return out
}
