package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		data     any
		expected any
	}{
		{name: "string success", code: http.StatusOK, data: "done", expected: gin.H{"message": "done"}},
		{name: "string error", code: http.StatusBadRequest, data: "bad input", expected: gin.H{ErrorsKey: []string{"bad input"}}},
		{name: "map success unchanged", code: http.StatusOK, data: gin.H{"message": "hi", "id": 1}, expected: gin.H{"message": "hi", "id": 1}},
		{name: "map error message moved", code: http.StatusNotFound, data: gin.H{"message": "not found"}, expected: gin.H{ErrorsKey: []string{"not found"}}},
		{name: "plain map error", code: http.StatusConflict, data: map[string]any{"message": "taken"}, expected: gin.H{ErrorsKey: []string{"taken"}}},
		{name: "map error without message", code: http.StatusTeapot, data: gin.H{"detail": "x"}, expected: gin.H{"detail": "x"}},
		{name: "non-string message", code: http.StatusBadRequest, data: gin.H{"message": 42}, expected: gin.H{ErrorsKey: []any{42}}},
		{name: "other types unchanged", code: http.StatusBadRequest, data: []int{1}, expected: []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.code, tt.data)
			if !reflect.DeepEqual(toJSON(t, got), toJSON(t, tt.expected)) {
				t.Errorf("Format(%d, %v) = %v, expected %v", tt.code, tt.data, got, tt.expected)
			}
		})
	}
}

func toJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestFormatErrorsEmpty(t *testing.T) {
	if got := toJSON(t, FormatErrors()); got != `{"_errors":[]}` {
		t.Errorf("Expected empty error list, got %s", got)
	}
}

func TestErrorsWritesBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	AbortErrors(c, http.StatusUnauthorized, "first", "second")

	if w.Code != http.StatusUnauthorized || !c.IsAborted() {
		t.Fatalf("Expected aborted 401, got %d aborted=%v", w.Code, c.IsAborted())
	}
	if w.Body.String() != `{"_errors":["first","second"]}` {
		t.Errorf("Unexpected body: %s", w.Body.String())
	}
}

type signupRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"min=8"`
}

func TestFieldErrors(t *testing.T) {
	err := validator.New().Struct(signupRequest{Email: "nope", Password: "short"})

	got := FieldErrors(err)
	if !reflect.DeepEqual(got["Email"], []string{"email"}) {
		t.Errorf("Expected Email [email], got %v", got["Email"])
	}
	if !reflect.DeepEqual(got["Password"], []string{"min=8"}) {
		t.Errorf("Expected Password [min=8], got %v", got["Password"])
	}

	plain := FieldErrors(errors.New("boom"))
	if toJSON(t, plain) != `{"_errors":["boom"]}` {
		t.Errorf("Expected plain error under _errors, got %v", plain)
	}
}

func TestValidationErrorsStatus(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ValidationErrors(c, validator.New().Struct(signupRequest{}))

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", w.Code)
	}
}
