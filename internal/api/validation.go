package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/profilsaya/backend/internal/service"
)

// bindJSON decodes the request body into req and turns decoding and
// validation failures into a *service.ValidationError.
func bindJSON(c *gin.Context, req any) error {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &service.ValidationError{Field: verrs[0].Field(), Message: describe(verrs[0])}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &service.ValidationError{Field: typeErr.Field, Message: fmt.Sprintf("%s has the wrong type", label(typeErr.Field))}
	}
	return &service.ValidationError{Message: "Invalid request body"}
}

// describe renders one failed validation rule as a sentence.
func describe(fe validator.FieldError) string {
	name := label(fe.Field())
	if strings.Contains(fe.Namespace(), "Links[") {
		name = "Link " + strings.ToLower(name)
	}
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "http_url", "url":
		return name + " must be an http or https URL"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

// label turns a Go field name (AvatarURL) into words (Avatar URL).
func label(field string) string {
	if i := strings.LastIndex(field, "."); i >= 0 {
		field = field[i+1:]
	}
	var b strings.Builder
	runes := []rune(field)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
