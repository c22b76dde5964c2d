package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joshua-takyi/villastay/internal/models"
)

// Service-level errors. Handlers map them onto HTTP status codes.
var (
	ErrInvalidInput     = errors.New("invalid_input")
	ErrStoreUnavailable = errors.New("store_unavailable")
	ErrNotFound         = errors.New("not_found")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrDataIntegrity    = errors.New("data_integrity")
)

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// validateStruct runs the shared validator and flattens its report.
func validateStruct(v interface{}) error {
	err := models.Validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe)] = fieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

func fieldName(fe validator.FieldError) string {
	return lowerFirst(fe.Field())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid id"
	case "datetime":
		return "must match the format " + fe.Param()
	}
	return "failed on '" + fe.Tag() + "'"
}

// storeErr classifies a repository failure.
func storeErr(err error, action string) error {
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, action)
	}
	if errors.Is(err, models.ErrDuplicate) {
		return fmt.Errorf("%w: %s", ErrConflict, action)
	}
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, action, err)
}

// Actor is the authenticated caller as seen by the service layer.
type Actor struct {
	ID    uuid.UUID
	Role  string
	Name  string
	Email string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanManage reports whether the actor may change the given villa.
func (a Actor) CanManage(v *models.Villa) bool {
	return a.IsAdmin() || (v != nil && v.OwnerID == a.ID)
}
