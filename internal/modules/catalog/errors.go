package catalog

import "errors"

var (
	ErrNotFound   = errors.New("property not found")
	ErrForbidden  = errors.New("not the property host")
	ErrValidation = errors.New("validation error")
)
