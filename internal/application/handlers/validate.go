// Package handlers is the input boundary between transports (MCP tools, CLI)
// and the domain services. Handlers reject malformed input with a
// ValidationError before any domain logic runs, then delegate.
package handlers

import (
	"strings"

	"github.com/ersonp/tension-core/internal/domain/entities"
	derrors "github.com/ersonp/tension-core/internal/domain/errors"
)

// requireString fails when value is empty or whitespace.
func requireString(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return derrors.NewValidation(field, "is required and must be a non-empty string")
	}
	return nil
}

// optionalDate accepts "" or a parseable date.
func optionalDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := entities.ParseDate(value); err != nil {
		return derrors.NewValidation(field, err.Error())
	}
	return nil
}

// requireDate fails when value is empty or not a parseable date.
func requireDate(field, value string) error {
	if err := requireString(field, value); err != nil {
		return err
	}
	return optionalDate(field, value)
}

// requireList fails when list is empty or holds a blank entry.
func requireList(field string, list []string) error {
	if len(list) == 0 {
		return derrors.NewValidation(field, "must contain at least one entry")
	}
	return stringItems(field, list)
}

// stringItems fails when any entry of list is blank.
func stringItems(field string, list []string) error {
	for _, s := range list {
		if strings.TrimSpace(s) == "" {
			return derrors.NewValidation(field, "entries must be non-empty strings")
		}
	}
	return nil
}
