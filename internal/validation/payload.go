// Package validation rejects malformed payloads before any rule evaluation
// or persistence happens.
package validation

import (
	"fmt"

	"fraudwatch/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidatePayload checks type correctness of an ingest payload: required
// fields, a non-negative amount and a known transaction type. Currency codes
// are passed through unvalidated.
func ValidatePayload(p *models.NewTransactionPayload) error {
	if err := validate.Struct(p); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("invalid field %s: failed %s validation", e.Field(), e.Tag())
		}
		return err
	}
	if !models.ValidTransactionType(p.Type) {
		return fmt.Errorf("invalid field Type: unknown transaction type %q", p.Type)
	}
	return nil
}
