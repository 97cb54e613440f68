package services

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/google/uuid"
)

// now is a seam for tests.
var now = func() time.Time { return time.Now().UTC() }

// newID assigns server-side identifiers; client ids are never trusted.
var newID = uuid.NewString

// validate runs the model's struct tags and wraps failures in
// common.ErrorValidation.
func validate(v any) error {
	if err := models.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}
