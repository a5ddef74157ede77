package services

import (
	"fmt"

	"github.com/jedzonko/recipes-api/internal/core/domain"
)

// AuthorizeOwner checks that the acting principal owns a resource. It is
// a pure comparison with no side effects; every mutating operation calls
// it strictly before applying any write.
func AuthorizeOwner(actingUsername, resourceAuthorUsername string) error {
	if actingUsername != resourceAuthorUsername {
		return fmt.Errorf("%w: user %q does not own this resource", domain.ErrForbidden, actingUsername)
	}
	return nil
}
