// Package ownership implements the authorization predicate applied before
// every project and task operation. Authorization is always derived from the
// project's owner column: tasks carry no owner of their own, so a task
// operation first resolves the parent project and then consults the guard.
//
// A denied check and a missing resource are indistinguishable to the caller;
// both yield a not-found error, so users cannot probe for resources they do
// not own.
package ownership

import (
	"context"

	"github.com/user/projectman-go/apperror"
)

// OwnerResolver looks up the owner of a project. Implementations return an
// apperror NotFoundError when the project does not exist.
type OwnerResolver interface {
	ProjectOwner(ctx context.Context, projectID int) (int, error)
}

// Guard is the ownership check consulted by the resource services.
type Guard struct {
	resolver OwnerResolver
}

// NewGuard creates a Guard over the given resolver.
func NewGuard(resolver OwnerResolver) *Guard {
	return &Guard{resolver: resolver}
}

// RequireProject verifies that the project exists and belongs to the caller.
// Absent and foreign projects produce the same not-found error.
func (g *Guard) RequireProject(ctx context.Context, callerID, projectID int) error {
	ownerID, err := g.resolver.ProjectOwner(ctx, projectID)
	if err != nil {
		return err
	}
	if ownerID != callerID {
		return apperror.NewNotFoundError("project not found", nil)
	}
	return nil
}
