// Package identity answers the two permission questions the core
// needs: is this user staff, and which organization do they belong
// to. The default directory reads the local user table; deployments
// behind Casdoor can layer its answer for staff status on top.
package identity

import (
	"context"
	"fmt"

	"github.com/leadlab/inventory-service/internal/repositories"
)

type Directory interface {
	IsStaff(ctx context.Context, userID string) (bool, error)
	OrganizationOf(ctx context.Context, userID string) (uint, error)
}

// LocalDirectory resolves permissions from the service's own user
// records.
type LocalDirectory struct {
	users repositories.UserRepository
}

func NewLocalDirectory(users repositories.UserRepository) *LocalDirectory {
	return &LocalDirectory{users: users}
}

func (d *LocalDirectory) IsStaff(ctx context.Context, userID string) (bool, error) {
	user, err := d.users.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("lookup user %s: %w", userID, err)
	}
	return user.IsStaff, nil
}

func (d *LocalDirectory) OrganizationOf(ctx context.Context, userID string) (uint, error) {
	user, err := d.users.GetByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("lookup user %s: %w", userID, err)
	}
	return user.OrganizationID, nil
}
