package identity

import (
	"context"
	"fmt"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/leadlab/inventory-service/internal/repositories"
)

// CasdoorConfig carries the connection settings for a Casdoor
// deployment.
type CasdoorConfig struct {
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

// CasdoorDirectory takes staff status from Casdoor's admin flag while
// organization membership stays with the local user record, which is
// the system of record for session/organization registration.
type CasdoorDirectory struct {
	client *casdoorsdk.Client
	local  *LocalDirectory
}

func NewCasdoorDirectory(cfg CasdoorConfig, users repositories.UserRepository) *CasdoorDirectory {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Certificate,
		cfg.OrganizationName,
		cfg.ApplicationName,
	)

	return &CasdoorDirectory{
		client: client,
		local:  NewLocalDirectory(users),
	}
}

func (d *CasdoorDirectory) IsStaff(ctx context.Context, userID string) (bool, error) {
	user, err := d.client.GetUser(userID)
	if err != nil {
		return false, fmt.Errorf("casdoor lookup user %s: %w", userID, err)
	}
	if user == nil {
		return false, fmt.Errorf("casdoor lookup user %s: not found", userID)
	}
	return user.IsAdmin, nil
}

func (d *CasdoorDirectory) OrganizationOf(ctx context.Context, userID string) (uint, error) {
	return d.local.OrganizationOf(ctx, userID)
}
