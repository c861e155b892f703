package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/briantully/acquia-cli/internal/domain"
)

// Lister is the slice of the management API needed to resolve an
// application reference.
type Lister interface {
	ListApplications(ctx context.Context) ([]domain.Application, error)
}

// Resolve picks the application for a command-line reference. A valid
// UUID is matched against application UUIDs; anything else is matched
// against names. Matching always goes through the fetched set so the
// command fails early on a dangling reference.
func Resolve(ctx context.Context, api Lister, ref string) (domain.Application, error) {
	if ref == "" {
		return domain.Application{}, fmt.Errorf("application not specified")
	}
	apps, err := api.ListApplications(ctx)
	if err != nil {
		return domain.Application{}, fmt.Errorf("list applications: %w", err)
	}
	byUUID := false
	if _, err := uuid.Parse(ref); err == nil {
		byUUID = true
	}
	for _, a := range apps {
		if byUUID && a.UUID == ref {
			return a, nil
		}
		if !byUUID && a.Name == ref {
			return a, nil
		}
	}
	return domain.Application{}, fmt.Errorf("application %s not found", ref)
}
