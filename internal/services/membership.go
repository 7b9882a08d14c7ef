package services

import (
	"context"
	"errors"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
)

var (
	ErrNotMember = errors.New("not a member of this production")
	ErrForbidden = errors.New("insufficient role for this action")
)

// requireMember returns the caller's role on the production, or ErrNotMember
func requireMember(ctx context.Context, repo *repositories.ProductionRepository, productionID, userID int) (string, error) {
	role, err := repo.GetMemberRole(ctx, productionID, userID)
	if err != nil {
		return "", err
	}
	if role == "" {
		return "", ErrNotMember
	}
	return role, nil
}

// requireManager allows owners and managers
func requireManager(ctx context.Context, repo *repositories.ProductionRepository, productionID, userID int) error {
	role, err := requireMember(ctx, repo, productionID, userID)
	if err != nil {
		return err
	}
	if role != models.MemberRoleOwner && role != models.MemberRoleManager {
		return ErrForbidden
	}
	return nil
}

// requireScripty allows owners, managers and the script supervisor
func requireScripty(ctx context.Context, repo *repositories.ProductionRepository, productionID, userID int) error {
	role, err := requireMember(ctx, repo, productionID, userID)
	if err != nil {
		return err
	}
	switch role {
	case models.MemberRoleOwner, models.MemberRoleManager, models.MemberRoleScripty:
		return nil
	}
	return ErrForbidden
}
