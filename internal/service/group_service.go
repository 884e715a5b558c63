// Package service implements the application logic between the HTTP layer
// and storage: validation, split resolution, the settlement lifecycle, and
// the group balance queries.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// GroupService manages groups and their members.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// Create validates and persists a new group.
func (s *GroupService) Create(ctx context.Context, name string, members []models.Member) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name required", models.ErrInvalidInput)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: group needs at least one member", models.ErrInvalidInput)
	}

	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if m.UserID == "" {
			return nil, fmt.Errorf("%w: member user id required", models.ErrInvalidInput)
		}
		if seen[m.UserID] {
			return nil, fmt.Errorf("%w: duplicate member %s", models.ErrInvalidInput, m.UserID)
		}
		seen[m.UserID] = true
	}

	group := &models.Group{Name: name, Members: members}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "members_count", len(members))
	return group, nil
}

// Get retrieves a group by ID.
func (s *GroupService) Get(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// List retrieves all groups.
func (s *GroupService) List(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListGroups(ctx)
}
