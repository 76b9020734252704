package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/filter"
	"github.com/Skotchmaster/travel_compensation/internal/hash"
	"github.com/Skotchmaster/travel_compensation/internal/models"
	"github.com/Skotchmaster/travel_compensation/internal/repo"
	"github.com/Skotchmaster/travel_compensation/internal/tokens"
)

type UserService struct {
	Users  *repo.UserRepo
	Hasher hash.Hasher
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.Users.Get(ctx, id)
}

func (s *UserService) List(ctx context.Context, q filter.Query) (int64, []models.User, error) {
	return s.Users.List(ctx, q)
}

// Update lets a user change their own profile. Admins may change anyone,
// and only admins may change the admin flag.
func (s *UserService) Update(ctx context.Context, caller tokens.Identity, id uint, req UpdateUserRequest) (*models.User, error) {
	if !caller.IsAdmin && (caller.SubjectID != id || req.Admin != nil) {
		return nil, apperr.ErrInsufficientPrivilege
	}
	if err := Validate(req); err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if req.Name != nil {
		changes["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		if err := emailFree(ctx, s.Users, *req.Email, id); err != nil {
			return nil, err
		}
		changes["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Password != nil {
		hashed, err := s.Hasher.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		changes["password"] = hashed
	}
	if req.PhoneNumber != nil {
		changes["phone_number"] = *req.PhoneNumber
	}
	if req.SocialSecurity != nil {
		changes["social_security"] = *req.SocialSecurity
	}
	if req.Admin != nil {
		changes["admin"] = *req.Admin
	}
	return s.Users.Update(ctx, id, changes)
}
