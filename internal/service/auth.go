package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/hash"
	"github.com/Skotchmaster/travel_compensation/internal/models"
	"github.com/Skotchmaster/travel_compensation/internal/mykafka"
	"github.com/Skotchmaster/travel_compensation/internal/repo"
	"github.com/Skotchmaster/travel_compensation/internal/tokens"
)

type AuthService struct {
	Users        *repo.UserRepo
	Codec        *tokens.Codec
	Hasher       hash.Hasher
	TokenTTLDays int
	Events       Events
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if err := emailFree(ctx, s.Users, req.Email, 0); err != nil {
		return nil, err
	}

	hashed, err := s.Hasher.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Password:       hashed,
		PhoneNumber:    req.PhoneNumber,
		SocialSecurity: req.SocialSecurity,
		AgreedTerms:    req.AgreedTerms,
		RegisteredOn:   time.Now().UTC(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.Events.publish(ctx, mykafka.TopicUserEvents, strconv.FormatUint(uint64(u.ID), 10), mykafka.UserEvent{
		Type:   mykafka.EventUserRegistered,
		UserID: u.ID,
		Email:  u.Email,
		At:     u.RegisteredOn,
	})
	return u, nil
}

// Login returns the user and a fresh token. Unknown email and wrong
// password are the same ErrInvalidLogin.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*models.User, string, error) {
	if err := Validate(req); err != nil {
		return nil, "", err
	}

	u, err := s.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, "", apperr.ErrInvalidLogin
		}
		return nil, "", err
	}

	ok, err := s.Hasher.CheckPassword(u.Password, req.Password)
	if err != nil || !ok {
		return nil, "", apperr.ErrInvalidLogin
	}

	token, err := s.Codec.Issue(u.ID, u.Admin, s.TokenTTLDays)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Logout revokes the presented token. Revoking twice is not an error.
func (s *AuthService) Logout(ctx context.Context, id tokens.Identity, rawToken string) error {
	if err := s.Codec.Revoke(ctx, rawToken); err != nil {
		return err
	}
	s.Events.publish(ctx, mykafka.TopicUserEvents, strconv.FormatUint(uint64(id.SubjectID), 10), mykafka.UserEvent{
		Type:   mykafka.EventUserLoggedOut,
		UserID: id.SubjectID,
		At:     time.Now().UTC(),
	})
	return nil
}

func (s *AuthService) Status(ctx context.Context, id tokens.Identity) (*models.User, error) {
	return s.Users.Get(ctx, id.SubjectID)
}

// emailFree fails with a conflict when a user other than self owns email,
// ignoring case.
func emailFree(ctx context.Context, users *repo.UserRepo, email string, self uint) error {
	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != self:
		return apperr.ConflictError{Resource: "user", Msg: "User already exists"}
	case err == nil, apperr.IsNotFound(err):
		return nil
	default:
		return err
	}
}
