// Package users implements accounts: registration, login, and profiles.
// The messaging core consumes it only for identity checks and for the
// batched display lookup that decorates conversation summaries.
package users

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/dayyan-shaikh/DevConnect-Project/internal/apperr"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/auth"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/models"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/repository"
)

var validate = validator.New()

type Service struct {
	repo repository.UserRepository
	jwt  *auth.Manager
}

func NewService(repo repository.UserRepository, jwt *auth.Manager) *Service {
	return &Service{repo: repo, jwt: jwt}
}

func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperr.Validation(validationFields(err)...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Insert(ctx, &models.User{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.Issue(u.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: u}, nil
}

func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperr.Validation(validationFields(err)...)
	}

	u, err := s.repo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.ErrUnauthorized
	}

	token, err := s.jwt.Issue(u.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: u}, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && *req.Name != "" {
		u.Name = *req.Name
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Skills != nil {
		u.Skills = *req.Skills
	}
	if req.AvatarURL != nil {
		u.AvatarURL = *req.AvatarURL
	}
	return s.repo.Update(ctx, u)
}

// ResolveDisplay is the batched userId -> {name, avatar} lookup used by
// conversation enrichment. Unknown IDs are absent from the result.
func (s *Service) ResolveDisplay(ctx context.Context, ids []string) (map[string]models.UserDisplay, error) {
	found, err := s.repo.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.UserDisplay, len(found))
	for _, u := range found {
		out[u.ID.Hex()] = models.UserDisplay{Name: u.Name, AvatarURL: u.AvatarURL}
	}
	return out, nil
}

func validationFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return fields
}
