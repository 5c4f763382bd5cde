package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kariqs/farmkart-api/models"
	"github.com/Kariqs/farmkart-api/utils"
)

type RegisterInput struct {
	Name     string      `validate:"required"`
	Email    string      `validate:"required,email"`
	Password string      `validate:"required,min=6"`
	Role     models.Role `validate:"required,oneof=buyer seller"`
	Phone    string
	Address  models.Address
}

type Accounts struct {
	users  UserStore
	tokens *utils.TokenIssuer
}

func NewAccounts(users UserStore, tokens *utils.TokenIssuer) *Accounts {
	return &Accounts{users: users, tokens: tokens}
}

func (a *Accounts) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	_, err := a.users.FindUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, invalid("email already in use")
	case !errors.Is(err, models.ErrNotFound):
		return nil, err
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Role:     in.Role,
		Phone:    strings.TrimSpace(in.Phone),
	}
	if in.Address.Complete() {
		user.Address = in.Address
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns the user with a fresh session token.
func (a *Accounts) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := a.users.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, models.ErrNotFound) {
		return nil, "", models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if err := utils.ComparePasswords(user.Password, password); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := a.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (a *Accounts) Profile(ctx context.Context, id uint) (*models.User, error) {
	return a.users.FindUser(ctx, id)
}
