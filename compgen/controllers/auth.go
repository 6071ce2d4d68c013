// compgen/controllers/auth.go
package controllers

import (
	"compgen/compgen/config"
	"compgen/compgen/sources/psql/dao"
	"compgen/compgen/types"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 7 * 24 * time.Hour

type AuthController struct {
	userDAO *dao.UserDAO
	cfg     config.Config
}

func NewAuthController(userDAO *dao.UserDAO, cfg config.Config) *AuthController {
	return &AuthController{
		userDAO: userDAO,
		cfg:     cfg,
	}
}

// Register creates an account and returns it with a signed token. A taken
// username or email is a conflict.
func (c *AuthController) Register(ctx context.Context, username, email, password string) (*types.AuthResponse, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", types.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user, err := c.userDAO.CreateUser(ctx, username, email, string(hash))
	if err != nil {
		return nil, err
	}
	token, err := c.signToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{User: *user, Token: token}, nil
}

// Login accepts an email or username plus password.
func (c *AuthController) Login(ctx context.Context, identifier, password string) (*types.AuthResponse, error) {
	if identifier == "" || password == "" {
		return nil, fmt.Errorf("%w: emailOrUsername and password are required", types.ErrValidation)
	}
	user, err := c.userDAO.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, types.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, types.ErrInvalidCredentials
	}
	token, err := c.signToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{User: *user, Token: token}, nil
}

func (c *AuthController) signToken(userID int) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.cfg.JWTSecret))
}
