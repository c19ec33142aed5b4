package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/enzococca/pyarchinit-webapp/src/dtos"
	"github.com/enzococca/pyarchinit-webapp/src/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db       *gorm.DB
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewUserService creates a new instance of UserService. Tokens are signed
// with secret and expire after tokenTTL.
func NewUserService(db *gorm.DB, secret string, tokenTTL time.Duration) *UserService {
	return &UserService{db: db, secret: []byte(secret), tokenTTL: tokenTTL, now: time.Now}
}

// GetAllUsers retrieves all User records from the database
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.UserModel, error) {
	users := []models.UserModel{}
	if err := s.db.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserByID retrieves a User record by ID
func (s *UserService) GetUserByID(ctx context.Context, id int) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// CreateUser hashes the password and stores a new active user
func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.UserModel, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.UserModel{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%q: %w", req.Username, ErrUsernameTaken)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	user := &models.UserModel{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// SetPassword replaces a user's password and role, reactivating the account.
func (s *UserService) SetPassword(ctx context.Context, username, password, role string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err, "user")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{"password_hash": string(hashedPassword), "is_active": true}
	if role != "" {
		updates["role"] = role
	}
	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser deletes a User record by ID
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	result := s.db.WithContext(ctx).Delete(&models.UserModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %w", ErrNotFound)
	}
	return nil
}

// AuthenticateUser checks user credentials and returns a bearer token if valid
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (*dtos.TokenDTO, error) {
	var user models.UserModel
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &dtos.TokenDTO{AccessToken: token, TokenType: "bearer"}, nil
}

// IssueToken signs an HS256 token carrying the user's id, name and role.
func (s *UserService) IssueToken(user models.UserModel) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"id":   user.Id,
		"sub":  user.Username,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
