package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/baptisteba/PassChef/constants"
	"github.com/baptisteba/PassChef/models"
	"github.com/baptisteba/PassChef/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthenticationService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*models.User, error)
	EnsureInitialAdmin(ctx context.Context, name, email, password string) error
}

type authenticationService struct {
	db     *gorm.DB
	secret []byte
}

func NewAuthenticationService(db *gorm.DB, secret []byte) AuthenticationService {
	return &authenticationService{db: db, secret: secret}
}

var validRoles = map[string]bool{
	string(constants.RoleAdmin):       true,
	string(constants.RoleGroupOwner):  true,
	string(constants.RoleContributor): true,
	string(constants.RoleReader):      true,
}

// Register creates an account. Admin-gated at the route level.
func (s *authenticationService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = string(constants.RoleReader)
	}
	if !validRoles[role] {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// EnsureInitialAdmin seeds the first admin account on an empty install.
// Registration is admin-gated, so without this a fresh deployment has no
// way in. Does nothing when credentials are unset or an admin already
// exists.
func (s *authenticationService) EnsureInitialAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", string(constants.RoleAdmin)).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if name == "" {
		name = "Administrator"
	}
	_, err = s.Register(ctx, &models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     string(constants.RoleAdmin),
	})
	return err
}

func (s *authenticationService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateJWT(utils.JWTUser{
		UserID: user.ID.String(),
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}, s.secret)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token: token,
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

func (s *authenticationService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %w", ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}
