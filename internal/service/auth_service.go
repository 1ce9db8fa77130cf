package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/prajapatkavitha/restaurant-management-project/internal/apierror"
	"github.com/prajapatkavitha/restaurant-management-project/internal/config"
	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
	"github.com/prajapatkavitha/restaurant-management-project/internal/repository"
	"github.com/prajapatkavitha/restaurant-management-project/internal/role"
)

// Claims is the JWT payload for both access and refresh tokens.
type Claims struct {
	UserID   string `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	Kind     string `json:"kind"` // "access" or "refresh"
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	ParseToken(token string) (*Claims, error)

	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) error
	ReactivateUser(ctx context.Context, id uuid.UUID) error
	UpdateProfile(ctx context.Context, actorID uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type authService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

// Register creates a self-service customer account. Staff accounts can only
// be created through CreateUser by an admin.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	email := req.Email
	user := model.User{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        &email,
		PasswordHash: string(hash),
		Role:         role.Customer,
		Active:       true,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("username or email already taken")
		}
		return nil, apierror.Internal(err)
	}
	return userToResponse(&user), nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, apierror.Permission("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apierror.Permission("invalid credentials")
	}
	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := s.ParseToken(refreshToken)
	if err != nil || claims.Kind != "refresh" {
		return nil, apierror.Permission("invalid refresh token")
	}
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apierror.Permission("invalid refresh token")
	}
	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Active {
		return nil, apierror.Permission("account unavailable")
	}
	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *model.User) (*dto.LoginResponse, error) {
	now := time.Now()
	accessTTL := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	refreshTTL := time.Duration(s.cfg.JWTRefreshHours) * time.Hour

	access, err := s.signToken(user, "access", now, accessTTL)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	refresh, err := s.signToken(user, "refresh", now, refreshTTL)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(accessTTL.Seconds()),
		User:         *userToResponse(user),
	}, nil
}

func (s *authService) signToken(user *model.User, kind string, now time.Time, ttl time.Duration) (string, error) {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	claims := Claims{
		UserID:   user.ID.String(),
		Username: user.Username,
		Email:    email,
		Role:     string(user.Role),
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.Permission("invalid token")
	}
	return claims, nil
}

func (s *authService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	r, ok := role.Parse(req.Role)
	if !ok {
		return nil, apierror.Validation("unknown role")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	user := model.User{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         r,
		Active:       true,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("username or email already taken")
		}
		return nil, apierror.Internal(err)
	}
	return userToResponse(&user), nil
}

func (s *authService) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("user not found")
	}
	return userToResponse(user), nil
}

func (s *authService) ListUsers(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error) {
	var (
		users []model.User
		err   error
	)
	if includeInactive {
		users, err = s.repo.ListAll(ctx)
	} else {
		users, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *userToResponse(&users[i]))
	}
	return out, nil
}

func (s *authService) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("user not found")
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Role != "" {
		r, ok := role.Parse(req.Role)
		if !ok {
			return nil, apierror.Validation("unknown role")
		}
		user.Role = r
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apierror.Internal(err)
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("email already taken")
		}
		return nil, apierror.Internal(err)
	}
	return userToResponse(user), nil
}

func (s *authService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("user not found")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *authService) ReactivateUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("user not found")
	}
	return s.repo.Reactivate(ctx, id)
}

// UpdateProfile is the self-service edit: username and role can never change
// through this path.
func (s *authService) UpdateProfile(ctx context.Context, actorID uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	return s.UpdateUser(ctx, actorID, dto.UpdateUserRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
}

func userToResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     string(u.Role),
		Active:   u.Active,
	}
}
