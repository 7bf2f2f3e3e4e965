package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/config"
	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/Heytechmate/overtime-cafe/internal/repository"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type AuthService struct {
	Config       config.Config
	Users        repository.UserRepository
	Counters     repository.CounterRepository
	Logger       *slog.Logger
	FirebaseAuth *fbauth.Client
}

type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         domain.User
	ExpiresAt    time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type LoginInput struct {
	Email    string
	Password string
}

type GoogleLoginInput struct {
	IDToken string
	Email   string
	Name    string
}

type RefreshInput struct {
	RefreshToken string
}

type CompleteProfileInput struct {
	FirstName string
	LastName  string
	Phone     string
	BirthDate string
}

func (s AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.createMember(ctx, in.Name, in.Email, in.Phone, ptr(string(hash)), false)
	if err != nil {
		if repository.IsDuplicate(err) {
			return nil, fmt.Errorf("email already used")
		}
		return nil, err
	}
	return s.issueTokens(user)
}

func (s AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	user, err := s.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(user)
}

func (s AuthService) LoginWithGoogle(ctx context.Context, in GoogleLoginInput) (*AuthResult, error) {
	// Prefer Firebase Auth verification when configured; fall back to plain
	// Google ID token validation when only a client ID is set.
	switch {
	case s.FirebaseAuth != nil:
		if _, err := s.FirebaseAuth.VerifyIDToken(ctx, in.IDToken); err != nil {
			return nil, fmt.Errorf("firebase token invalid: %w", err)
		}
	case s.Config.GoogleClientID != "":
		if _, err := idtoken.Validate(ctx, in.IDToken, s.Config.GoogleClientID); err != nil {
			return nil, fmt.Errorf("google token invalid: %w", err)
		}
	}

	user, err := s.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			user, err = s.createMember(ctx, in.Name, in.Email, "", nil, true)
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	return s.issueTokens(user)
}

// createMember runs the first-sign-in path: it assigns the next member ID
// from the counter and grants the admin role to the configured super-admin
// address.
func (s AuthService) createMember(ctx context.Context, name, email, phone string, passwordHash *string, isGoogle bool) (*domain.User, error) {
	role := domain.RoleMember
	if s.Config.SuperAdminEmail != "" && strings.EqualFold(email, s.Config.SuperAdminEmail) {
		role = domain.RoleAdmin
	}
	return s.Users.Create(ctx, repository.CreateUserParams{
		MemberID:     s.nextMemberID(ctx),
		Name:         name,
		Email:        email,
		Phone:        phone,
		Role:         role,
		PasswordHash: passwordHash,
		IsGoogle:     isGoogle,
	})
}

// nextMemberID formats the next counter value as OT####. When the counter
// read fails the sign-in must still succeed, so a timestamp-derived ID is
// used instead; the counter path is retried for the next member.
func (s AuthService) nextMemberID(ctx context.Context) string {
	seq, err := s.Counters.NextMemberSeq(ctx)
	if err != nil {
		s.Logger.Warn("member counter unavailable, using fallback id", "error", err)
		ms := strconv.FormatInt(time.Now().UnixMilli(), 10)
		return "OT-" + ms[len(ms)-4:]
	}
	return fmt.Sprintf("OT%04d", seq)
}

// CompleteProfile finishes onboarding for the signed-in member.
func (s AuthService) CompleteProfile(ctx context.Context, userID int64, in CompleteProfileInput) (*domain.User, error) {
	if strings.TrimSpace(in.FirstName) == "" {
		return nil, fmt.Errorf("first name is required")
	}
	return s.Users.CompleteProfile(ctx, userID, repository.UpdateProfileParams{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		BirthDate: strings.TrimSpace(in.BirthDate),
	})
}

func (s AuthService) Refresh(ctx context.Context, in RefreshInput) (*AuthResult, error) {
	token, err := jwt.Parse(in.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.Config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if claims["token_type"] != "refresh" {
		return nil, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return s.issueTokens(user)
}

func (s AuthService) issueTokens(user *domain.User) (*AuthResult, error) {
	now := time.Now()
	accessExp := now.Add(s.Config.AccessTokenTTL)
	refreshExp := now.Add(s.Config.RefreshTokenTTL)

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        fmt.Sprintf("%d", user.ID),
		"email":      user.Email,
		"role":       user.Role,
		"member_id":  user.MemberID,
		"token_type": "access",
		"exp":        accessExp.Unix(),
		"iat":        now.Unix(),
	}).SignedString([]byte(s.Config.JWTSecret))
	if err != nil {
		return nil, err
	}

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        fmt.Sprintf("%d", user.ID),
		"token_type": "refresh",
		"exp":        refreshExp.Unix(),
		"iat":        now.Unix(),
	}).SignedString([]byte(s.Config.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         *user,
		ExpiresAt:    accessExp,
	}, nil
}

func ptr[T any](v T) *T { return &v }
