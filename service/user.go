package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"skillswap-service/model"
	"skillswap-service/store"
	"skillswap-service/utils"

	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultIssuer = "SkillSwap"
	defaultRole   = "user"
	maxAboutMe    = 500
)

type UserRepository interface {
	UserDirectory
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]model.User, error)
}

// SessionRepository remembers the one refresh token each user may renew with.
type SessionRepository interface {
	Save(ctx context.Context, userID uint, refresh string) error
	Get(ctx context.Context, userID uint) (string, error)
}

// RoleAssigner grants a role to a subject. *casbin.Enforcer satisfies it.
type RoleAssigner interface {
	AddGroupingPolicy(params ...interface{}) (bool, error)
}

type UserService struct {
	users    UserRepository
	sessions SessionRepository
	roles    RoleAssigner
	issuer   string
	log      *slog.Logger
}

func NewUserService(users UserRepository, sessions SessionRepository, roles RoleAssigner, issuer string, log *slog.Logger) *UserService {
	if issuer == "" {
		issuer = defaultIssuer
	}
	return &UserService{
		users:    users,
		sessions: sessions,
		roles:    roles,
		issuer:   issuer,
		log:      loggerOrDiscard(log),
	}
}

type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Location string `validate:"required"`
}

// Session is what a successful sign-in hands back. OtpPending sessions may
// only call the second-factor validation.
type Session struct {
	User       *model.User
	Tokens     *utils.Tokens
	OtpPending bool
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		if failedTag(err, "Password") == "min" {
			return nil, newError(KindValidation, "Password must be at least 6 characters")
		}
		return nil, newError(KindValidation, "Please fill all required fields")
	}

	switch _, err := s.users.FindByEmail(ctx, in.Email); {
	case err == nil:
		return nil, newError(KindValidation, "User already exists")
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: in.Email,
		SecretSize:  15,
	})
	if err != nil {
		return nil, fmt.Errorf("generate otp secret: %w", err)
	}

	user := &model.User{
		Name:           in.Name,
		Email:          in.Email,
		Password:       string(hash),
		Location:       in.Location,
		ProfilePicture: model.DefaultProfilePicture,
		SkillsOffered:  []string{},
		SkillsNeeded:   []string{},
		Role:           defaultRole,
		OtpSecret:      key.Secret(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.roles != nil {
		if _, err := s.roles.AddGroupingPolicy(subject(user.ID), user.Role); err != nil {
			s.log.Error("failed to assign role", "user_id", user.ID, "role", user.Role, "error", err)
		}
	}

	return s.startSession(ctx, user, false)
}

// Authenticate checks credentials and opens a session. Users with the second
// factor enabled get an OtpPending session.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, newError(KindUnauthorized, "Invalid email or password")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(KindUnauthorized, "Invalid email or password")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, newError(KindUnauthorized, "Invalid email or password")
	}
	return s.startSession(ctx, user, user.OtpEnabled)
}

// Renew trades a refresh token for a new pair. Each refresh token works
// once: the stored one is replaced on every renewal.
func (s *UserService) Renew(ctx context.Context, refresh string) (*Session, error) {
	claims, err := utils.CheckAndExtractTokenMetadata(refresh, utils.RefreshKey)
	if err != nil {
		return nil, newError(KindUnauthorized, "Invalid token")
	}

	stored, err := s.sessions.Get(ctx, claims.UserID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if stored != refresh {
		return nil, newError(KindUnauthorized, "Unauthorized, your refresh token was already used")
	}

	user, err := s.Profile(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return s.startSession(ctx, user, claims.Otp)
}

func (s *UserService) startSession(ctx context.Context, user *model.User, otpPending bool) (*Session, error) {
	tokens, err := utils.GenerateTokens(user.ID, otpPending)
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}
	if err := s.sessions.Save(ctx, user.ID, tokens.Refresh); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &Session{User: user, Tokens: tokens, OtpPending: otpPending}, nil
}

func (s *UserService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.users.FindUser(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User not found")
	}
	return user, nil
}

func (s *UserService) Users(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ProfilePatch carries the profile fields a user may change. Nil leaves a
// field untouched; an empty AboutMe clears it.
type ProfilePatch struct {
	Name           *string
	Email          *string
	Password       *string
	ProfilePicture *string
	AboutMe        *string
	Location       *string
	SkillsOffered  []string
	SkillsNeeded   []string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, patch ProfilePatch) (*model.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if err := validate.Var(email, "required,email"); err != nil {
			return nil, newError(KindValidation, "Invalid email")
		}
		if email != user.Email {
			switch other, err := s.users.FindByEmail(ctx, email); {
			case err == nil && other.ID != user.ID:
				return nil, newError(KindValidation, "Email is already registered")
			case err != nil && !errors.Is(err, store.ErrNotFound):
				return nil, fmt.Errorf("find user: %w", err)
			}
		}
		user.Email = email
	}
	if patch.AboutMe != nil && len([]rune(*patch.AboutMe)) > maxAboutMe {
		return nil, newError(KindValidation, "About me cannot be more than %d characters", maxAboutMe)
	}
	if patch.Password != nil {
		if len(*patch.Password) < 6 {
			return nil, newError(KindValidation, "Password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hash)
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Location != nil && strings.TrimSpace(*patch.Location) != "" {
		user.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.ProfilePicture != nil && *patch.ProfilePicture != "" {
		user.ProfilePicture = *patch.ProfilePicture
	}
	assign(&user.AboutMe, patch.AboutMe)
	if patch.SkillsOffered != nil {
		user.SkillsOffered = patch.SkillsOffered
	}
	if patch.SkillsNeeded != nil {
		user.SkillsNeeded = patch.SkillsNeeded
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// OtpSecret reveals the second-factor secret after a password check.
func (s *UserService) OtpSecret(ctx context.Context, userID uint, password string) (secret, url string, err error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", "", newError(KindUnauthorized, "Invalid password")
	}
	url = fmt.Sprintf("otpauth://totp/%s:%s?algorithm=SHA1&digits=6&issuer=%s&period=30&secret=%s",
		s.issuer, user.Email, s.issuer, user.OtpSecret)
	return user.OtpSecret, url, nil
}

// OtpVerify enables the second factor once the user proves they hold the
// secret.
func (s *UserService) OtpVerify(ctx context.Context, userID uint, code string) error {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if user.OtpEnabled {
		return newError(KindValidation, "Verification has already been performed earlier")
	}
	if !totp.Validate(code, user.OtpSecret) {
		return newError(KindUnauthorized, "Invalid token")
	}
	user.OtpEnabled = true
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// OtpValidate completes an OtpPending session with a full one.
func (s *UserService) OtpValidate(ctx context.Context, userID uint, code string) (*Session, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.OtpEnabled {
		return nil, newError(KindValidation, "2FA has been disabled")
	}
	if !totp.Validate(code, user.OtpSecret) {
		return nil, newError(KindUnauthorized, "Invalid token")
	}
	return s.startSession(ctx, user, false)
}

func (s *UserService) OtpDisable(ctx context.Context, userID uint, password, code string) error {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if !user.OtpEnabled {
		return newError(KindValidation, "2FA has been disabled")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return newError(KindUnauthorized, "Invalid password")
	}
	if !totp.Validate(code, user.OtpSecret) {
		return newError(KindUnauthorized, "Invalid token")
	}
	user.OtpEnabled = false
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func subject(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}
