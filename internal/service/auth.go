package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Skotchmaster/phast_auth/internal/domain"
	"github.com/Skotchmaster/phast_auth/internal/events"
	"github.com/Skotchmaster/phast_auth/internal/logging"
	"github.com/Skotchmaster/phast_auth/internal/models"
	"github.com/Skotchmaster/phast_auth/internal/repo"
	"github.com/Skotchmaster/phast_auth/internal/token"
)

type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) error
	PasswordHashByEmail(ctx context.Context, email string) (string, error)
	ValidateLogin(ctx context.Context, email, passwordHash string) (uint, error)
	UserByID(ctx context.Context, id uint) (*models.UserView, error)
	UpdateUser(ctx context.Context, id uint, name, email, passwordHash string) error
	DeleteUser(ctx context.Context, id uint) error
}

type Hasher interface {
	HashPassword(password string) (string, error)
	CheckPassword(encoded, password string) bool
}

type TokenCodec interface {
	Mint(claims map[string]any) (string, error)
	Verify(raw string) (token.Claims, error)
	Rotate(raw string) (string, error)
}

// Authorization is the outcome of reading the bearer credential off a
// request: either a raw token or the reason none could be extracted.
type Authorization struct {
	Token string
	Err   error
}

type AuthService struct {
	Repo   UserStore
	Codec  TokenCodec
	Hasher Hasher
	Events events.Publisher
}

func NewAuthService(store UserStore, codec TokenCodec, hasher Hasher, pub events.Publisher) *AuthService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &AuthService{Repo: store, Codec: codec, Hasher: hasher, Events: pub}
}

type Result struct {
	Message string
	Token   string
	User    *models.UserView
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Result, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	fields, err := s.validateProfile(name, email, password)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			l.Warn("register_error", "reason", ve.Reason, "field", ve.Field)
			return nil, fail(ErrValidation, prefixRegistration+ve.Message, err)
		}
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, fail(ErrInternal, msgInternal, err)
	}

	if err := s.Repo.CreateUser(ctx, fields.name.String(), fields.email.String(), fields.password.Hash()); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_error", "reason", "user already exist")
		} else {
			l.Error("register_error", "reason", "cannot store user", "error", err)
		}
		return nil, fail(ErrPersistence, msgCreateFailed, err)
	}

	s.publish(ctx, events.Event{Type: events.UserRegistered, Email: fields.email.String()})
	l.Info("register_successful")
	return &Result{Message: msgCreated}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Result, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	denied := func(reason string, cause error) error {
		l.Warn("login_failed", "reason", reason)
		return fail(ErrInvalidCredentials, msgBadCredentials, cause)
	}

	if err := domain.RequireFields(
		domain.Field{Name: "email", Value: email},
		domain.Field{Name: "password", Value: password},
	); err != nil {
		return nil, denied("missing fields", err)
	}

	stored, err := s.Repo.PasswordHashByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			l.Error("login_error", "reason", "cannot read user", "error", err)
		}
		return nil, denied("unknown email", err)
	}
	if !s.Hasher.CheckPassword(stored, password) {
		return nil, denied("password mismatch", nil)
	}

	id, err := s.Repo.ValidateLogin(ctx, email, stored)
	if err != nil {
		return nil, denied("account lookup failed", err)
	}

	tok, err := s.Codec.Mint(map[string]any{"id": strconv.FormatUint(uint64(id), 10)})
	if err != nil {
		l.Error("login_error", "reason", "cannot mint token", "error", err)
		return nil, fail(ErrInternal, msgInternal, err)
	}

	s.publish(ctx, events.Event{Type: events.UserLoggedIn, UserID: id, Email: email})
	l.Info("login_successful", "user_id", id)
	return &Result{Message: msgLoggedIn, Token: tok}, nil
}

func (s *AuthService) Refresh(ctx context.Context, auth Authorization) (*Result, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	if err := authorizationError(auth); err != nil {
		return nil, err
	}

	tok, err := s.Codec.Rotate(auth.Token)
	if err != nil {
		if errors.Is(err, token.ErrRandomness) {
			l.Error("refresh_error", "reason", "cannot mint token", "error", err)
			return nil, fail(ErrInternal, msgInternal, err)
		}
		l.Warn("refresh_failed", "error", err)
		return nil, fail(ErrRefreshFailed, msgRefreshFailed, err)
	}

	return &Result{Message: msgRefreshed, Token: tok}, nil
}

func (s *AuthService) Fetch(ctx context.Context, auth Authorization) (*Result, error) {
	l := logging.FromContext(ctx).With("svc", "auth.fetch")

	id, err := s.subject(ctx, auth)
	if err != nil {
		return nil, err
	}

	user, err := s.Repo.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("fetch_failed", "user_id", id, "reason", "user not found")
			return nil, fail(ErrUserNotFound, msgUserNotFound, err)
		}
		l.Error("fetch_error", "user_id", id, "error", err)
		return nil, fail(ErrPersistence, msgFetchFailed, err)
	}

	return &Result{Message: msgFetched, User: user}, nil
}

func (s *AuthService) Update(ctx context.Context, auth Authorization, name, email, password string) (*Result, error) {
	l := logging.FromContext(ctx).With("svc", "auth.update")

	id, err := s.subject(ctx, auth)
	if err != nil {
		return nil, err
	}

	fields, err := s.validateProfile(name, email, password)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			l.Warn("update_error", "reason", ve.Reason, "field", ve.Field)
			return nil, fail(ErrValidation, prefixUpdate+ve.Message, err)
		}
		l.Error("update_error", "reason", "cannot hash the password", "error", err)
		return nil, fail(ErrInternal, msgInternal, err)
	}

	if err := s.Repo.UpdateUser(ctx, id, fields.name.String(), fields.email.String(), fields.password.Hash()); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) || errors.Is(err, repo.ErrNotFound) {
			l.Warn("update_failed", "user_id", id, "error", err)
		} else {
			l.Error("update_error", "user_id", id, "error", err)
		}
		return nil, fail(ErrPersistence, msgUpdateFailed, err)
	}

	s.publish(ctx, events.Event{Type: events.UserUpdated, UserID: id, Email: fields.email.String()})
	l.Info("update_successful", "user_id", id)
	return &Result{Message: msgUpdated}, nil
}

func (s *AuthService) Delete(ctx context.Context, auth Authorization) (*Result, error) {
	l := logging.FromContext(ctx).With("svc", "auth.delete")

	id, err := s.subject(ctx, auth)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("delete_failed", "user_id", id, "reason", "user not found")
		} else {
			l.Error("delete_error", "user_id", id, "error", err)
		}
		return nil, fail(ErrPersistence, msgDeleteFailed, err)
	}

	s.publish(ctx, events.Event{Type: events.UserDeleted, UserID: id})
	l.Info("delete_successful", "user_id", id)
	return &Result{Message: msgDeleted}, nil
}

type profile struct {
	name     domain.Name
	email    domain.Email
	password domain.Password
}

func (s *AuthService) validateProfile(name, email, password string) (profile, error) {
	if err := domain.RequireFields(
		domain.Field{Name: "name", Value: name},
		domain.Field{Name: "email", Value: email},
		domain.Field{Name: "password", Value: password},
	); err != nil {
		return profile{}, err
	}

	n, err := domain.NewName(name)
	if err != nil {
		return profile{}, err
	}
	e, err := domain.NewEmail(email)
	if err != nil {
		return profile{}, err
	}
	p, err := domain.NewPassword(password, s.Hasher)
	if err != nil {
		return profile{}, err
	}
	return profile{name: n, email: e, password: p}, nil
}

func authorizationError(auth Authorization) error {
	if auth.Err != nil {
		return fail(ErrAuthorization, prefixAuthorize+auth.Err.Error(), auth.Err)
	}
	return nil
}

// subject verifies the bearer token and returns the user id it was minted for.
func (s *AuthService) subject(ctx context.Context, auth Authorization) (uint, error) {
	if err := authorizationError(auth); err != nil {
		return 0, err
	}

	claims, err := s.Codec.Verify(auth.Token)
	if err != nil {
		logging.FromContext(ctx).Warn("token_rejected", "error", err)
		return 0, fail(ErrSessionExpired, msgSessionExpired, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return 0, fail(ErrSessionExpired, msgSessionExpired, token.ErrMalformedToken)
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, fail(ErrSessionExpired, msgSessionExpired, token.ErrMalformedToken)
	}
	return uint(id), nil
}

func (s *AuthService) publish(ctx context.Context, ev events.Event) {
	ev.OccurredAt = time.Now().UTC()
	if err := s.Events.Publish(ctx, ev); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "type", ev.Type, "error", err)
	}
}
