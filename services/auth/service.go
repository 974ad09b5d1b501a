package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"yachtdrop-backend/lib/telemetry"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"
)

var tracer = telemetry.Tracer("yachtdrop.services.auth")

var ErrUsernameTaken = fmt.Errorf("username taken")
var ErrInvalidCredentials = fmt.Errorf("invalid credentials")
var ErrNoSession = fmt.Errorf("no valid session")

const sessionLifetime = time.Hour * 24 * 7

type User struct {
	Id        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Session struct {
	Token     string
	ExpiresAt time.Time
}

type Service struct {
	db *sql.DB
}

func NewService(database *sql.DB) Service {
	return Service{db: database}
}

func normalizeUsername(username string) string {
	return strings.Trim(strings.ToLower(username), " \t\n")
}

type RegisterRequest struct {
	Username  string
	FirstName string
	LastName  string
	Password  string
}

func (s Service) Register(ctx context.Context, req RegisterRequest) (User, error) {
	ctx, span := tracer.Start(ctx, "Register")
	defer span.End()

	username := normalizeUsername(req.Username)

	var existing int64
	err := s.db.QueryRowContext(
		ctx, "SELECT id FROM users WHERE username = ?", username,
	).Scan(&existing)
	if err == nil {
		return User{}, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to look up username")
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to hash password")
		return User{}, err
	}

	res, err := s.db.ExecContext(
		ctx,
		"INSERT INTO users (username, first_name, last_name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		username, req.FirstName, req.LastName, string(hash),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert user row")
		return User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, err
	}

	return User{
		Id:        id,
		Username:  username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, nil
}

func (s Service) Login(ctx context.Context, username, password string) (User, Session, error) {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	var user User
	var hash string
	err := s.db.QueryRowContext(
		ctx,
		"SELECT id, username, first_name, last_name, password_hash FROM users WHERE username = ?",
		normalizeUsername(username),
	).Scan(&user.Id, &user.Username, &user.FirstName, &user.LastName, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, Session{}, ErrInvalidCredentials
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to look up user")
		return User{}, Session{}, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		return User{}, Session{}, ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user.Id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create session")
		return User{}, Session{}, err
	}
	return user, session, nil
}

func (s Service) createSession(ctx context.Context, userId int64) (Session, error) {
	token, err := random.String(48)
	if err != nil {
		return Session{}, err
	}

	now := time.Now().UTC()
	expiresAt := now.Add(sessionLifetime)
	_, err = s.db.ExecContext(
		ctx,
		"INSERT INTO sessions (user_id, token, expires_at, created_at) VALUES (?, ?, ?, ?)",
		userId, token, expiresAt.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: expiresAt}, nil
}

func (s Service) Logout(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	return err
}

// SessionUser resolves a session token to its user. Expired sessions
// are deleted on sight.
func (s Service) SessionUser(ctx context.Context, token string) (User, error) {
	ctx, span := tracer.Start(ctx, "SessionUser")
	defer span.End()

	if token == "" {
		return User{}, ErrNoSession
	}

	var user User
	var expiresAt string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT users.id, users.username, users.first_name, users.last_name, sessions.expires_at
		 FROM sessions JOIN users ON users.id = sessions.user_id
		 WHERE sessions.token = ?`,
		token,
	).Scan(&user.Id, &user.Username, &user.FirstName, &user.LastName, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNoSession
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to look up session")
		return User{}, err
	}

	expiry, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil || time.Now().After(expiry) {
		_, _ = s.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
		return User{}, ErrNoSession
	}

	return user, nil
}
