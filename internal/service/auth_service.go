package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"mplsconnect/internal/config"
	"mplsconnect/internal/docstore"
	"mplsconnect/internal/models"
	"mplsconnect/internal/repository"
)

// Stable user-facing sign-in failure messages. Anything that does not fall
// into one of these classes passes through with its raw message.
const (
	msgNoAccount        = "No account found with this email"
	msgWrongPassword    = "Incorrect password"
	msgInvalidEmail     = "Invalid email address"
	msgTooManyAttempts  = "Too many failed attempts. Please try again later"
	msgEmailTaken       = "An account with this email already exists"
	msgInvalidRefresh   = "Invalid or expired refresh token"
	maxFailedAttempts   = 5
	failedAttemptWindow = 15 * time.Minute
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type SignUpRequest struct {
	Email        string
	Password     string
	Name         string
	Age          int
	Location     string
	Occupation   string
	Sexuality    string
	Bio          string
	ProfileImage string
	Interests    []string
}

// AuthResult carries either a signed-in user with session tokens or a
// human-readable error message. The zero Error string means success; auth
// operations never hand provider internals to their callers.
type AuthResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	Error        string
}

type SignOutResult struct {
	Error string
}

type AuthService interface {
	SignUp(ctx context.Context, req SignUpRequest) AuthResult
	SignIn(ctx context.Context, email, password string) AuthResult
	SignOut(ctx context.Context, refreshToken string) SignOutResult
	RefreshTokens(ctx context.Context, refreshToken string) AuthResult
	ValidateToken(tokenString string) (*jwt.Token, error)
}

// account is the auth provider's credential document. The account document
// id is the provider uid referenced by the users collection.
type account struct {
	Email              string `json:"email"`
	PasswordHash       string `json:"passwordHash"`
	DisplayName        string `json:"displayName"`
	RefreshToken       string `json:"refreshToken,omitempty"`
	RefreshTokenExpiry string `json:"refreshTokenExpiry,omitempty"`
}

type authService struct {
	accounts docstore.Collection
	users    repository.UserRepository
	cfg      *config.Config

	mu       sync.Mutex
	failures map[string]*failureWindow
}

type failureWindow struct {
	count int
	since time.Time
}

func NewAuthService(store docstore.Store, users repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		accounts: store.Collection(docstore.CollectionAccounts),
		users:    users,
		cfg:      cfg,
		failures: make(map[string]*failureWindow),
	}
}

// SignUp creates a provider account and the matching user document. Account
// creation failure short-circuits; a profile creation failure after the
// account exists is surfaced without rolling the account back.
func (s *authService) SignUp(ctx context.Context, req SignUpRequest) AuthResult {
	email := strings.TrimSpace(req.Email)
	if !emailPattern.MatchString(email) {
		return AuthResult{Error: msgInvalidEmail}
	}

	existing, err := s.accounts.GetByField(ctx, "email", email)
	if err != nil {
		logrus.WithError(err).Error("sign-up account lookup failed")
		return AuthResult{Error: err.Error()}
	}
	if len(existing) > 0 {
		return AuthResult{Error: msgEmailTaken}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{Error: err.Error()}
	}

	acc, err := models.ToDocument(account{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(req.Name),
	})
	if err != nil {
		return AuthResult{Error: err.Error()}
	}

	uid, err := s.accounts.Create(ctx, acc)
	if err != nil {
		logrus.WithError(err).Error("sign-up account creation failed")
		return AuthResult{Error: err.Error()}
	}

	// Optional profile fields are added only when non-empty after trimming.
	// A field absent from the input stays absent from the stored document.
	profile := docstore.Document{
		"uid":       uid,
		"name":      strings.TrimSpace(req.Name),
		"location":  strings.TrimSpace(req.Location),
		"interests": append([]string{}, req.Interests...),
		"verified":  false,
	}
	if req.Age > 0 {
		profile["age"] = req.Age
	}
	setIfPresent(profile, "occupation", req.Occupation)
	setIfPresent(profile, "sexuality", req.Sexuality)
	setIfPresent(profile, "bio", req.Bio)
	setIfPresent(profile, "profileImage", req.ProfileImage)

	userID, err := s.users.CreateFromDocument(ctx, profile)
	if err != nil {
		// Acknowledged inconsistency window: the account exists with no
		// profile document.
		logrus.WithError(err).WithField("uid", uid).Error("sign-up profile creation failed")
		return AuthResult{Error: err.Error()}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil || user == nil {
		user = &models.User{ID: userID, UID: uid, Name: strings.TrimSpace(req.Name)}
	}

	return s.issueSession(ctx, uid, email, user)
}

func (s *authService) SignIn(ctx context.Context, email, password string) AuthResult {
	email = strings.TrimSpace(email)

	if s.rateLimited(email) {
		return AuthResult{Error: msgTooManyAttempts}
	}
	if !emailPattern.MatchString(email) {
		return AuthResult{Error: msgInvalidEmail}
	}

	records, err := s.accounts.GetByField(ctx, "email", email)
	if err != nil {
		logrus.WithError(err).Error("sign-in account lookup failed")
		return AuthResult{Error: err.Error()}
	}
	if len(records) == 0 {
		s.recordFailure(email)
		return AuthResult{Error: msgNoAccount}
	}

	rec := records[0]
	var acc account
	if err := models.FromRecord(rec, &acc); err != nil {
		return AuthResult{Error: err.Error()}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		s.recordFailure(email)
		return AuthResult{Error: msgWrongPassword}
	}

	s.clearFailures(email)

	user, err := s.users.GetByUID(ctx, rec.ID)
	if err != nil {
		logrus.WithError(err).WithField("uid", rec.ID).Warn("profile lookup failed at sign-in")
	}
	if user == nil {
		user = &models.User{UID: rec.ID, Name: acc.DisplayName}
	}

	return s.issueSession(ctx, rec.ID, email, user)
}

func (s *authService) SignOut(ctx context.Context, refreshToken string) SignOutResult {
	if refreshToken == "" {
		return SignOutResult{}
	}

	records, err := s.accounts.GetByField(ctx, "refreshToken", refreshToken)
	if err != nil {
		return SignOutResult{Error: err.Error()}
	}
	if len(records) == 0 {
		// Already signed out; terminating a dead session is not an error.
		return SignOutResult{}
	}

	err = s.accounts.Update(ctx, records[0].ID, docstore.Document{
		"refreshToken":       "",
		"refreshTokenExpiry": "",
	})
	if err != nil {
		return SignOutResult{Error: err.Error()}
	}
	return SignOutResult{}
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) AuthResult {
	if refreshToken == "" {
		return AuthResult{Error: msgInvalidRefresh}
	}

	records, err := s.accounts.GetByField(ctx, "refreshToken", refreshToken)
	if err != nil {
		return AuthResult{Error: err.Error()}
	}
	if len(records) == 0 {
		return AuthResult{Error: msgInvalidRefresh}
	}

	rec := records[0]
	var acc account
	if err := models.FromRecord(rec, &acc); err != nil {
		return AuthResult{Error: err.Error()}
	}

	expiry, err := time.Parse(time.RFC3339, acc.RefreshTokenExpiry)
	if err != nil || time.Now().After(expiry) {
		return AuthResult{Error: msgInvalidRefresh}
	}

	user, err := s.users.GetByUID(ctx, rec.ID)
	if err != nil || user == nil {
		user = &models.User{UID: rec.ID, Name: acc.DisplayName}
	}

	return s.issueSession(ctx, rec.ID, acc.Email, user)
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return token, nil
}

func (s *authService) issueSession(ctx context.Context, uid, email string, user *models.User) AuthResult {
	accessToken, err := s.generateAccessToken(uid, email, user.Name)
	if err != nil {
		return AuthResult{Error: err.Error()}
	}

	refreshToken := uuid.New().String()
	expiry := time.Now().Add(s.cfg.RefreshTokenDuration)

	err = s.accounts.Update(ctx, uid, docstore.Document{
		"refreshToken":       refreshToken,
		"refreshTokenExpiry": expiry.Format(time.RFC3339),
	})
	if err != nil {
		return AuthResult{Error: err.Error()}
	}

	return AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
}

func (s *authService) generateAccessToken(uid, email, name string) (string, error) {
	claims := jwt.MapClaims{
		"uid":   uid,
		"email": email,
		"name":  name,
		"exp":   time.Now().Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (s *authService) rateLimited(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.failures[email]
	if !ok {
		return false
	}
	if time.Since(w.since) > failedAttemptWindow {
		delete(s.failures, email)
		return false
	}
	return w.count >= maxFailedAttempts
}

func (s *authService) recordFailure(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.failures[email]
	if !ok || time.Since(w.since) > failedAttemptWindow {
		s.failures[email] = &failureWindow{count: 1, since: time.Now()}
		return
	}
	w.count++
}

func (s *authService) clearFailures(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, email)
}

func setIfPresent(doc docstore.Document, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		doc[key] = v
	}
}
