// Package auth provides authentication and authorization for the ground station API.
// It handles password hashing, JWT token generation/validation, and operator login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Operator roles for role-based access control (RBAC)
const (
	RoleAdmin    = "admin"    // Station administration
	RoleOperator = "operator" // May upload telemetry
	RoleViewer   = "viewer"   // Read-only display access
)

var (
	// ErrInvalidCredentials is returned when authentication fails
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when token validation fails
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUnauthorized is returned when an operator lacks required permissions
	ErrUnauthorized = errors.New("unauthorized access")
)

// Claims represents the JWT claims of an operator session
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Operator is an account allowed to log in
type Operator struct {
	Username     string
	PasswordHash string
	Role         string
}

// Config holds authentication configuration
type Config struct {
	JWTSecret     string        // Secret key for signing JWTs
	TokenDuration time.Duration // How long tokens are valid
	BCryptCost    int           // BCrypt hashing cost (default: bcrypt.DefaultCost)
	Operators     []Operator    // Accounts allowed to log in
}

// Service provides authentication operations
type Service struct {
	config    Config
	operators map[string]Operator
	now       func() time.Time
}

// NewService creates a new authentication service.
// It fails when the secret is empty or an operator has an unknown role.
func NewService(cfg Config) (*Service, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if cfg.BCryptCost == 0 {
		cfg.BCryptCost = bcrypt.DefaultCost
	}
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = 12 * time.Hour
	}

	operators := make(map[string]Operator, len(cfg.Operators))
	for _, op := range cfg.Operators {
		if !ValidRole(op.Role) {
			return nil, fmt.Errorf("operator %s has unknown role %q", op.Username, op.Role)
		}
		operators[op.Username] = op
	}

	return &Service{
		config:    cfg,
		operators: operators,
		now:       time.Now,
	}, nil
}

// HashPassword hashes a plaintext password using bcrypt
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BCryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword compares a plaintext password with a hashed password
func (s *Service) ComparePassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// Authenticate checks an operator's password and returns a session token.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(username, password string) (string, *Operator, error) {
	op, ok := s.operators[username]
	if !ok {
		return "", nil, ErrInvalidCredentials
	}
	if err := s.ComparePassword(op.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(op.Username, op.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, &op, nil
}

// GenerateToken generates a JWT token for an operator
func (s *Service) GenerateToken(username, role string) (string, error) {
	now := s.now()
	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "gcs-pfd",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// ValidateToken validates a JWT token and returns the claims
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

var roleLevel = map[string]int{
	RoleAdmin:    2,
	RoleOperator: 1,
	RoleViewer:   0,
}

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	_, ok := roleLevel[role]
	return ok
}

// HasRole checks if a user has a specific role or higher
// Role hierarchy: Admin > Operator > Viewer
func HasRole(userRole, requiredRole string) bool {
	userLevel, ok1 := roleLevel[userRole]
	requiredLevel, ok2 := roleLevel[requiredRole]
	if !ok1 || !ok2 {
		return false
	}
	return userLevel >= requiredLevel
}

// CanViewDisplay checks if a role can read the flight display
func CanViewDisplay(role string) bool {
	return HasRole(role, RoleViewer)
}

// CanUploadTelemetry checks if a role can push telemetry snapshots
func CanUploadTelemetry(role string) bool {
	return HasRole(role, RoleOperator)
}
