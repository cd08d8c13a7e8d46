package server

import (
	"fmt"
	"time"

	"github.com/momtheprogram/api-final-writers-blog/internal/models"
	"github.com/momtheprogram/api-final-writers-blog/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Signup handles POST /api/v1/users/
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return fail(c, models.NewValidationError("Username, email, and password are required"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return fail(c, models.NewFieldValidationError("username", err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return fail(c, models.NewFieldValidationError("email", err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return fail(c, models.NewFieldValidationError("password", err.Error()))
	}

	// Check if user already exists
	if existing, err := s.userRepo.GetByUsername(c.Context(), req.Username); err != nil {
		return fail(c, models.NewInternalError(err))
	} else if existing != nil {
		return fail(c, models.NewFieldValidationError("username", "A user with that username already exists"))
	}
	if existing, err := s.userRepo.GetByEmail(c.Context(), req.Email); err != nil {
		return fail(c, models.NewInternalError(err))
	} else if existing != nil {
		return fail(c, models.NewFieldValidationError("email", "A user with that email already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return fail(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// CreateToken handles POST /api/v1/jwt/create/
func (s *Server) CreateToken(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}
	if user == nil {
		return fail(c, models.NewUnauthorizedError("No active account found with the given credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return fail(c, models.NewUnauthorizedError("No active account found with the given credentials"))
	}

	access, refresh, err := s.generateTokenPair(user.ID, user.Username)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"access":  access,
		"refresh": refresh,
	})
}

// RefreshToken handles POST /api/v1/jwt/refresh/
func (s *Server) RefreshToken(c *fiber.Ctx) error {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := c.BodyParser(&req); err != nil || req.Refresh == "" {
		return fail(c, models.NewFieldValidationError("refresh", "This field is required"))
	}

	claims, err := s.parseToken(c.Context(), req.Refresh, "refresh")
	if err != nil {
		return fail(c, err)
	}
	userID, err := subjectUserID(claims)
	if err != nil {
		return fail(c, err)
	}
	username, _ := claims["username"].(string)

	access, err := s.generateToken(userID, username, "access",
		time.Duration(s.config.AccessTTLMin)*time.Minute)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"access": access})
}

// VerifyToken handles POST /api/v1/jwt/verify/. It accepts tokens of
// either type and answers 200 with an empty body when valid.
func (s *Server) VerifyToken(c *fiber.Ctx) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return fail(c, models.NewFieldValidationError("token", "This field is required"))
	}

	if _, err := s.parseToken(c.Context(), req.Token, "access"); err != nil {
		if _, refreshErr := s.parseToken(c.Context(), req.Token, "refresh"); refreshErr != nil {
			return fail(c, models.NewUnauthorizedError("Token is invalid or expired"))
		}
	}

	return c.JSON(fiber.Map{})
}

// Logout handles POST /api/v1/jwt/logout/. The presented access token's
// jti goes onto the Redis blacklist until the token would have expired.
func (s *Server) Logout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	tokenString := ""
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenString = authHeader[7:]
	}

	claims, err := s.parseToken(c.Context(), tokenString, "access")
	if err != nil {
		return fail(c, err)
	}

	jti, _ := claims["jti"].(string)
	if jti != "" && s.redis != nil {
		ttl := time.Duration(s.config.AccessTTLMin) * time.Minute
		if exp, ok := claims["exp"].(float64); ok {
			if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
				ttl = remaining
			}
		}
		if err := s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl).Err(); err != nil {
			return fail(c, models.NewInternalError(err))
		}
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// generateTokenPair issues an access/refresh pair for the user.
func (s *Server) generateTokenPair(userID uint, username string) (string, string, error) {
	access, err := s.generateToken(userID, username, "access",
		time.Duration(s.config.AccessTTLMin)*time.Minute)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.generateToken(userID, username, "refresh",
		time.Duration(s.config.RefreshTTLDays)*24*time.Hour)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// generateToken creates a signed JWT for the given user.
func (s *Server) generateToken(userID uint, username, tokenType string, ttl time.Duration) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        fmt.Sprintf("%d", userID),
		"username":   username,
		"token_type": tokenType,
		"iss":        tokenIssuer,
		"aud":        tokenAudience,
		"exp":        now.Add(ttl).Unix(),
		"iat":        now.Unix(),
		"nbf":        now.Unix(),
		"jti":        s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
