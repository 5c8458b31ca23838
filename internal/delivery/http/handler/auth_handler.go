package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go-hospital-scheduling/config"
	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/pkg/jwt"
	"go-hospital-scheduling/pkg/response"
	"go-hospital-scheduling/pkg/validator"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	log        *logrus.Logger
	jwtService *jwt.JWTService
	authConfig config.AuthConfig
	validator  *validator.CustomValidator
}

func NewAuthHandler(log *logrus.Logger, jwtService *jwt.JWTService, authConfig config.AuthConfig, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		log:        log,
		jwtService: jwtService,
		authConfig: authConfig,
		validator:  validator,
	}
}

// IssueToken exchanges a configured API key for a bearer token. The admin key
// yields the admin role, the staff key the staff role.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	role := h.roleForKey(req.APIKey)
	if role == "" {
		h.log.Warnf("Rejected token request for %s", req.Email)
		response.Unauthorized(w, "Invalid API key")
		return
	}

	token, tokenID, err := h.jwtService.GenerateAccessToken(req.Email, role)
	if err != nil {
		h.log.Errorf("Failed to generate access token: %+v", err)
		response.InternalServerError(w, "Failed to generate access token")
		return
	}
	h.log.Infof("Issued %s token %s for %s", role, tokenID, req.Email)

	response.Success(w, http.StatusOK, "Token issued successfully", &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.jwtService.GetAccessExpiry().Seconds()),
		Role:        role,
	})
}

func (h *AuthHandler) roleForKey(key string) string {
	switch {
	case keyMatches(h.authConfig.AdminAPIKey, key):
		return entity.RoleAdmin
	case keyMatches(h.authConfig.StaffAPIKey, key):
		return entity.RoleStaff
	default:
		return ""
	}
}

// keyMatches accepts a configured key in plain text or as a bcrypt hash.
func keyMatches(configured, given string) bool {
	if configured == "" || given == "" {
		return false
	}
	if strings.HasPrefix(configured, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(given)) == 1
}
