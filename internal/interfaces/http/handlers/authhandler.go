package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techflow/techflow/internal/infrastructure/auth"
	"github.com/techflow/techflow/internal/shared/authorization"
	"github.com/techflow/techflow/internal/shared/config"
	"github.com/techflow/techflow/internal/shared/constants"
	"github.com/techflow/techflow/internal/shared/logger"
	"github.com/techflow/techflow/internal/shared/utils"
)

// CredentialChecker verifies a username and password pair.
type CredentialChecker interface {
	Authenticate(username, password string) (authorization.Identity, error)
}

// TokenIssuer signs a session token for an identity.
type TokenIssuer interface {
	Generate(id authorization.Identity) (*auth.IssuedToken, error)
	AccessExpMinutes() int
}

type AuthHandler struct {
	credentials  CredentialChecker
	tokens       TokenIssuer
	cookieConfig config.CookieConfig
	logger       logger.Interface
}

func NewAuthHandler(
	credentials CredentialChecker,
	tokens TokenIssuer,
	cookieConfig config.CookieConfig,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		credentials:  credentials,
		tokens:       tokens,
		cookieConfig: cookieConfig,
		logger:       logger,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}

type MeResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login handles POST /auth/login
// @Summary Sign in
// @Description The tech team account gets the tech_team role, any other credentials sign in as a client
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=LoginResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	id, err := h.credentials.Authenticate(req.Username, req.Password)
	if err != nil {
		h.logger.Warnw("login failed", "username", req.Username, "ip", c.ClientIP())
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := h.tokens.Generate(id)
	if err != nil {
		h.logger.Errorw("failed to issue session token", "username", id.Username, "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to sign in")
		return
	}

	utils.SetAccessTokenCookie(c, h.cookieConfig, token.AccessToken, h.tokens.AccessExpMinutes()*60)

	h.logger.Infow("user signed in", "username", id.Username, "role", id.Role)
	utils.SuccessResponse(c, http.StatusOK, "login successful", LoginResponse{
		AccessToken: token.AccessToken,
		ExpiresIn:   token.ExpiresIn,
		Username:    id.Username,
		Role:        id.Role.String(),
	})
}

// Logout handles POST /auth/logout
// @Summary Sign out
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.ClearAccessTokenCookie(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "logout successful", nil)
}

// Me handles GET /auth/me
// @Summary Current caller
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.APIResponse{data=MeResponse}
// @Failure 401 {object} utils.APIResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	username := c.GetString(constants.ContextKeyUsername)
	if username == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", MeResponse{
		Username: username,
		Role:     c.GetString(constants.ContextKeyUserRole),
	})
}
