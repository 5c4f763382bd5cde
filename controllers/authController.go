package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/Kariqs/farmkart-api/middlewares"
	"github.com/Kariqs/farmkart-api/models"
	"github.com/Kariqs/farmkart-api/services"
	"github.com/gin-gonic/gin"
)

const (
	msgUserCreated       = "User created successfully."
	msgInvalidCredential = "invalid email or password"
	msgLoginSuccess      = "Login successful"
	msgLoggedOut         = "Logged out"
)

type AuthController struct {
	accounts     *services.Accounts
	cookieTTL    time.Duration
	secureCookie bool
}

func NewAuthController(accounts *services.Accounts, cookieTTL time.Duration, secureCookie bool) *AuthController {
	return &AuthController{accounts: accounts, cookieTTL: cookieTTL, secureCookie: secureCookie}
}

type registerRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
	Phone    string `json:"phone" form:"phone"`
	Street   string `json:"street" form:"street"`
	City     string `json:"city" form:"city"`
	State    string `json:"state" form:"state"`
	Zip      string `json:"zip" form:"zip"`
}

func (a *AuthController) setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middlewares.TokenCookie, token, maxAge, "/", "", a.secureCookie, true)
}

// Register handles user registration
func (a *AuthController) Register(ctx *gin.Context) {
	var body registerRequest
	if err := ctx.ShouldBind(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := a.accounts.Register(ctx.Request.Context(), services.RegisterInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Role:     models.Role(body.Role),
		Phone:    body.Phone,
		Address: models.Address{
			Street: body.Street,
			City:   body.City,
			State:  body.State,
			Zip:    body.Zip,
		},
	})
	if err != nil {
		handleServiceError(ctx, err, "unable to register user")
		return
	}

	log.Println("User registered:", user.ID, user.Role)
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgUserCreated, "user": user})
}

// Login handles user authentication
func (a *AuthController) Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBind(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, token, err := a.accounts.Login(ctx.Request.Context(), loginData.Email, loginData.Password)
	if err != nil {
		handleServiceError(ctx, err, msgInvalidCredential)
		return
	}

	a.setSessionCookie(ctx, token, int(a.cookieTTL.Seconds()))
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgLoginSuccess, "token": token, "user": user})
}

func (a *AuthController) Logout(ctx *gin.Context) {
	a.setSessionCookie(ctx, "", -1)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgLoggedOut})
}

func (a *AuthController) Profile(ctx *gin.Context) {
	principal, ok := currentUser(ctx)
	if !ok {
		return
	}
	user, err := a.accounts.Profile(ctx.Request.Context(), principal.ID)
	if err != nil {
		handleServiceError(ctx, err, "unable to load profile")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}
