package handlers

import (
	"errors"
	"log"
	"time"

	"truefeedback/internal/middleware"
	"truefeedback/internal/models"
	"truefeedback/internal/services"
	"truefeedback/internal/store"
	"truefeedback/internal/utils"
	"truefeedback/internal/validation"
	"truefeedback/pkg/response"

	"github.com/gin-gonic/gin"
)

// Verification codes stay valid for one hour after issue.
const verifyCodeTTL = time.Hour

type AuthHandler struct {
	users store.UserStore
	mail  *services.MailService
}

func NewAuthHandler(users store.UserStore, mail *services.MailService) *AuthHandler {
	return &AuthHandler{users: users, mail: mail}
}

// CheckUsernameUnique answers availability for a candidate username. Only
// verified accounts count as holding a name; a taken name is a negative
// answer, not an error.
// GET /api/check-username-unique?username=
func (h *AuthHandler) CheckUsernameUnique(c *gin.Context) {
	username := c.Query("username")
	if err := validation.Username(username); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	_, err := h.users.VerifiedByUsername(username)
	switch {
	case err == nil:
		response.Taken(c, "Username is already taken")
	case errors.Is(err, store.ErrUserNotFound):
		response.OK(c, "Username is unique")
	default:
		log.Printf("Error checking username: %v", err)
		response.InternalError(c, "Error checking username")
	}
}

type signUpRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUp creates an unverified account, or refreshes an existing unverified
// one holding the same email, then emails a fresh verification code.
// POST /api/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username, email and password are required")
		return
	}
	if err := validation.Username(req.Username); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := validation.Email(req.Email); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := validation.Password(req.Password); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if _, err := h.users.VerifiedByUsername(req.Username); err == nil {
		response.BadRequest(c, "Username is already taken")
		return
	} else if !errors.Is(err, store.ErrUserNotFound) {
		log.Printf("Error checking username at sign-up: %v", err)
		response.InternalError(c, "Error while registering the user")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		response.InternalError(c, "Error while registering the user")
		return
	}

	code := utils.GenerateVerifyCode()
	expiry := time.Now().Add(verifyCodeTTL)

	existing, err := h.users.ByEmail(req.Email)
	switch {
	case err == nil:
		if existing.IsVerified {
			response.BadRequest(c, "User already exists with this email")
			return
		}
		// Refresh the unverified record in place, including the username the
		// caller asked for this time.
		existing.Username = req.Username
		existing.Password = hash
		existing.VerifyCode = code
		existing.VerifyCodeExpiry = expiry
		if err := h.users.Save(existing); err != nil {
			log.Printf("Error refreshing unverified user: %v", err)
			response.InternalError(c, "Error while registering the user")
			return
		}
	case errors.Is(err, store.ErrUserNotFound):
		user := &models.User{
			Username:            req.Username,
			Email:               req.Email,
			Password:            hash,
			VerifyCode:          code,
			VerifyCodeExpiry:    expiry,
			IsAcceptingMessages: true,
		}
		if err := h.users.Create(user); err != nil {
			log.Printf("Error creating user: %v", err)
			response.InternalError(c, "Error while registering the user")
			return
		}
	default:
		log.Printf("Error looking up email at sign-up: %v", err)
		response.InternalError(c, "Error while registering the user")
		return
	}

	h.mail.SendVerificationEmail(req.Email, req.Username, code)

	response.Created(c, "User registered successfully. Please verify your account")
}

type verifyCodeRequest struct {
	Username string `json:"username" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

// VerifyCode marks the account verified when the code matches and has not
// expired. Re-verifying an already verified account is a harmless no-op.
// POST /api/verify-code
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req verifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username and code are required")
		return
	}
	if err := validation.VerifyCode(req.Code); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.ByUsername(req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		log.Printf("Error looking up user for verification: %v", err)
		response.InternalError(c, "Error verifying user")
		return
	}

	if user.IsVerified {
		response.OK(c, "Account already verified")
		return
	}

	if time.Now().After(user.VerifyCodeExpiry) {
		response.BadRequest(c, "Verification code has expired. Please sign up again to get a new code")
		return
	}
	if user.VerifyCode != req.Code {
		response.BadRequest(c, "Incorrect verification code")
		return
	}

	user.IsVerified = true
	user.VerifyCode = ""
	if err := h.users.Save(user); err != nil {
		log.Printf("Error saving verified user: %v", err)
		response.InternalError(c, "Error verifying user")
		return
	}

	response.OK(c, "Account verified successfully")
}

type signInRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// SignIn checks credentials and establishes the cookie session. The
// identifier may be a username or an email.
// POST /api/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "identifier and password are required")
		return
	}

	user, err := h.users.ByIdentifier(req.Identifier)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			response.Unauthorized(c, "Invalid credentials")
			return
		}
		log.Printf("Error looking up user at sign-in: %v", err)
		response.InternalError(c, "Error signing in")
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		response.Unauthorized(c, "Invalid credentials")
		return
	}

	if err := middleware.EstablishSession(c, user.ID); err != nil {
		log.Printf("Error saving session: %v", err)
		response.InternalError(c, "Error signing in")
		return
	}

	response.OKWith(c, "Signed in successfully", gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// SignOut clears the session.
// POST /api/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := middleware.ClearSession(c); err != nil {
		log.Printf("Error clearing session: %v", err)
		response.InternalError(c, "Error signing out")
		return
	}
	response.OK(c, "Signed out successfully")
}
