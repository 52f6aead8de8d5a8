package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/ticket-order-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/ticket-order-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/ticket-order-api/internal/api/middleware"
	"github.com/vietanh2810/ticket-order-api/internal/domain"
	"github.com/vietanh2810/ticket-order-api/internal/service"
)

var errEmailTaken = errors.New("the email has already been taken")

type AuthService interface {
	Register(ctx context.Context, user domain.User) (domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	SendVerificationMail(ctx context.Context, email, password string) (service.VerificationResult, error)
	VerifyUser(ctx context.Context, userID uint) (service.VerificationResult, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

// HandleRegister godoc
// @Summary      Register a new user
// @Description  Stores an unverified user and mails a verification token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.RegisterRequest true "request body"
// @Success      201      {object}   response.Message
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /register [post]
func (h *AuthHandler) HandleRegister(ctx *gin.Context) {
	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	_, err := h.svc.Register(ctx.Request.Context(), domain.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserEmailExists) {
			response.RenderErr(ctx, response.ErrValidation(validation.Errors{"email": errEmailTaken}))
			return
		}

		err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.Message{
		Message: "User Successfully Registered. Check Your Mail and Verify User.",
	})
}

// HandleLogin godoc
// @Summary      Login a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.CredentialsRequest true "request body"
// @Success      201      {object}   response.LoginResponse
// @Failure      401      {object}   response.Err
// @Failure      402      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.CredentialsRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))

		return
	}

	token, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if respErr := credentialsErr(err); respErr != nil {
			response.RenderErr(ctx, respErr)

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.LoginResponse{
		Message: "Login Successful",
		Token:   token,
	})
}

// HandleSendVerificationMail godoc
// @Summary      Resend the verification mail
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.CredentialsRequest true "request body"
// @Success      201      {object}   response.Message
// @Success      202      {object}   response.Message "user already verified"
// @Failure      401      {object}   response.Err
// @Failure      402      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sendVerificationMail [post]
func (h *AuthHandler) HandleSendVerificationMail(ctx *gin.Context) {
	req := request.CredentialsRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	result, err := h.svc.SendVerificationMail(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if respErr := credentialsErr(err); respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		err = fmt.Errorf("v1.HandleSendVerificationMail -> h.svc.SendVerificationMail -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if result == service.UserAlreadyVerified {
		ctx.JSON(http.StatusAccepted, response.Message{Message: "User Already Verified"})
		return
	}

	ctx.JSON(http.StatusCreated, response.Message{Message: "Verification Mail Sent Successfully"})
}

// HandleVerifyUser godoc
// @Summary      Verify the token's user
// @Tags         auth
// @Produce      json
// @Success      201      {object}   response.Message
// @Success      202      {object}   response.Message "user already verified"
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /verifyUser [post]
// @Security BearerAuth
func (h *AuthHandler) HandleVerifyUser(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthenticated(service.ErrUnauthenticated))
		return
	}

	result, err := h.svc.VerifyUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("User Not Found", err))
			return
		}

		err = fmt.Errorf("v1.HandleVerifyUser -> h.svc.VerifyUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if result == service.UserAlreadyVerified {
		ctx.JSON(http.StatusAccepted, response.Message{Message: "User Already Verified"})
		return
	}

	ctx.JSON(http.StatusCreated, response.Message{Message: "User Successfully Verified"})
}

// credentialsErr maps the two login failures, which are never merged.
func credentialsErr(err error) *response.Err {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return response.ErrNotFound("Not a Registered Email", err)
	case errors.Is(err, service.ErrWrongPassword):
		return response.ErrWrongPassword(err)
	}

	return nil
}
