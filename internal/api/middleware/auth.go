package middleware

import (
	"errors"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vietanh2810/ticket-order-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/ticket-order-api/internal/pkg/jwthelper"
)

const (
	userIDKey = "userID"

	bearerPattern      = `^\s*Bearer\s+(?<token>[^\s]+)\s*$`
	bearerMatchTimeout = 50 * time.Millisecond
)

var (
	ErrMissingToken = errors.New("missing bearer token")

	bearerExp = func() *regexp2.Regexp {
		exp := regexp2.MustCompile(bearerPattern, regexp2.IgnoreCase)
		exp.MatchTimeout = bearerMatchTimeout
		return exp
	}()
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT aborts with 401 unless the request carries a valid token.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, err := a.parse(ctx)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthenticated(err))
			return
		}

		ctx.Set(userIDKey, claims.UserID)
		ctx.Next()
	}
}

// ParseJWT stores the caller's id when the token is valid and lets every
// request through. Handlers decide when a missing caller is an error.
func (a *Authenticator) ParseJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, err := a.parse(ctx)
		if err != nil {
			zap.L().Debug("request without valid token", zap.String("path", ctx.FullPath()), zap.Error(err))
			ctx.Next()
			return
		}

		ctx.Set(userIDKey, claims.UserID)
		ctx.Next()
	}
}

func (a *Authenticator) parse(ctx *gin.Context) (*jwthelper.Claims, error) {
	token, err := ExtractToken(ctx.GetHeader("Authorization"), ctx.Query("token"))
	if err != nil {
		return nil, err
	}

	return jwthelper.ParseToken(a.signingKey, token)
}

// ExtractToken reads the token from an "Authorization: Bearer" header and
// falls back to the token query parameter.
func ExtractToken(header, query string) (string, error) {
	if header != "" {
		match, err := bearerExp.FindStringMatch(header)
		if err != nil {
			return "", err
		}
		if match != nil {
			return match.GroupByName("token").String(), nil
		}
	}

	if query != "" {
		return query, nil
	}

	return "", ErrMissingToken
}

// UserID returns the id of the authenticated caller, if any.
func UserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(userIDKey)
	if !ok {
		return 0, false
	}

	id, ok := v.(uint)
	return id, ok && id != 0
}
