package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/Mawaqit/models"
)

// TokenVerifier turns a bearer token into the caller's identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (models.AuthUser, error)
}

// IDTokenVerifier is the part of the Firebase auth client used here.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier accepts Firebase ID tokens. Admins carry the custom claim
// admin=true.
type FirebaseVerifier struct {
	client IDTokenVerifier
}

func NewFirebaseVerifier(client IDTokenVerifier) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (models.AuthUser, error) {
	idToken, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return models.AuthUser{}, err
	}
	user := models.AuthUser{User_ID: idToken.UID}
	user.Email, _ = idToken.Claims["email"].(string)
	user.Admin, _ = idToken.Claims["admin"].(bool)
	return user, nil
}

// HMACVerifier accepts HS256 tokens signed with SECRET, for local development
// without a Firebase project. The subject goes in "sub" and admins carry
// role=admin.
type HMACVerifier struct {
	secret []byte
	now    func() time.Time
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret), now: time.Now}
}

func (v *HMACVerifier) Verify(ctx context.Context, tokenString string) (models.AuthUser, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return models.AuthUser{}, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.AuthUser{}, errors.New("invalid token")
	}

	exp, ok := claims["exp"].(float64)
	if !ok || float64(v.now().Unix()) > exp {
		return models.AuthUser{}, errors.New("token expired")
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return models.AuthUser{}, errors.New("token has no subject")
	}

	user := models.AuthUser{User_ID: subject}
	user.Email, _ = claims["email"].(string)
	user.Admin = claims["role"] == "admin"
	return user, nil
}

func CheckAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		authToken := strings.Split(authHeader, " ")
		if len(authToken) != 2 || authToken[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		user, err := verifier.Verify(c.Request.Context(), authToken[1])
		if err != nil {
			log.Debug("rejected bearer token", "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("currentUser", user)
		c.Set("admin", user.Admin)

		c.Next()
	}
}
