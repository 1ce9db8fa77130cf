package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prajapatkavitha/restaurant-management-project/internal/apierror"
	"github.com/prajapatkavitha/restaurant-management-project/internal/role"
	"github.com/prajapatkavitha/restaurant-management-project/internal/service"
)

const ClaimsKey = "claims"

// TokenParser is the slice of the auth service the middleware needs.
type TokenParser interface {
	ParseToken(token string) (*service.Claims, error)
}

// JWTAuth validates the Bearer token on every protected route and stores the
// typed claims in the request context.
func JWTAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.Permission("authentication required"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims, err := parser.ParseToken(tokenStr)
		if err != nil || claims.Kind != "access" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.Permission("invalid or expired token"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireCapability rejects requests whose role lacks the capability. The
// role-to-capability table lives in internal/role; routes name the capability,
// never the role list.
func RequireCapability(cap role.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		r, ok := role.Parse(claims.Role)
		if !ok || !r.Can(cap) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.Permission("insufficient permissions"))
			return
		}
		c.Next()
	}
}

// RequireStaff rejects customer tokens.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		r, ok := role.Parse(claims.Role)
		if !ok || !r.Staff() {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.Permission("staff only"))
			return
		}
		c.Next()
	}
}

// GetClaims retrieves the typed claims stored by JWTAuth.
func GetClaims(c *gin.Context) *service.Claims {
	claims, _ := c.MustGet(ClaimsKey).(*service.Claims)
	return claims
}

// ActorFromClaims builds the service-layer actor identity from the JWT claims.
func ActorFromClaims(claims *service.Claims) service.Actor {
	id, _ := uuid.Parse(claims.UserID)
	r, _ := role.Parse(claims.Role)
	actor := service.Actor{ID: id, Role: r}
	if claims.Email != "" {
		email := claims.Email
		actor.Email = &email
	}
	return actor
}
