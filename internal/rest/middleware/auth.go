package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"agency-planner/internal/model"
	"agency-planner/internal/repository"
	"agency-planner/pkg/rest/response"
)

const userKey = "auth.user"

// ExtractToken pulls the bearer token from the Authorization header.
func ExtractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authenticate resolves the bearer token to a portal user and stores it on
// the request context. Requests without a valid token are rejected.
func Authenticate(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			response.HandleError(response.NewUnauthorizedError(), c)
			return
		}
		user, err := userRepo.FindByToken(c.Request.Context(), token)
		if err != nil {
			response.HandleError(response.NewUnauthorizedError(), c)
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Authenticate.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
