package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
	"github.com/vladislavdragonenkov/shopease/internal/session"
)

const authContextKey = "auth"

// authRequired проверяет session-cookie и кладёт AuthContext в контекст запроса.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			respondError(c, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			c.Abort()
			return
		}

		sess, err := s.sessions.Get(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				respondError(c, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			} else {
				s.logger.WithError(err).Error("session lookup failed")
				respondError(c, http.StatusInternalServerError, "internal server error")
			}
			c.Abort()
			return
		}

		c.Set(authContextKey, sess.Auth())
		c.Next()
	}
}

// adminRequired пропускает только администраторов. Отличие роли скрывается
// за 401, чтобы не подтверждать существование админских маршрутов.
func (s *Server) adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := authFrom(c)
		if !auth.IsAdmin() {
			respondError(c, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			c.Abort()
			return
		}
		c.Next()
	}
}

// authFrom достаёт AuthContext, положенный authRequired.
func authFrom(c *gin.Context) domain.AuthContext {
	v, ok := c.Get(authContextKey)
	if !ok {
		return domain.AuthContext{}
	}
	auth, ok := v.(domain.AuthContext)
	if !ok {
		return domain.AuthContext{}
	}
	return auth
}
