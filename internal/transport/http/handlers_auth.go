package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.accounts.Register(req.Email, req.Password, req.Name)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	if err := s.issueSession(c, user.ID, user.Role); err != nil {
		writeError(c, s.logger, err)
		return
	}

	respondOK(c, http.StatusCreated, newUserView(user))
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.accounts.Login(req.Email, req.Password)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	if err := s.issueSession(c, user.ID, user.Role); err != nil {
		writeError(c, s.logger, err)
		return
	}

	respondOK(c, http.StatusOK, newUserView(user))
}

func (s *Server) logout(c *gin.Context) {
	// Logout идемпотентен: без cookie просто подтверждаем выход.
	if sessionID, err := c.Cookie(SessionCookieName); err == nil && sessionID != "" {
		if err := s.sessions.Delete(c.Request.Context(), sessionID); err != nil {
			s.logger.WithError(err).Warn("delete session failed")
		}
	}
	s.clearSessionCookie(c)
	respondOK(c, http.StatusOK, gin.H{"logged_out": true})
}

func (s *Server) currentUser(c *gin.Context) {
	auth := authFrom(c)
	user, err := s.accounts.GetByID(auth.UserID)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusOK, newUserView(user))
}

// issueSession создаёт сессию и выставляет HttpOnly cookie.
func (s *Server) issueSession(c *gin.Context, userID string, role domain.Role) error {
	sess, err := s.sessions.Create(c.Request.Context(), userID, role, s.sessionTTL)
	if err != nil {
		return err
	}
	c.SetCookie(SessionCookieName, sess.ID, int(s.sessionTTL.Seconds()), "/", "", false, true)
	return nil
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}
