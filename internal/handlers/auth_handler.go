package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"order_manager/internal/redis"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const sessionCookieName = "session_id"

type AuthHandler struct {
	redisClient  *redis.Client
	username     string
	passwordHash []byte
	sessionTTL   time.Duration
}

func NewAuthHandler(redisClient *redis.Client, username, password string, sessionTTL time.Duration) (*AuthHandler, error) {
	// Hash the configured password once so login only ever compares hashes
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &AuthHandler{
		redisClient:  redisClient,
		username:     username,
		passwordHash: passwordHash,
		sessionTTL:   sessionTTL,
	}, nil
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.Username != h.username || bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	sessionID, err := newSessionID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	session := &redis.SessionData{Username: req.Username, CreatedAt: time.Now()}
	if err := h.redisClient.SetSession(sessionID, session, h.sessionTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.SetCookie(sessionCookieName, sessionID, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(sessionCookieName); err == nil {
		if err := h.redisClient.DeleteSession(sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
			return
		}
	}

	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RequireSession rejects requests without a live login session.
func (h *AuthHandler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			return
		}
		if _, err := h.redisClient.GetSession(sessionID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			return
		}
		c.Next()
	}
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
