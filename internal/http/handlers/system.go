package handlers

import (
	"context"
	"net/http"
	"time"

	"adminhub/internal/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "adminhub çalışıyor"})
}

// GET /api/db-check
func (h Handler) DBCheck(c *gin.Context) {
	if err := config.PingDB(c.Request.Context(), h.DB); err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "veritabanı bağlı değil: "+err.Error(), nil)
		return
	}
	if h.DB == nil {
		h.DB = config.DB
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	var count int
	if err := h.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "veritabanı sorgusu başarısız: "+err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "veritabanı bağlantısı OK", "users_in_db": count})
}

// Routes lists every registered route of r.
func Routes(r *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		routes := r.Routes()
		out := make([]gin.H, 0, len(routes))
		for _, rt := range routes {
			out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
		}
		c.JSON(http.StatusOK, gin.H{"routes": out})
	}
}
