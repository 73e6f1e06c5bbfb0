package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"oncodx/internal/domain"
	"oncodx/internal/repository"
	"oncodx/internal/service"
)

const authDoctorKey = "auth_doctor"

// identityLookupTimeout acota la resolución del doctor contra la base:
// si la consulta tarda más, la autenticación falla cerrada.
const identityLookupTimeout = 2 * time.Second

// JWTAuthMiddleware valida el bearer token y resuelve el doctor
// autenticado. Firma inválida, token expirado y sujeto desconocido
// responden el mismo 401 para no revelar qué emails existen.
func JWTAuthMiddleware(jwtSvc *service.JWTService, doctors repository.DoctorRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil || doctors == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := jwtSvc.ParseAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), identityLookupTimeout)
		defer cancel()
		doctor, err := doctors.GetByEmail(ctx, claims.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(authDoctorKey, doctor)
		c.Next()
	}
}

// GetAuthDoctor obtiene el doctor autenticado desde el contexto.
func GetAuthDoctor(c *gin.Context) (domain.Doctor, bool) {
	val, ok := c.Get(authDoctorKey)
	if !ok {
		return domain.Doctor{}, false
	}
	doctor, ok := val.(domain.Doctor)
	return doctor, ok
}
