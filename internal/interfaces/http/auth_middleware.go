package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bilkro/pos-api/internal/application/dto"
	"github.com/bilkro/pos-api/pkg/jwt"
)

// Locals keys para UserID e IsAdmin en Fiber.
const (
	LocalUserID  = "user_id"
	LocalIsAdmin = "is_admin"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID e IsAdmin a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, isAdmin, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalIsAdmin, isAdmin)
		return c.Next()
	}
}

// RequireAdmin corta con 403 si el token no pertenece a un administrador.
// Debe ir después de AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "requiere rol de administrador"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// IsAdmin devuelve el flag de administrador del contexto.
func IsAdmin(c *fiber.Ctx) bool {
	v := c.Locals(LocalIsAdmin)
	if v == nil {
		return false
	}
	b, _ := v.(bool)
	return b
}
