package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/pkg/jwt"
)

// LocalUserID key de Fiber Locals con el propietario de los datos.
const LocalUserID = "user_id"

// AuthMiddleware valida el Bearer Token JWT y deja el UserID en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "MISSING_TOKEN", "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, "MISSING_TOKEN", "token vacío")
		}
		userID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || userID == "" {
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: msg, Code: code})
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

// requireUser devuelve domain.ErrUnauthorized si la ruta se montó sin AuthMiddleware.
func requireUser(c *fiber.Ctx) (string, error) {
	userID := GetUserID(c)
	if userID == "" {
		return "", domain.ErrUnauthorized
	}
	return userID, nil
}
