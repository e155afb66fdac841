package middleware

import (
    "net/http"
    "strings"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

// Context keys populated by JWTAuth.  Handlers read these instead of
// re-parsing the token.
const (
    CtxUserID   = "user_id"
    CtxSchoolID = "school_id"
    CtxRole     = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the subject, school and role claims into the
// request context.  Every protected route runs behind it; the school
// claim is what scopes all downstream queries to the caller's tenant.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                // Only HS256 tokens are issued; reject anything else.
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "invalid token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "invalid claims"})
            }

            // Numeric claims come back as float64 from MapClaims.
            userID, okUser := asUint64(claims["sub"])
            schoolID, okSchool := asUint64(claims["school_id"])
            role, okRole := claims["role"].(string)
            if !okUser || !okSchool || !okRole {
                return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "invalid claims"})
            }

            c.Set(CtxUserID, userID)
            c.Set(CtxSchoolID, schoolID)
            c.Set(CtxRole, role)
            return next(c)
        }
    }
}

func asUint64(v interface{}) (uint64, bool) {
    switch t := v.(type) {
    case float64:
        if t < 0 {
            return 0, false
        }
        return uint64(t), true
    case uint64:
        return t, true
    case int64:
        if t < 0 {
            return 0, false
        }
        return uint64(t), true
    }
    return 0, false
}
