package auth

import (
	"crypto/rsa"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims, которые кладёт в токен userservice Bank-of-Anthos.
type Claims struct {
	Username  string
	AccountID string
}

// LoadPublicKey читает RSA-публичный ключ из файла, указанного в PUB_KEY_PATH.
func LoadPublicKey() (*rsa.PublicKey, error) {
	path := os.Getenv("PUB_KEY_PATH")
	if path == "" {
		return nil, fmt.Errorf("переменная окружения PUB_KEY_PATH не задана")
	}
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения публичного ключа: %v", err)
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора публичного ключа: %v", err)
	}
	return key, nil
}

// ParseToken проверяет подпись RS256 и возвращает claims.
func ParseToken(tokenString string, key *rsa.PublicKey) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return nil, fmt.Errorf("недействительный токен: %v", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("недействительный токен: неожиданный формат claims")
	}

	claims := &Claims{}
	if v, ok := mapClaims["user"].(string); ok {
		claims.Username = v
	}
	if v, ok := mapClaims["username"].(string); ok && claims.Username == "" {
		claims.Username = v
	}
	if v, ok := mapClaims["acct"].(string); ok {
		claims.AccountID = v
	}
	if v, ok := mapClaims["account_id"].(string); ok && claims.AccountID == "" {
		claims.AccountID = v
	}
	return claims, nil
}

// Middleware проверяет заголовок Authorization: Bearer и кладёт claims в контекст.
func Middleware(key *rsa.PublicKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Отсутствует или некорректен заголовок Authorization"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims, err := ParseToken(tokenString, key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": fmt.Sprintf("Ошибка авторизации: %v", err)})
			return
		}

		c.Set("claims", claims)
		c.Set("token", tokenString)
		c.Next()
	}
}

// ClaimsFrom достаёт claims, положенные Middleware.
func ClaimsFrom(c *gin.Context) *Claims {
	if v, ok := c.Get("claims"); ok {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}
	return &Claims{}
}

// TokenFrom возвращает сырой bearer-токен запроса для проброса дальше.
func TokenFrom(c *gin.Context) string {
	if v, ok := c.Get("token"); ok {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}
