package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func testKeyPair(t *testing.T) (*rsa.PrivateKey, *rsa.PublicKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("ошибка генерации ключа: %v", err)
	}
	return key, &key.PublicKey
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("ошибка подписи токена: %v", err)
	}
	return signed
}

func TestParseToken(t *testing.T) {
	priv, pub := testKeyPair(t)
	signed := signToken(t, priv, jwt.MapClaims{
		"user": "alice",
		"acct": "1234567890",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	claims, err := ParseToken(signed, pub)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if claims.Username != "alice" || claims.AccountID != "1234567890" {
		t.Errorf("получили %+v", claims)
	}
}

func TestParseTokenAlternativeClaimNames(t *testing.T) {
	priv, pub := testKeyPair(t)
	signed := signToken(t, priv, jwt.MapClaims{
		"username":   "bob",
		"account_id": "0987654321",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	claims, err := ParseToken(signed, pub)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if claims.Username != "bob" || claims.AccountID != "0987654321" {
		t.Errorf("получили %+v", claims)
	}
}

func TestParseTokenExpired(t *testing.T) {
	priv, pub := testKeyPair(t)
	signed := signToken(t, priv, jwt.MapClaims{
		"user": "alice",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := ParseToken(signed, pub); err == nil {
		t.Fatal("истёкший токен должен отклоняться")
	}
}

func TestParseTokenWrongKey(t *testing.T) {
	priv, _ := testKeyPair(t)
	_, otherPub := testKeyPair(t)
	signed := signToken(t, priv, jwt.MapClaims{
		"user": "alice",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	if _, err := ParseToken(signed, otherPub); err == nil {
		t.Fatal("токен с чужой подписью должен отклоняться")
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	priv, pub := testKeyPair(t)

	r := gin.New()
	r.Use(Middleware(pub))
	r.GET("/protected", func(c *gin.Context) {
		claims := ClaimsFrom(c)
		c.JSON(http.StatusOK, gin.H{"user": claims.Username, "acct": claims.AccountID})
	})

	// Без заголовка
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("без токена ожидали 401, получили %d", w.Code)
	}

	// С корректным токеном
	signed := signToken(t, priv, jwt.MapClaims{
		"user": "alice",
		"acct": "1234567890",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("с токеном ожидали 200, получили %d: %s", w.Code, w.Body.String())
	}
}
