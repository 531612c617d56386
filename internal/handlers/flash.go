package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tasklist-app/tasklist/internal/views"
)

const (
	flashCookieName = "flash"
	defaultFlashTTL = 5 * time.Minute
	flashSubject    = "flash"

	flashSuccess = "success"
	flashError   = "error"
)

type flashClaims struct {
	Messages []views.Flash `json:"msgs"`
	jwt.RegisteredClaims
}

// Flasher carries one-shot messages across a redirect in a signed cookie.
// Messages are removed as soon as they are read.
type Flasher struct {
	secret []byte
	ttl    time.Duration
}

func NewFlasher(secret string) *Flasher {
	return &Flasher{
		secret: []byte(secret),
		ttl:    defaultFlashTTL,
	}
}

// Add queues a message for the next rendered page.
func (f *Flasher) Add(w http.ResponseWriter, r *http.Request, category, message string) error {
	messages := f.pending(r)
	messages = append(messages, views.Flash{Category: category, Message: message})

	token, err := f.sign(messages)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(f.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns the queued messages and clears the cookie. Invalid or expired
// cookies are cleared as well and yield nothing.
func (f *Flasher) Pop(w http.ResponseWriter, r *http.Request) []views.Flash {
	if _, err := r.Cookie(flashCookieName); err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return f.pending(r)
}

func (f *Flasher) pending(r *http.Request) []views.Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	messages, err := f.parse(cookie.Value)
	if err != nil {
		return nil
	}
	return messages
}

func (f *Flasher) sign(messages []views.Flash) (string, error) {
	now := time.Now()
	claims := flashClaims{
		Messages: messages,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   flashSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(f.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(f.secret)
}

func (f *Flasher) parse(tokenString string) ([]views.Flash, error) {
	claims := flashClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return f.secret, nil
	}, jwt.WithSubject(flashSubject))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims.Messages, nil
}
