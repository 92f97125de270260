package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"tonpay/internal/shared/biztime"
	apperrors "tonpay/internal/shared/errors"
)

// TelegramUser is the user object embedded in Mini App initData.
type TelegramUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// TelegramValidator verifies Mini App initData signatures. The secret key is
// HMAC-SHA256("WebAppData", botToken) per the Telegram contract; the hash
// covers every field except the hash itself, sorted, joined by newlines.
type TelegramValidator struct {
	secretKey []byte
	maxAge    time.Duration
}

// NewTelegramValidator creates a validator for the given bot token.
// maxAgeSeconds bounds the accepted age of auth_date; zero disables the
// replay check.
func NewTelegramValidator(botToken string, maxAgeSeconds int) *TelegramValidator {
	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))
	return &TelegramValidator{
		secretKey: mac.Sum(nil),
		maxAge:    time.Duration(maxAgeSeconds) * time.Second,
	}
}

// Validate checks the initData query string and returns the embedded user.
func (v *TelegramValidator) Validate(initData string) (*TelegramUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("malformed init data")
	}

	providedHash := values.Get("hash")
	if providedHash == "" {
		return nil, apperrors.NewUnauthorizedError("init data is missing its hash")
	}

	pairs := make([]string, 0, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s=%s", key, values.Get(key)))
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	mac := hmac.New(sha256.New, v.secretKey)
	mac.Write([]byte(dataCheckString))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(providedHash)) {
		return nil, apperrors.NewUnauthorizedError("init data signature mismatch")
	}

	if v.maxAge > 0 {
		authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
		if err != nil {
			return nil, apperrors.NewUnauthorizedError("init data is missing auth_date")
		}
		if biztime.NowUTC().Sub(time.Unix(authDate, 0)) > v.maxAge {
			return nil, apperrors.NewUnauthorizedError("init data has expired")
		}
	}

	var user TelegramUser
	if err := json.Unmarshal([]byte(values.Get("user")), &user); err != nil {
		return nil, apperrors.NewUnauthorizedError("init data has no valid user")
	}
	if user.ID == 0 {
		return nil, apperrors.NewUnauthorizedError("init data has no valid user")
	}
	return &user, nil
}

// SignInitData produces a valid initData string for the given values. Test
// helper; real init data comes from Telegram clients.
func SignInitData(botToken string, values url.Values) string {
	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))
	secretKey := mac.Sum(nil)

	pairs := make([]string, 0, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s=%s", key, values.Get(key)))
	}
	sort.Strings(pairs)

	sig := hmac.New(sha256.New, secretKey)
	sig.Write([]byte(strings.Join(pairs, "\n")))
	values.Set("hash", hex.EncodeToString(sig.Sum(nil)))
	return values.Encode()
}
