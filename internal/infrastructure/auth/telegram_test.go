package auth

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "12345:TESTTOKEN"

func validInitData(t *testing.T, authDate time.Time) string {
	t.Helper()
	values := url.Values{}
	values.Set("user", `{"id":7,"first_name":"Ada","username":"ada"}`)
	values.Set("auth_date", fmt.Sprintf("%d", authDate.Unix()))
	values.Set("query_id", "AAHdF6IQAAAAAN0XohDhrOrc")
	return SignInitData(testBotToken, values)
}

func TestTelegramValidator_Valid(t *testing.T) {
	v := NewTelegramValidator(testBotToken, 86400)

	user, err := v.Validate(validInitData(t, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "ada", user.Username)
}

func TestTelegramValidator_TamperedData(t *testing.T) {
	v := NewTelegramValidator(testBotToken, 86400)

	data := validInitData(t, time.Now())
	values, err := url.ParseQuery(data)
	require.NoError(t, err)
	values.Set("user", `{"id":999,"first_name":"Eve"}`)

	_, err = v.Validate(values.Encode())
	assert.Error(t, err)
}

func TestTelegramValidator_WrongBotToken(t *testing.T) {
	v := NewTelegramValidator("other:TOKEN", 86400)

	_, err := v.Validate(validInitData(t, time.Now()))
	assert.Error(t, err)
}

func TestTelegramValidator_ExpiredAuthDate(t *testing.T) {
	v := NewTelegramValidator(testBotToken, 60)

	_, err := v.Validate(validInitData(t, time.Now().Add(-time.Hour)))
	assert.Error(t, err)
}

func TestTelegramValidator_MissingHash(t *testing.T) {
	v := NewTelegramValidator(testBotToken, 86400)

	_, err := v.Validate("user=%7B%22id%22%3A7%7D&auth_date=1")
	assert.Error(t, err)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 60)

	token, err := svc.Generate(7, "ada", "EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.TelegramID)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, "EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", claims.WalletAddress)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", 60).Generate(7, "ada", "")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", 60).Verify(token)
	assert.Error(t, err)
}
