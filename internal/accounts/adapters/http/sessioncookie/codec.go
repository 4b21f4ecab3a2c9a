// Package sessioncookie содержит кодек для подписанных cookie сессий.
//
// Значение cookie имеет вид "<session_id>.<hex hmac-sha256>". Подпись
// позволяет отбрасывать подделанные идентификаторы до обращения к
// хранилищу сессий. Секрет подписи задается только через конфигурацию.
package sessioncookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Codec подписывает и проверяет идентификаторы сессий.
type Codec struct {
	secret []byte
}

// NewCodec создает кодек с указанным секретом.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode возвращает подписанное значение cookie для идентификатора сессии.
func (c *Codec) Encode(sessionID string) string {
	return sessionID + "." + c.sign(sessionID)
}

// Decode проверяет подпись и возвращает идентификатор сессии.
// Любое значение с неверной подписью трактуется как отсутствие сессии.
func (c *Codec) Decode(value string) (string, bool) {
	sessionID, signature, found := strings.Cut(value, ".")
	if !found || sessionID == "" {
		return "", false
	}
	expected := c.sign(sessionID)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return "", false
	}
	return sessionID, true
}

func (c *Codec) sign(sessionID string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(sessionID))
	return hex.EncodeToString(mac.Sum(nil))
}
