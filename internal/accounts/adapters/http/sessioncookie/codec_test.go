package sessioncookie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounthub/internal/accounts/adapters/http/sessioncookie"
)

func TestCodec_EncodeDecode(t *testing.T) {
	codec := sessioncookie.NewCodec("test-secret")

	value := codec.Encode("session-id-1")
	sessionID, ok := codec.Decode(value)

	require.True(t, ok)
	assert.Equal(t, "session-id-1", sessionID)
}

func TestCodec_Decode_TamperedValue(t *testing.T) {
	codec := sessioncookie.NewCodec("test-secret")
	value := codec.Encode("session-id-1")

	t.Run("подмененный идентификатор отклоняется", func(t *testing.T) {
		tampered := "other-session" + value[len("session-id-1"):]
		_, ok := codec.Decode(tampered)
		assert.False(t, ok)
	})

	t.Run("значение без подписи отклоняется", func(t *testing.T) {
		_, ok := codec.Decode("session-id-1")
		assert.False(t, ok)
	})

	t.Run("пустое значение отклоняется", func(t *testing.T) {
		_, ok := codec.Decode("")
		assert.False(t, ok)
	})

	t.Run("подпись другим секретом отклоняется", func(t *testing.T) {
		other := sessioncookie.NewCodec("other-secret")
		_, ok := codec.Decode(other.Encode("session-id-1"))
		assert.False(t, ok)
	})
}
