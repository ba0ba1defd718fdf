package apperror

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("connect: %w", &AuthError{Message: "Unknown error"})
	assert.True(t, IsAuth(wrapped))
	assert.False(t, IsConfig(wrapped))

	cause := errors.New("dial tcp: i/o timeout")
	transport := &TransportError{Op: "exchange code", Err: cause}
	assert.True(t, IsTransport(fmt.Errorf("x: %w", transport)))
	assert.ErrorIs(t, transport, cause)

	assert.True(t, IsConfig(NewConfigError("No member ID for personal profile")))
}

func TestMessageTruncatesProviderBody(t *testing.T) {
	body := strings.Repeat("a", 500)
	msg := Message(&APIError{Op: "create post", StatusCode: 403, Body: body})
	assert.Equal(t, "HTTP 403: "+strings.Repeat("a", DisplayLimit), msg)
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "héllo", Truncate("héllo", 10))
	assert.Equal(t, "hé", Truncate("héllo", 2))
}
