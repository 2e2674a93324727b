package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetTokenRoundTrip(t *testing.T) {
	token := EncodeOffsetToken(150)
	offset, err := DecodeOffsetToken(token)
	require.NoError(t, err)
	assert.Equal(t, 150, offset)
}

func TestDecodeOffsetTokenEmpty(t *testing.T) {
	offset, err := DecodeOffsetToken("")
	require.NoError(t, err)
	assert.Equal(t, 0, offset)
}

func TestDecodeOffsetTokenInvalid(t *testing.T) {
	_, err := DecodeOffsetToken("not-base64!!!")
	assert.Error(t, err)

	_, err = DecodeOffsetToken(EncodeMultiFieldToken("-5"))
	assert.Error(t, err)
}

func TestMultiFieldTokenRoundTrip(t *testing.T) {
	token := EncodeMultiFieldToken("2024-06-01", "txn-42")
	fields, err := DecodeMultiFieldToken(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-01", "txn-42"}, fields)
}
