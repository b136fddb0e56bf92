package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTags_Ordered(t *testing.T) {
	tags := DecodeTags("beach,sunset,family")

	assert.Equal(t, []string{"beach", "sunset", "family"}, tags)
}

func TestDecodeTags_Empty(t *testing.T) {
	// Место без тегов декодируется в пустой список, а не в [""]
	tags := DecodeTags("")

	assert.Equal(t, []string{}, tags)
}

func TestDecodeTags_SingleTag(t *testing.T) {
	tags := DecodeTags("beach")

	assert.Equal(t, []string{"beach"}, tags)
}

func TestEncodeTags_RoundTrip(t *testing.T) {
	encoded, err := EncodeTags([]string{"beach", "sunset", "family"})

	require.NoError(t, err)
	assert.Equal(t, "beach,sunset,family", encoded)
	assert.Equal(t, []string{"beach", "sunset", "family"}, DecodeTags(encoded))
}

func TestEncodeTags_TrimsAndSkipsEmpty(t *testing.T) {
	encoded, err := EncodeTags([]string{" beach ", "", "sunset"})

	require.NoError(t, err)
	assert.Equal(t, "beach,sunset", encoded)
}

func TestEncodeTags_RejectsDelimiter(t *testing.T) {
	_, err := EncodeTags([]string{"beach,sunset"})

	assert.ErrorIs(t, err, ErrTagDelimiter)
}

func TestEncodeTags_Empty(t *testing.T) {
	encoded, err := EncodeTags(nil)

	require.NoError(t, err)
	assert.Equal(t, "", encoded)
}
