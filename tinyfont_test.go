package tinyfont

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tinyfont/internal/fontload"
	"github.com/npillmayer/tinyfont/otgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont")
	defer teardown()
	//
	b64, err := Generate("€")
	require.NoError(t, err)
	_, raw, err := fontload.DecodeText(b64)
	require.NoError(t, err)
	otf, err := FromBinary(raw)
	require.NoError(t, err)
	assert.Equal(t, '€', MappedCharacter(otf))
	family, subfamily := FamilyName(otf)
	assert.Empty(t, family)
	assert.Empty(t, subfamily)
}

func TestDataURI(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont")
	defer teardown()
	//
	uri, err := DataURI("A")
	require.NoError(t, err)
	b64, err := Generate("A")
	require.NoError(t, err)
	assert.Equal(t, "data:font/ttf;base64,"+b64, uri)
	tf, err := fontload.ParseText(uri)
	require.NoError(t, err)
	assert.Equal(t, otgen.DefaultMIME, tf.MIME)
	assert.Equal(t, 'A', MappedCharacter(tf.OT))
	_, err = DataURI("AB")
	assert.ErrorIs(t, err, otgen.ErrInvalidCodePoint)
}

func TestFromBinaryRejectsGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont")
	defer teardown()
	//
	_, err := FromBinary([]byte(strings.Repeat("x", 64)))
	assert.Error(t, err)
}
