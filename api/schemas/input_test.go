package schemas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/framepoint/api/schemas"
)

// TestConstants pins the wire values. A drift here is silently ignored by the browser.
func TestConstants(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		constant interface{}
		expected string
	}{
		{"MouseMove", schemas.MouseMove, "mouseMoved"},
		{"MousePress", schemas.MousePress, "mousePressed"},
		{"MouseRelease", schemas.MouseRelease, "mouseReleased"},
		{"MouseWheel", schemas.MouseWheel, "mouseWheel"},
		{"ButtonNone", schemas.ButtonNone, "none"},
		{"ButtonLeft", schemas.ButtonLeft, "left"},
		{"ButtonRight", schemas.ButtonRight, "right"},
		{"ButtonMiddle", schemas.ButtonMiddle, "middle"},
		{"ButtonBack", schemas.ButtonBack, "back"},
		{"ButtonForward", schemas.ButtonForward, "forward"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, toString(tc.constant))
		})
	}
}

func toString(v interface{}) string {
	switch c := v.(type) {
	case schemas.MouseEventType:
		return string(c)
	case schemas.MouseButton:
		return string(c)
	}
	return ""
}

func TestModifiersMask(t *testing.T) {
	assert.Equal(t, schemas.ModNone, schemas.Modifiers{}.Mask())
	assert.Equal(t, schemas.KeyModifier(1), schemas.Modifiers{Alt: true}.Mask())
	assert.Equal(t, schemas.KeyModifier(2), schemas.Modifiers{Ctrl: true}.Mask())
	assert.Equal(t, schemas.KeyModifier(4), schemas.Modifiers{Meta: true}.Mask())
	assert.Equal(t, schemas.KeyModifier(8), schemas.Modifiers{Shift: true}.Mask())
	assert.Equal(t, schemas.KeyModifier(15), schemas.Modifiers{Alt: true, Ctrl: true, Meta: true, Shift: true}.Mask())
}

func TestParseModifiers(t *testing.T) {
	m, err := schemas.ParseModifiers("Ctrl + shift")
	require.NoError(t, err)
	assert.Equal(t, schemas.Modifiers{Ctrl: true, Shift: true}, m)

	m, err = schemas.ParseModifiers("")
	require.NoError(t, err)
	assert.Equal(t, schemas.Modifiers{}, m)

	_, err = schemas.ParseModifiers("ctrl+hyper")
	assert.Error(t, err)
}

func TestMouseButton(t *testing.T) {
	b, err := schemas.ParseMouseButton("")
	require.NoError(t, err)
	assert.Equal(t, schemas.ButtonLeft, b)

	b, err = schemas.ParseMouseButton(" Right ")
	require.NoError(t, err)
	assert.Equal(t, schemas.ButtonRight, b)
	assert.Equal(t, int64(2), b.Mask())

	_, err = schemas.ParseMouseButton("thumb")
	assert.Error(t, err)

	assert.Equal(t, int64(4), schemas.ButtonMiddle.Mask())
	assert.Equal(t, int64(0), schemas.ButtonNone.Mask())
	assert.True(t, schemas.MousePress.Valid())
	assert.False(t, schemas.MouseEventType("mouseDown").Valid())
}
