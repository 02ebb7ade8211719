package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	kb := NewBuilder().
		Row("/help").
		Row().
		Column("a", "", "b").
		Build()

	assert.True(t, kb.ResizeKeyboard)
	assert.Len(t, kb.Keyboard, 3)
	assert.Equal(t, "/help", kb.Keyboard[0][0].Text)
	assert.Equal(t, "a", kb.Keyboard[1][0].Text)
	assert.Equal(t, "b", kb.Keyboard[2][0].Text)
}
