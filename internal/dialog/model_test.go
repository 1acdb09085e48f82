package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davron-dev/murojaat-bot/internal/domain/appeals"
)

func TestNextPrev(t *testing.T) {
	tests := []struct {
		from     State
		next     State
		nextOK   bool
		prev     State
		prevOK   bool
	}{
		{StatePhone, StateFullName, true, StatePhone, false},
		{StateFullName, StateAddress, true, StatePhone, true},
		{StateAddress, StateDomkom, true, StateFullName, true},
		{StateDomkom, StateText, true, StateAddress, true},
		{StateText, StateMedia, true, StateDomkom, true},
		{StateMedia, StatePreview, true, StateText, true},
		{StatePreview, StatePreview, false, StateMedia, true},
		{StateIdle, StateIdle, false, StateIdle, false},
		{StateAwaitComment, StateAwaitComment, false, StateAwaitComment, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			next, ok := Next(tt.from)
			assert.Equal(t, tt.nextOK, ok)
			assert.Equal(t, tt.next, next)

			prev, ok := Prev(tt.from)
			assert.Equal(t, tt.prevOK, ok)
			assert.Equal(t, tt.prev, prev)
		})
	}
}

func TestIsFormState(t *testing.T) {
	assert.True(t, IsFormState(StatePhone))
	assert.True(t, IsFormState(StatePreview))
	assert.False(t, IsFormState(StateIdle))
	assert.False(t, IsFormState(StateAwaitUserID))
	assert.False(t, IsFormState(StateAwaitComment))
}

func TestDraftClearStep(t *testing.T) {
	d := Draft{
		Phone:    "+998901234567",
		FullName: "Aliyev Ali",
		Address:  "Toshkent",
		Domkom:   "MFI-12",
		Text:     "matn",
		Media:    []MediaRef{{Path: "a.jpg", Type: appeals.FilePhoto}},
	}

	d.ClearStep(StateText)
	assert.Empty(t, d.Text)
	assert.Equal(t, "Aliyev Ali", d.FullName, "other steps untouched")

	d.ClearStep(StateMedia)
	assert.Nil(t, d.Media)

	d.ClearStep(StatePhone)
	assert.Empty(t, d.Phone)
}
