package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()

	// новый чат — пустая сессия в StateIdle
	sess := s.Get(42)
	assert.Equal(t, int64(42), sess.ChatID)
	assert.Equal(t, StateIdle, sess.State)

	sess.State = StateFullName
	sess.Draft.Phone = "+998901234567"
	s.Set(sess)

	got := s.Get(42)
	assert.Equal(t, StateFullName, got.State)
	assert.Equal(t, "+998901234567", got.Draft.Phone)

	// Get отдаёт копию: правка копии не меняет хранилище
	got.Draft.Phone = "other"
	assert.Equal(t, "+998901234567", s.Get(42).Draft.Phone)

	s.Reset(42)
	assert.Equal(t, StateIdle, s.Get(42).State)
	assert.Empty(t, s.Get(42).Draft.Phone)
}

func TestStoreIndependentChats(t *testing.T) {
	s := NewStore()
	s.Set(Session{ChatID: 1, State: StateText})
	s.Set(Session{ChatID: 2, State: StateMedia})

	assert.Equal(t, StateText, s.Get(1).State)
	assert.Equal(t, StateMedia, s.Get(2).State)

	s.Reset(1)
	assert.Equal(t, StateIdle, s.Get(1).State)
	assert.Equal(t, StateMedia, s.Get(2).State)
}
