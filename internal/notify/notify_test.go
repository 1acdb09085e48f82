package notify

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSender struct {
	failFor map[int64]bool
	sent    []int64
}

func (f *fakeSender) SendText(chatID int64, text string) error {
	if f.failFor[chatID] {
		return errors.New("blocked")
	}
	f.sent = append(f.sent, chatID)
	return nil
}

func TestAdminsContinuePastFailure(t *testing.T) {
	s := &fakeSender{failFor: map[int64]bool{200: true}}
	n := New(s, slog.New(slog.DiscardHandler), []int64{100, 200, 300})

	n.Admins("yangi murojaat")

	assert.Equal(t, []int64{100, 300}, s.sent, "failure of one admin must not stop the rest")
}

func TestUserDeliveryFailureIsSwallowed(t *testing.T) {
	s := &fakeSender{failFor: map[int64]bool{500: true}}
	n := New(s, slog.New(slog.DiscardHandler), nil)

	n.User(500, "qabul qilindi")
	assert.Empty(t, s.sent)

	n.User(600, "qabul qilindi")
	assert.Equal(t, []int64{600}, s.sent)
}
