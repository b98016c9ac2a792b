package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from Screen
		ev   Event
		want Screen
	}{
		{ScreenMain, EventStart, ScreenTyping},
		{ScreenMain, EventShowResults, ScreenGlobalResult},
		{ScreenMain, EventQuit, ScreenExiting},
		{ScreenMain, EventBack, ScreenMain},
		{ScreenTyping, EventFinished, ScreenTypingResult},
		{ScreenTyping, EventBack, ScreenMain},
		{ScreenTypingResult, EventContinue, ScreenTyping},
		{ScreenTypingResult, EventRetry, ScreenTyping},
		{ScreenTypingResult, EventQuit, ScreenMain},
		{ScreenGlobalResult, EventLetter, ScreenLetterResult},
		{ScreenGlobalResult, EventBack, ScreenMain},
		{ScreenLetterResult, EventLetter, ScreenLetterResult},
		{ScreenLetterResult, EventBack, ScreenGlobalResult},
		{ScreenExiting, EventConfirm, ScreenClosed},
		{ScreenExiting, EventCancel, ScreenMain},
		{ScreenClosed, EventStart, ScreenClosed},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Transition(tc.from, tc.ev), "from %d on %d", tc.from, tc.ev)
	}
}

func TestNavigatorAlertReturnsToPrevious(t *testing.T) {
	n := NewNavigator()
	n.Apply(EventStart)
	assert.Equal(t, ScreenAlert, n.Apply(EventAlert))
	assert.Equal(t, ScreenAlert, n.Apply(EventStart))
	assert.Equal(t, ScreenTyping, n.Apply(EventDismiss))
	assert.Equal(t, ScreenMain, n.Apply(EventBack))
}

func TestHintsCoverEveryScreen(t *testing.T) {
	for s := ScreenMain; s < ScreenClosed; s++ {
		assert.NotEmpty(t, hints(s), "screen %d", s)
		assert.NotEmpty(t, s.Title(), "screen %d", s)
	}
	assert.Equal(t, "main screen", hints(ScreenTypingResult)[2].Help().Desc)
	assert.Equal(t, "exit", keys.Quit.Help().Desc)
}
