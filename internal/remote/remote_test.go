package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/qmaze/internal/core"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestEventJSONContract(t *testing.T) {
	var evt Event
	require.NoError(t, json.Unmarshal([]byte(`{"type":"direction","state":{"up":true,"down":false,"left":false,"right":true}}`), &evt))
	require.NoError(t, evt.Validate())
	assert.Equal(t, TypeDirection, evt.Type)
	assert.Equal(t, core.DirectionalState{Up: true, Right: true}, *evt.State)

	require.NoError(t, json.Unmarshal([]byte(`{"type":"button","key":"pause"}`), &evt))
	require.NoError(t, evt.Validate())
	assert.Equal(t, ButtonPause, evt.Key)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		evt  Event
		ok   bool
	}{
		{"direction", DirectionEvent(core.DirectionalState{Left: true}), true},
		{"select", ButtonEvent(ButtonSelect), true},
		{"direction without state", Event{Type: TypeDirection}, false},
		{"unknown button", ButtonEvent("turbo"), false},
		{"unknown type", Event{Type: "tilt"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.evt.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrInvalidEvent))
			}
		})
	}
}

func TestStreamDropsOldest(t *testing.T) {
	s := NewStream(2)
	s.Send(ButtonEvent(ButtonSelect))
	s.Send(ButtonEvent(ButtonPause))
	s.Send(DirectionEvent(core.DirectionalState{Up: true}))

	got := s.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, ButtonPause, got[0].Key)
	assert.Equal(t, TypeDirection, got[1].Type)
	assert.Equal(t, uint64(1), s.Dropped())
	assert.Empty(t, s.Drain())
}

func TestStreamClosedIgnoresSend(t *testing.T) {
	s := NewStream(0)
	s.Close()
	s.Close()
	s.Send(ButtonEvent(ButtonSelect))
	assert.Empty(t, s.Drain())

	select {
	case <-s.Done():
	default:
		t.Fatal("Done should be closed")
	}
}

func TestFeedSkipsBadLines(t *testing.T) {
	input := strings.Join([]string{
		`{"type":"direction","state":{"up":false,"down":true,"left":false,"right":false}}`,
		`not json`,
		``,
		`{"type":"button","key":"select"}`,
		`{"type":"button","key":"nope"}`,
	}, "\n")

	s := NewStream(8)
	err := Feed(context.Background(), strings.NewReader(input), s, quietLogger())
	require.NoError(t, err)

	got := s.Drain()
	require.Len(t, got, 2)
	assert.True(t, got[0].State.Down)
	assert.Equal(t, ButtonSelect, got[1].Key)
}

func TestFeedStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Feed(ctx, pr, NewStream(4), quietLogger())
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Feed did not return after cancel")
	}
}

func TestFollowFileMissing(t *testing.T) {
	err := FollowFile(context.Background(), "/nonexistent/qmaze.fifo", NewStream(1), quietLogger())
	assert.Error(t, err)
}
