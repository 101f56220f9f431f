package rules

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditSessionLifecycle(t *testing.T) {
	s := NewEditSession()
	assert.Equal(t, StateIdle, s.State())

	s.Edit()
	assert.Equal(t, StateEditing, s.State())

	s.Validating()
	assert.Equal(t, StateValidating, s.State())

	err := s.Submit(context.Background(), func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, s.State())
}

func TestEditSessionSubmitFailure(t *testing.T) {
	s := NewEditSession()
	boom := errors.New("server unavailable")

	err := s.Submit(context.Background(), func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateFailed, s.State())

	// the form stays usable after a failure
	s.Edit()
	assert.Equal(t, StateEditing, s.State())
}

func TestEditSessionSingleInFlightSubmit(t *testing.T) {
	s := NewEditSession()

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Submit(context.Background(), func(context.Context) error {
			atomic.AddInt32(&calls, 1)
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	err := s.Submit(context.Background(), func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "only the first submission runs")
	assert.Equal(t, StateSucceeded, s.State())
}

func TestEditSessionDiscardsLateResponse(t *testing.T) {
	s := NewEditSession()

	inFlight := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	var submitErr error
	go func() {
		defer wg.Done()
		submitErr = s.Submit(context.Background(), func(context.Context) error {
			close(inFlight)
			<-release
			return nil
		})
	}()

	<-inFlight
	s.Close()
	close(release)
	wg.Wait()

	assert.ErrorIs(t, submitErr, ErrSessionClosed)
	assert.NotEqual(t, StateSucceeded, s.State(), "a late success must not apply")
}

func TestEditSessionClosedRejectsEverything(t *testing.T) {
	s := NewEditSession()
	s.Edit()
	s.Close()
	require.True(t, s.Closed())

	err := s.Submit(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrSessionClosed)

	// state transitions are ignored after close
	s.Validating()
	assert.Equal(t, StateEditing, s.State())
}

func TestEditSessionEditIgnoredWhileSubmitting(t *testing.T) {
	s := NewEditSession()

	inFlight := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Submit(context.Background(), func(context.Context) error {
			close(inFlight)
			<-release
			return nil
		})
	}()

	<-inFlight
	s.Edit()
	assert.Equal(t, StateSubmitting, s.State(), "the form is locked while submitting")

	close(release)
	wg.Wait()
}
