package rebuild_test

import (
	"context"
	"sync/atomic"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/kiln/internal/engine/rebuild"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// quietLogger returns a logger mock that fails the test on any Warn call.
func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	return mocks.NewMockLogger(ctrl)
}

func TestCoordinator_InitialState(t *testing.T) {
	c := rebuild.NewCoordinator(func(context.Context) error { return nil }, quietLogger(t))
	assert.Equal(t, rebuild.StateIdle, c.State())
}

func TestCoordinator_SequentialRequests(t *testing.T) {
	var calls atomic.Int32
	c := rebuild.NewCoordinator(func(context.Context) error {
		calls.Add(1)
		return nil
	}, quietLogger(t))

	require.NoError(t, c.Request(context.Background()))
	require.Equal(t, rebuild.StateIdle, c.State())

	require.NoError(t, c.Request(context.Background()))
	require.Equal(t, rebuild.StateIdle, c.State())
	assert.EqualValues(t, 2, calls.Load())
}

func TestCoordinator_BurstCollapsesIntoOneFollowUp(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var started atomic.Int32
		release := make(chan struct{})
		build := func(context.Context) error {
			started.Add(1)
			<-release
			return nil
		}
		c := rebuild.NewCoordinator(build, quietLogger(t))

		results := make(chan error, 5)
		go func() { results <- c.Request(context.Background()) }()
		synctest.Wait()
		require.Equal(t, rebuild.StateRunning, c.State())
		require.EqualValues(t, 1, started.Load())

		// A burst while the build runs collapses into the single queued slot.
		for range 4 {
			go func() { results <- c.Request(context.Background()) }()
		}
		synctest.Wait()
		require.Equal(t, rebuild.StateRunningQueued, c.State())
		require.EqualValues(t, 1, started.Load())

		release <- struct{}{}
		synctest.Wait()
		require.EqualValues(t, 2, started.Load())
		require.Equal(t, rebuild.StateRunning, c.State())
		require.NoError(t, <-results)

		release <- struct{}{}
		synctest.Wait()
		for range 4 {
			require.NoError(t, <-results)
		}
		require.Equal(t, rebuild.StateIdle, c.State())

		// Five requests, two builds, never a third.
		assert.EqualValues(t, 2, started.Load())
	})
}

func TestCoordinator_QueueReopensAfterPromotion(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var started atomic.Int32
		release := make(chan struct{})
		build := func(context.Context) error {
			started.Add(1)
			<-release
			return nil
		}
		c := rebuild.NewCoordinator(build, quietLogger(t))

		results := make(chan error, 3)
		go func() { results <- c.Request(context.Background()) }()
		synctest.Wait()

		go func() { results <- c.Request(context.Background()) }()
		synctest.Wait()
		require.Equal(t, rebuild.StateRunningQueued, c.State())

		// First build done: the follow-up is promoted and the slot frees up
		// for the next trigger.
		release <- struct{}{}
		synctest.Wait()
		require.NoError(t, <-results)
		require.Equal(t, rebuild.StateRunning, c.State())

		go func() { results <- c.Request(context.Background()) }()
		synctest.Wait()
		require.Equal(t, rebuild.StateRunningQueued, c.State())
		require.EqualValues(t, 2, started.Load())

		release <- struct{}{}
		synctest.Wait()
		require.NoError(t, <-results)

		release <- struct{}{}
		synctest.Wait()
		require.NoError(t, <-results)
		require.Equal(t, rebuild.StateIdle, c.State())
		assert.EqualValues(t, 3, started.Load())
	})
}

func TestCoordinator_FailurePropagation(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		errFirst := zerr.New("compiler exited with code 1")
		errSecond := zerr.New("linker ran out of memory")

		var calls atomic.Int32
		release := make(chan error)
		build := func(context.Context) error {
			calls.Add(1)
			return <-release
		}
		c := rebuild.NewCoordinator(build, quietLogger(t))

		first := make(chan error, 1)
		go func() { first <- c.Request(context.Background()) }()
		synctest.Wait()

		coalesced := make(chan error, 3)
		for range 3 {
			go func() { coalesced <- c.Request(context.Background()) }()
		}
		synctest.Wait()
		require.Equal(t, rebuild.StateRunningQueued, c.State())

		// The failure reaches the first requester only; the queued follow-up
		// still starts.
		release <- errFirst
		synctest.Wait()
		require.ErrorIs(t, <-first, errFirst)
		require.Equal(t, rebuild.StateRunning, c.State())

		// The follow-up failure reaches every coalesced waiter.
		release <- errSecond
		synctest.Wait()
		for range 3 {
			require.ErrorIs(t, <-coalesced, errSecond)
		}
		require.Equal(t, rebuild.StateIdle, c.State())

		// A failed build does not poison the coordinator.
		next := make(chan error, 1)
		go func() { next <- c.Request(context.Background()) }()
		synctest.Wait()
		require.Equal(t, rebuild.StateRunning, c.State())

		release <- nil
		synctest.Wait()
		require.NoError(t, <-next)
		assert.EqualValues(t, 3, calls.Load())
	})
}

func TestCoordinator_BuildOutlivesTrigger(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		release := make(chan struct{})
		build := func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-release:
				return nil
			}
		}
		c := rebuild.NewCoordinator(build, quietLogger(t))

		ctx, cancel := context.WithCancel(context.Background())
		result := make(chan error, 1)
		go func() { result <- c.Request(ctx) }()
		synctest.Wait()
		require.Equal(t, rebuild.StateRunning, c.State())

		// Canceling the trigger context does not reach the started build.
		cancel()
		synctest.Wait()
		require.Equal(t, rebuild.StateRunning, c.State())

		release <- struct{}{}
		synctest.Wait()
		require.NoError(t, <-result)
		require.Equal(t, rebuild.StateIdle, c.State())
	})
}

func TestCoordinator_AccountingWarning(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "out of bounds")
	}).Times(1)

	c := rebuild.NewCoordinator(func(context.Context) error { return nil }, logger)

	// Corrupt the ledger; the next completion detects the violation, warns
	// once, and self-corrects instead of failing.
	c.SetInFlight(2)
	require.NoError(t, c.Request(context.Background()))
	require.Equal(t, rebuild.StateIdle, c.State())

	// Subsequent requests run clean.
	require.NoError(t, c.Request(context.Background()))
	require.Equal(t, rebuild.StateIdle, c.State())
}
