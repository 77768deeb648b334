package operator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/neofin-server/internal/storage"
)

type fakeCommitter struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
	commitErr error
}

func (f *fakeCommitter) Commit(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commits++
	return f.commitErr
}

func (f *fakeCommitter) Rollback(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rollbacks++
	return nil
}

type fakeSource struct {
	committer *fakeCommitter
	err       error
}

func (f *fakeSource) Write(context.Context) (*storage.Writer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return storage.NewWriterFor(f.committer, nil, nil, nil), nil
}

type funcAction func(ctx context.Context, writer *storage.Writer) error

func (f funcAction) Perform(ctx context.Context, writer *storage.Writer) error {
	return f(ctx, writer)
}

func startDelegator(t *testing.T, source WriterSource) *OperatorDelegator {
	d := NewOperatorDelegator(source, 2)
	d.Start()
	t.Cleanup(d.Stop)
	return d
}

func TestProcess_CommitsOnSuccess(t *testing.T) {
	committer := &fakeCommitter{}
	d := startDelegator(t, &fakeSource{committer: committer})

	performed := false
	err := d.Process(context.Background(), funcAction(func(ctx context.Context, writer *storage.Writer) error {
		performed = true
		return nil
	}))

	require.NoError(t, err)
	assert.True(t, performed)
	assert.Equal(t, 1, committer.commits)
	assert.Equal(t, 0, committer.rollbacks)
}

func TestProcess_RollsBackOnActionError(t *testing.T) {
	committer := &fakeCommitter{}
	d := startDelegator(t, &fakeSource{committer: committer})
	boom := errors.New("boom")

	err := d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		return boom
	}))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, committer.commits)
	assert.Equal(t, 1, committer.rollbacks)
}

func TestProcess_CommitFailure(t *testing.T) {
	commitErr := errors.New("serialization failure")
	committer := &fakeCommitter{commitErr: commitErr}
	d := startDelegator(t, &fakeSource{committer: committer})

	err := d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		return nil
	}))

	assert.ErrorIs(t, err, commitErr)
}

func TestProcess_WriterUnavailable(t *testing.T) {
	connErr := errors.New("connection refused")
	d := startDelegator(t, &fakeSource{err: connErr})

	performed := false
	err := d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		performed = true
		return nil
	}))

	assert.ErrorIs(t, err, connErr)
	assert.False(t, performed)
}

func TestProcess_CancelledContext(t *testing.T) {
	d := startDelegator(t, &fakeSource{committer: &fakeCommitter{}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Process(ctx, funcAction(func(context.Context, *storage.Writer) error {
		return nil
	}))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcess_AfterStop(t *testing.T) {
	d := NewOperatorDelegator(&fakeSource{committer: &fakeCommitter{}}, 1)
	d.Start()
	d.Stop()
	d.Stop()

	err := d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		return nil
	}))

	assert.ErrorIs(t, err, ErrStopped)
}
