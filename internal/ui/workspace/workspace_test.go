package workspace

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/leapstack-labs/leapcheck/internal/dataset"
	"github.com/leapstack-labs/leapcheck/internal/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(loads *int) *Manager {
	return NewManager(
		func(context.Context) (*dataset.Table, error) {
			if loads != nil {
				*loads++
			}
			return dataset.New([]string{"column_1"}, nil), nil
		},
		func() (expect.Suite, error) {
			return testSuite(), nil
		},
	)
}

func testSuite() expect.Suite {
	return expect.Suite{}.Add(expect.Entry{
		Check:  "expect_column_values_to_be_unique",
		Column: "column_1",
	})
}

func TestGetCreatesOncePerSession(t *testing.T) {
	var loads int
	m := newTestManager(&loads)
	ctx := context.Background()

	w1, err := m.Get(ctx, "session-a")
	require.NoError(t, err)
	w2, err := m.Get(ctx, "session-a")
	require.NoError(t, err)

	assert.Same(t, w1, w2)
	assert.Equal(t, 1, loads)
	assert.Equal(t, 1, m.Count())

	_, err = m.Get(ctx, "session-b")
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
	assert.Equal(t, 2, m.Count())
}

func TestGetIsolatesSessions(t *testing.T) {
	m := newTestManager(nil)
	ctx := context.Background()

	wa, err := m.Get(ctx, "a")
	require.NoError(t, err)
	wb, err := m.Get(ctx, "b")
	require.NoError(t, err)

	wa.Table.AppendRow()
	assert.Equal(t, 1, wa.Table.NumRows())
	assert.Equal(t, 0, wb.Table.NumRows())
}

func TestReset(t *testing.T) {
	var loads int
	m := newTestManager(&loads)
	ctx := context.Background()

	w1, err := m.Get(ctx, "a")
	require.NoError(t, err)
	w1.Table.AppendRow()

	m.Reset("a")

	w2, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.NotSame(t, w1, w2)
	assert.Equal(t, 0, w2.Table.NumRows())
	assert.Equal(t, 2, loads)
}

func TestInvalidateDropsAll(t *testing.T) {
	m := newTestManager(nil)
	ctx := context.Background()

	_, err := m.Get(ctx, "a")
	require.NoError(t, err)
	_, err = m.Get(ctx, "b")
	require.NoError(t, err)

	m.Invalidate()
	assert.Equal(t, 0, m.Count())
}

// Edits and suite evaluations race on one workspace: the SSE stream renders
// while edit requests mutate. The workspace lock must serialize them (run
// with -race).
func TestWorkspaceLockSerializesEditsAndReads(t *testing.T) {
	m := newTestManager(nil)
	ws, err := m.Get(context.Background(), "a")
	require.NoError(t, err)

	const writers, iterations = 4, 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				ws.Lock()
				ws.Table.AppendRow()
				ws.Unlock()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				ws.Lock()
				_, runErr := expect.Run(ws.Table, ws.Suite)
				ws.Unlock()
				assert.NoError(t, runErr)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, writers*iterations, ws.Table.NumRows())
}

func TestGetPropagatesLoadError(t *testing.T) {
	wantErr := errors.New("load failed")
	m := NewManager(
		func(context.Context) (*dataset.Table, error) { return nil, wantErr },
		func() (expect.Suite, error) { return nil, nil },
	)

	_, err := m.Get(context.Background(), "a")
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 0, m.Count())
}
