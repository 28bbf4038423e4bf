package scan

import (
	"context"
	"errors"
	"testing"
	"time"

	"toolify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLookup struct {
	tools map[string][]models.Tool
	err   error
	calls int
}

func (f *fakeLookup) FindToolsByBarcode(ctx context.Context, code string) ([]models.Tool, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tools[code], nil
}

func TestResolveExactMatch(t *testing.T) {
	lookup := &fakeLookup{tools: map[string][]models.Tool{
		"bc-1": {{ID: "tool-1", Name: "Drill"}},
	}}
	r := NewResolver(lookup, zap.NewNop())

	tool, err := r.Resolve(context.Background(), "sess", "bc-1")
	require.NoError(t, err)
	assert.Equal(t, "tool-1", tool.ID)
	assert.Equal(t, 1, lookup.calls)
}

func TestResolveNotFound(t *testing.T) {
	lookup := &fakeLookup{tools: map[string][]models.Tool{}}
	r := NewResolver(lookup, zap.NewNop())

	_, err := r.Resolve(context.Background(), "sess", "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveEmptyCode(t *testing.T) {
	lookup := &fakeLookup{}
	r := NewResolver(lookup, zap.NewNop())

	_, err := r.Resolve(context.Background(), "sess", "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, lookup.calls)
}

func TestResolveSuppressesRepeatedCode(t *testing.T) {
	lookup := &fakeLookup{tools: map[string][]models.Tool{
		"bc-1": {{ID: "tool-1"}},
		"bc-2": {{ID: "tool-2"}},
	}}
	r := NewResolver(lookup, zap.NewNop())
	ctx := context.Background()

	_, err := r.Resolve(ctx, "sess", "bc-1")
	require.NoError(t, err)

	// 同一会话里紧跟的同一条码被吞掉，且不查库
	_, err = r.Resolve(ctx, "sess", "bc-1")
	assert.ErrorIs(t, err, ErrDuplicateScan)
	assert.Equal(t, 1, lookup.calls)

	// 条码变了就重新处理
	tool, err := r.Resolve(ctx, "sess", "bc-2")
	require.NoError(t, err)
	assert.Equal(t, "tool-2", tool.ID)

	// 变回来也算新扫描
	tool, err = r.Resolve(ctx, "sess", "bc-1")
	require.NoError(t, err)
	assert.Equal(t, "tool-1", tool.ID)
}

func TestResolveSessionsAreIndependent(t *testing.T) {
	lookup := &fakeLookup{tools: map[string][]models.Tool{
		"bc-1": {{ID: "tool-1"}},
	}}
	r := NewResolver(lookup, zap.NewNop())
	ctx := context.Background()

	_, err := r.Resolve(ctx, "sess-a", "bc-1")
	require.NoError(t, err)

	// 另一个会话扫同一条码不受影响
	_, err = r.Resolve(ctx, "sess-b", "bc-1")
	assert.NoError(t, err)
}

func TestForgetAllowsRescan(t *testing.T) {
	lookup := &fakeLookup{tools: map[string][]models.Tool{
		"bc-1": {{ID: "tool-1"}},
	}}
	r := NewResolver(lookup, zap.NewNop())
	ctx := context.Background()

	_, err := r.Resolve(ctx, "sess", "bc-1")
	require.NoError(t, err)

	r.Forget("sess")

	_, err = r.Resolve(ctx, "sess", "bc-1")
	assert.NoError(t, err)
	assert.Equal(t, 2, lookup.calls)
}

func TestResolveLookupErrorDoesNotSuppressRetry(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("db down")}
	r := NewResolver(lookup, zap.NewNop())
	ctx := context.Background()

	_, err := r.Resolve(ctx, "sess", "bc-1")
	require.Error(t, err)

	// 失败的扫描不算处理过，同一条码的重试要再查一次
	lookup.err = nil
	lookup.tools = map[string][]models.Tool{"bc-1": {{ID: "tool-1"}}}
	tool, err := r.Resolve(ctx, "sess", "bc-1")
	require.NoError(t, err)
	assert.Equal(t, "tool-1", tool.ID)
}

func TestResolveDedupeExpires(t *testing.T) {
	lookup := &fakeLookup{tools: map[string][]models.Tool{
		"bc-1": {{ID: "tool-1"}},
	}}
	r := NewResolver(lookup, zap.NewNop())
	ctx := context.Background()

	clock := time.Now()
	r.now = func() time.Time { return clock }

	_, err := r.Resolve(ctx, "sess", "bc-1")
	require.NoError(t, err)
	_, err = r.Resolve(ctx, "sess", "bc-1")
	assert.ErrorIs(t, err, ErrDuplicateScan)

	// 过了去重窗口，同一条码算新扫描
	clock = clock.Add(dedupeTTL + time.Second)
	_, err = r.Resolve(ctx, "sess", "bc-1")
	assert.NoError(t, err)
	assert.Equal(t, 2, lookup.calls)
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	lookup := &fakeLookup{tools: map[string][]models.Tool{
		"bc-1": {{ID: "tool-1"}},
	}}
	r := NewResolver(lookup, zap.NewNop())
	ctx := context.Background()

	clock := time.Now()
	r.now = func() time.Time { return clock }

	// 一批会话扫完就消失，从不调 reset
	for _, sid := range []string{"sess-a", "sess-b", "sess-c"} {
		_, err := r.Resolve(ctx, sid, "bc-1")
		require.NoError(t, err)
	}
	assert.Len(t, r.last, 3)

	clock = clock.Add(dedupeTTL + time.Second)
	_, err := r.Resolve(ctx, "sess-new", "bc-1")
	require.NoError(t, err)

	// 过期条目被顺手清掉，只剩刚扫的
	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Len(t, r.last, 1)
	_, ok := r.last["sess-new"]
	assert.True(t, ok)
}

func TestResolveDuplicateBarcodePicksLowestID(t *testing.T) {
	// lookup 承诺按 id 升序返回
	lookup := &fakeLookup{tools: map[string][]models.Tool{
		"bc-dup": {{ID: "tool-1"}, {ID: "tool-2"}},
	}}
	r := NewResolver(lookup, zap.NewNop())

	tool, err := r.Resolve(context.Background(), "sess", "bc-dup")
	require.NoError(t, err)
	assert.Equal(t, "tool-1", tool.ID)
}
