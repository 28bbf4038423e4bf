// scan/resolver.go
package scan

import (
	"context"
	"errors"
	"sync"
	"time"

	"toolify/models"

	"go.uber.org/zap"
)

var (
	// ErrNotFound 条码没对上任何工具
	ErrNotFound = errors.New("no tool matches barcode")
	// ErrDuplicateScan 摄像头连续吐出同一条码，本次直接吞掉
	ErrDuplicateScan = errors.New("duplicate scan suppressed")
)

// dedupeTTL 之后同一条码视为新扫描；也作为闲置会话条目的回收期限，
// 避免从不调 reset 的会话把 map 越撑越大
const dedupeTTL = 10 * time.Minute

// ToolLookup 按条码精确查询；最多返回 2 条（够判断唯一性即可），按 id 升序
type ToolLookup interface {
	FindToolsByBarcode(ctx context.Context, code string) ([]models.Tool, error)
}

type lastScan struct {
	code string
	seen time.Time
}

// Resolver 记住每个扫码会话最后见过的条码。连续扫描流里同一条码会
// 反复出现，只有条码变化时才重新查库。
type Resolver struct {
	lookup ToolLookup
	log    *zap.Logger
	now    func() time.Time

	mu        sync.Mutex
	last      map[string]lastScan // sessionID -> 上一次的条码
	lastSweep time.Time
}

func NewResolver(lookup ToolLookup, log *zap.Logger) *Resolver {
	return &Resolver{
		lookup: lookup,
		log:    log,
		now:    time.Now,
		last:   make(map[string]lastScan),
	}
}

func (r *Resolver) Resolve(ctx context.Context, sessionID, code string) (*models.Tool, error) {
	if code == "" {
		return nil, ErrNotFound
	}

	now := r.now()
	r.mu.Lock()
	r.sweepLocked(now)
	if e, ok := r.last[sessionID]; ok && e.code == code && now.Sub(e.seen) < dedupeTTL {
		r.mu.Unlock()
		return nil, ErrDuplicateScan
	}
	r.last[sessionID] = lastScan{code: code, seen: now}
	r.mu.Unlock()

	tools, err := r.lookup.FindToolsByBarcode(ctx, code)
	if err != nil {
		// 查询失败不算“处理过”，放行重试
		r.mu.Lock()
		delete(r.last, sessionID)
		r.mu.Unlock()
		return nil, err
	}
	if len(tools) == 0 {
		return nil, ErrNotFound
	}
	if len(tools) > 1 {
		// 条码本应唯一；撞了就确定性地取最小 id，但要把脏数据暴露出来
		r.log.Warn("barcode matches more than one tool",
			zap.String("barcode", code),
			zap.String("picked", tools[0].ID))
	}
	return &tools[0], nil
}

// sweepLocked 顺手回收过期条目；调用方必须持锁
func (r *Resolver) sweepLocked(now time.Time) {
	if now.Sub(r.lastSweep) < dedupeTTL {
		return
	}
	r.lastSweep = now
	for sid, e := range r.last {
		if now.Sub(e.seen) >= dedupeTTL {
			delete(r.last, sid)
		}
	}
}

// Forget 扫码对话框关闭或会话登出时调用，下次允许重扫同一条码
func (r *Resolver) Forget(sessionID string) {
	r.mu.Lock()
	delete(r.last, sessionID)
	r.mu.Unlock()
}
