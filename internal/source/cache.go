package source

import (
	"sync"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
)

// Cache 会话级数据集缓存
// 输入表在一次分析会话内视为静态，缓存只是性能上的便利，不承担正确性职责
type Cache interface {
	Get(year string, variant model.FileVariant) (*model.YearDataset, bool)
	Put(ds *model.YearDataset)
	Invalidate()
}

type cacheKey struct {
	year    string
	variant model.FileVariant
}

// MemoryCache 进程内缓存，按 (年份, 文件变体) 作键
type MemoryCache struct {
	mu    sync.RWMutex
	items map[cacheKey]*model.YearDataset
}

// NewMemoryCache 创建内存缓存
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[cacheKey]*model.YearDataset),
	}
}

// Get 读取缓存
func (c *MemoryCache) Get(year string, variant model.FileVariant) (*model.YearDataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ds, ok := c.items[cacheKey{year: year, variant: variant}]
	return ds, ok
}

// Put 写入缓存
func (c *MemoryCache) Put(ds *model.YearDataset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[cacheKey{year: ds.Year, variant: ds.Variant}] = ds
}

// Invalidate 清空缓存（数据目录重扫后调用）
func (c *MemoryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[cacheKey]*model.YearDataset)
}

// nopCache 不缓存
type nopCache struct{}

func (nopCache) Get(string, model.FileVariant) (*model.YearDataset, bool) { return nil, false }
func (nopCache) Put(*model.YearDataset)                                  {}
func (nopCache) Invalidate()                                             {}

// NopCache 返回不做任何缓存的实现
func NopCache() Cache {
	return nopCache{}
}
