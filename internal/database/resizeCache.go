package database

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/ds124wfegd/image-resizer/internal/entity"
	lru "github.com/hashicorp/golang-lru"
)

func NewResizeCache(size int) (ResizeCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &lruResizeCache{cache: cache}, nil
}

func (r *lruResizeCache) Get(key string) (*entity.ResizeResult, bool) {
	value, ok := r.cache.Get(key)
	if !ok {
		return nil, false
	}

	cached, ok := value.(*entity.ResizeResult)
	if !ok {
		return nil, false
	}

	// копия, чтобы вызывающий не пометил закэшированное значение
	result := *cached
	result.Cached = true
	return &result, true
}

func (r *lruResizeCache) Add(key string, result *entity.ResizeResult) {
	stored := *result
	stored.Cached = false
	r.cache.Add(key, &stored)
}

func (r *lruResizeCache) Len() int {
	return r.cache.Len()
}

// CacheKey identifies a resize by the source bytes, its declared content
// type and the target box.
func CacheKey(req entity.ResizeRequest) string {
	hash := sha256.Sum256(req.Image.Data)
	return fmt.Sprintf("%s:%s:%dx%d", hex.EncodeToString(hash[:]), req.Image.ContentType(), req.Width, req.Height)
}
