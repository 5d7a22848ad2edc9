package database

import (
	"github.com/ds124wfegd/image-resizer/internal/entity"
	lru "github.com/hashicorp/golang-lru"
)

// ResizeCache stores encoded results keyed by source content and target box.
type ResizeCache interface {
	Get(key string) (*entity.ResizeResult, bool)
	Add(key string, result *entity.ResizeResult)
	Len() int
}

type lruResizeCache struct {
	cache *lru.Cache
}
