package filter

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/rushteam/artrec/core"
)

// BlacklistFilter 是黑名单过滤器，过滤掉黑名单中的文章。
type BlacklistFilter struct {
	// ItemIDs 是内存中的黑名单文章 ID
	ItemIDs []int64

	// Store 用于从存储中读取黑名单（可选），值为 JSON 数组，例如 [1430, 1314]
	Store core.Store

	// Key 是 Store 中的黑名单 key（可选）
	Key string

	ids map[int64]struct{}
}

// NewBlacklistFilter 创建一个黑名单过滤器。
func NewBlacklistFilter(itemIDs []int64, store core.Store, key string) *BlacklistFilter {
	ids := make(map[int64]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		ids[id] = struct{}{}
	}
	return &BlacklistFilter{
		ItemIDs: itemIDs,
		Store:   store,
		Key:     key,
		ids:     ids,
	}
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	if f.ids != nil {
		if _, ok := f.ids[item.ID]; ok {
			return true, nil
		}
	} else {
		for _, id := range f.ItemIDs {
			if item.ID == id {
				return true, nil
			}
		}
	}

	if f.Store != nil && f.Key != "" {
		data, err := f.Store.Get(ctx, f.Key)
		if err != nil {
			if core.IsStoreNotFound(err) {
				return false, nil
			}
			return false, err
		}
		var blacklist []int64
		if err := json.Unmarshal(data, &blacklist); err != nil {
			return false, err
		}
		for _, id := range blacklist {
			if item.ID == id {
				return true, nil
			}
		}
	}

	return false, nil
}
