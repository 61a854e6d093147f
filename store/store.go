// Package store 提供 core.Store / core.KeyValueStore 的实现：
//
//	var kv core.KeyValueStore = store.NewMemoryStore()
//	kv, err := store.NewRedisStore("localhost:6379", 0)
//
// 以及把引擎离线结果（热门榜）发布到 KV 的工具函数。
package store

import "github.com/rushteam/artrec/core"

// ErrNotFound 是 core.ErrStoreNotFound 的别名，便于包内使用。
var ErrNotFound = core.ErrStoreNotFound
