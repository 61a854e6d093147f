package store

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pkg/conv"
)

// PopularEntry 是热门榜快照中的一条记录。
type PopularEntry struct {
	ArticleID int64
	Title     string
	Count     int
}

// TitlesKey 返回热门榜对应的标题哈希表 key。
func TitlesKey(key string) string { return key + ":titles" }

// popularityScore 把名次编码进分数的小数部分：整数部分是交互次数，
// 小数部分随名次递减，使 ZRange 的顺序与发布顺序完全一致。
func popularityScore(count, rank, total int) float64 {
	return float64(count) + float64(total-rank)/float64(total+1)
}

func countFromScore(score float64) int {
	return int(math.Floor(score))
}

// PublishPopularity 用 entries（已排好序）覆盖 key 对应的热门榜快照：
// 有序集合 key 保存排序，哈希表 TitlesKey(key) 保存标题。
// RedisStore 在一个事务 pipeline 中完成替换。
func PublishPopularity(ctx context.Context, kv core.KeyValueStore, key string, entries []PopularEntry) error {
	if key == "" {
		return core.NewInvalidInputError(core.ModuleStore, "store: empty popularity key")
	}
	titles := TitlesKey(key)

	if rs, ok := kv.(*RedisStore); ok {
		return rs.Pipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key, titles)
			for i, e := range entries {
				member := strconv.FormatInt(e.ArticleID, 10)
				pipe.ZAdd(ctx, key, redis.Z{Score: popularityScore(e.Count, i, len(entries)), Member: member})
				pipe.HSet(ctx, titles, member, e.Title)
			}
			return nil
		})
	}

	if err := kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("store: reset %s: %w", key, err)
	}
	if err := kv.Delete(ctx, titles); err != nil {
		return fmt.Errorf("store: reset %s: %w", titles, err)
	}
	for i, e := range entries {
		member := strconv.FormatInt(e.ArticleID, 10)
		if err := kv.ZAdd(ctx, key, popularityScore(e.Count, i, len(entries)), member); err != nil {
			return fmt.Errorf("store: zadd %s: %w", key, err)
		}
		if err := kv.HSet(ctx, titles, member, []byte(e.Title)); err != nil {
			return fmt.Errorf("store: hset %s: %w", titles, err)
		}
	}
	return nil
}

// LoadPopularity 读取前 n 条热门榜快照，n <= 0 读取全部。
// 快照不存在时返回空结果。
func LoadPopularity(ctx context.Context, kv core.KeyValueStore, key string, n int) ([]PopularEntry, error) {
	stop := int64(n) - 1
	if n <= 0 {
		stop = -1
	}
	members, err := kv.ZRange(ctx, key, 0, stop)
	if err != nil {
		return nil, fmt.Errorf("store: zrange %s: %w", key, err)
	}
	if len(members) == 0 {
		return []PopularEntry{}, nil
	}
	titles, err := kv.HGetAll(ctx, TitlesKey(key))
	if err != nil {
		return nil, fmt.Errorf("store: hgetall %s: %w", TitlesKey(key), err)
	}

	out := make([]PopularEntry, 0, len(members))
	for _, member := range members {
		id, err := conv.ParseArticleID(member)
		if err != nil {
			return nil, fmt.Errorf("store: bad member %q in %s: %w", member, key, err)
		}
		score, err := kv.ZScore(ctx, key, member)
		if err != nil {
			return nil, fmt.Errorf("store: zscore %s: %w", key, err)
		}
		out = append(out, PopularEntry{
			ArticleID: id,
			Title:     string(titles[member]),
			Count:     countFromScore(score),
		})
	}
	return out, nil
}
