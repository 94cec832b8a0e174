package repository

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/r-kabir-rafi/bracu-socials/internal/model"
)

// SnapshotCache 课表快照缓存后端（pkg/redis.Client 实现该接口）
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// MGet 一次读取多个键，结果与 keys 一一对应，未命中位置为 nil
	MGet(ctx context.Context, keys ...string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const snapshotKeyPrefix = "schedule:snapshot:"

func snapshotKey(userID string) string { return snapshotKeyPrefix + userID }

// ── 读穿透缓存 ──────────────────────────────────────────────
//
// 课表由外部模块维护，这里只做短 TTL 的快照缓存：
//   - 命中直接返回，未命中回源并回填
//   - 缓存读写失败只记日志，不影响结果
//   - 空课表同样缓存（空数组），避免无课用户反复回源
// ─────────────────────────────────────────────────────────────

type cachedScheduleEntryRepo struct {
	base   ScheduleEntryRepository
	cache  SnapshotCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedScheduleEntryRepo 为 base 加上快照缓存
func NewCachedScheduleEntryRepo(base ScheduleEntryRepository, cache SnapshotCache, ttl time.Duration, logger *zap.Logger) ScheduleEntryRepository {
	return &cachedScheduleEntryRepo{base: base, cache: cache, ttl: ttl, logger: logger}
}

func (r *cachedScheduleEntryRepo) ListByUser(ctx context.Context, userID string) ([]model.ScheduleEntry, error) {
	if entries, ok := r.lookup(ctx, userID); ok {
		return entries, nil
	}
	entries, err := r.base.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	r.store(ctx, userID, entries)
	return entries, nil
}

func (r *cachedScheduleEntryRepo) ListByUsers(ctx context.Context, userIDs []string) ([]model.ScheduleEntry, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = snapshotKey(id)
	}
	raws, err := r.cache.MGet(ctx, keys...)
	if err != nil || len(raws) != len(keys) {
		r.logger.Warn("批量读取课表快照缓存失败", zap.Error(err), zap.Int("users", len(userIDs)))
		raws = make([][]byte, len(keys))
	}

	var result []model.ScheduleEntry
	var missing []string
	for i, id := range userIDs {
		if entries, ok := r.decode(id, raws[i]); ok {
			result = append(result, entries...)
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return result, nil
	}

	fetched, err := r.base.ListByUsers(ctx, missing)
	if err != nil {
		return nil, err
	}
	byUser := make(map[string][]model.ScheduleEntry, len(missing))
	for _, e := range fetched {
		byUser[e.UserID] = append(byUser[e.UserID], e)
	}
	for _, id := range missing {
		r.store(ctx, id, byUser[id])
	}
	return append(result, fetched...), nil
}

func (r *cachedScheduleEntryRepo) lookup(ctx context.Context, userID string) ([]model.ScheduleEntry, bool) {
	raw, ok, err := r.cache.Get(ctx, snapshotKey(userID))
	if err != nil {
		r.logger.Warn("读取课表快照缓存失败", zap.Error(err), zap.String("userID", userID))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return r.decode(userID, raw)
}

// decode 解析快照；raw 为 nil 视为未命中
func (r *cachedScheduleEntryRepo) decode(userID string, raw []byte) ([]model.ScheduleEntry, bool) {
	if raw == nil {
		return nil, false
	}
	var entries []model.ScheduleEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		r.logger.Warn("课表快照缓存数据损坏", zap.Error(err), zap.String("userID", userID))
		return nil, false
	}
	return entries, true
}

func (r *cachedScheduleEntryRepo) store(ctx context.Context, userID string, entries []model.ScheduleEntry) {
	if entries == nil {
		entries = []model.ScheduleEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		r.logger.Warn("序列化课表快照失败", zap.Error(err), zap.String("userID", userID))
		return
	}
	if err := r.cache.Set(ctx, snapshotKey(userID), raw, r.ttl); err != nil {
		r.logger.Warn("写入课表快照缓存失败", zap.Error(err), zap.String("userID", userID))
	}
}

// InvalidateSnapshot 删除用户的课表快照缓存，供课表管理模块在变更后调用
func InvalidateSnapshot(ctx context.Context, cache SnapshotCache, userIDs ...string) error {
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = snapshotKey(id)
	}
	return cache.Delete(ctx, keys...)
}
