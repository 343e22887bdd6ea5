package logic

import "sync"

// campaignLockTable 按活动ID互斥。活动记录（含贡献序列和选项计票）是唯一的
// 互斥单元：同一活动的所有写操作串行，不同活动完全并行。
type campaignLockTable struct {
	locks sync.Map // campaignId -> *sync.Mutex
}

// Lock 锁定指定活动，返回解锁函数
func (t *campaignLockTable) Lock(campaignId int64) func() {
	v, _ := t.locks.LoadOrStore(campaignId, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// 包内共享的活动锁表，贡献提交、选项替换、状态切换都经过它
var campaignLocks = &campaignLockTable{}
