package logic

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/blues/cls/internal/config"
	"github.com/blues/cls/internal/logger"
	"github.com/blues/cls/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// OwnershipQuery 外部链协作方的所有权查询能力
type OwnershipQuery interface {
	// BalanceOf 查询holder地址当前持有指定token的数量
	BalanceOf(ctx context.Context, holder string, tokenId string) (*big.Int, error)
}

// ClaimStatus 认领状态，读取时与链上所有权比对得出，从不落库。
// 查询失败或超时必须返回 Unknown：当成未认领会诱发重复认领，
// 当成已认领会掩盖尚未领取的奖励。
type ClaimStatus string

const (
	ClaimStatusClaimed   ClaimStatus = "claimed"   // 接收地址已持有全部token
	ClaimStatusUnclaimed ClaimStatus = "unclaimed" // 查询成功但有token尚未持有
	ClaimStatusUnknown   ClaimStatus = "unknown"   // 外部查询不可用或无法定位接收地址
)

// ClaimLogic 认领核对业务逻辑
type ClaimLogic struct {
	db       *gorm.DB
	query    OwnershipQuery
	timeout  time.Duration
	poolSize int
}

// NewClaimLogic 创建认领核对业务逻辑，query 为 nil 时所有状态都是 Unknown
func NewClaimLogic(db *gorm.DB, query OwnershipQuery, cfg config.ChainConfig) *ClaimLogic {
	timeout := time.Duration(cfg.QueryTimeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 8
	}
	return &ClaimLogic{db: db, query: query, timeout: timeout, poolSize: poolSize}
}

// Resolve 核对单条奖励记录的认领状态：用接收者最近一条贡献的奖励地址
// 逐个查询token持有量。奖励记录是持久的"应得"，链上持有是易变的"已得"。
func (l *ClaimLogic) Resolve(ctx context.Context, reward *model.NFTReward) ClaimStatus {
	if l.query == nil {
		return ClaimStatusUnknown
	}

	holder, err := l.resolveHolder(reward.CampaignId, reward.Recipient)
	if err != nil || holder == "" {
		return ClaimStatusUnknown
	}

	allHeld := true
	for _, tokenId := range reward.TokenIds {
		queryCtx, cancel := context.WithTimeout(ctx, l.timeout)
		balance, err := l.query.BalanceOf(queryCtx, holder, tokenId)
		cancel()
		if err != nil {
			logger.Warn("Ownership query failed for reward %d token %s: %v", reward.Id, tokenId, err)
			return ClaimStatusUnknown
		}
		if balance == nil || balance.Sign() <= 0 {
			allHeld = false
		}
	}

	if allHeld {
		return ClaimStatusClaimed
	}
	return ClaimStatusUnclaimed
}

// ResolveAll 批量核对，经协程池并发查询，单条失败不影响其他条目
func (l *ClaimLogic) ResolveAll(ctx context.Context, rewards []model.NFTReward) []ClaimStatus {
	statuses := make([]ClaimStatus, len(rewards))
	if len(rewards) == 0 {
		return statuses
	}

	pool, err := ants.NewPool(l.poolSize)
	if err != nil {
		logger.Error("Failed to create claim resolution pool: %v", err)
		for i := range statuses {
			statuses[i] = ClaimStatusUnknown
		}
		return statuses
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range rewards {
		i := i
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			statuses[i] = l.Resolve(ctx, &rewards[i])
		})
		if submitErr != nil {
			statuses[i] = ClaimStatusUnknown
			wg.Done()
		}
	}
	wg.Wait()

	return statuses
}

// resolveHolder 定位接收者在该活动中最近登记的奖励地址
func (l *ClaimLogic) resolveHolder(campaignId int64, recipient string) (string, error) {
	var contribution model.Contribution
	err := l.db.Where("campaign_id = ? AND contributor = ? AND reward_address <> ''", campaignId, recipient).
		Order("id DESC").
		First(&contribution).Error
	if err != nil {
		return "", err
	}
	return contribution.RewardAddress, nil
}
