package logic_test

import (
	"testing"

	"github.com/blues/cls/internal/config"
	"github.com/blues/cls/internal/database"
	"github.com/blues/cls/internal/logic"
	"github.com/blues/cls/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 打开内存数据库并迁移表结构。
// 限制单连接：内存sqlite的每个连接是独立数据库。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func testLedgerConfig() config.LedgerConfig {
	return config.LedgerConfig{
		PriceFloor:      "0.001",
		ContributionCap: 5,
		MaxRetries:      3,
	}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// newTestCampaign 以creator名义创建一个双选项活动
func newTestCampaign(t *testing.T, db *gorm.DB, creator string, price string) *model.Campaign {
	t.Helper()

	campaignLogic := logic.NewCampaignLogic(db, testLedgerConfig())
	campaign, err := campaignLogic.Create(logic.CreateCampaign{
		Title:   "Test campaign",
		Price:   dec(t, price),
		Options: []string{"Red", "Blue"},
		Creator: creator,
	})
	require.NoError(t, err)
	return campaign
}

// submitContribution 提交一条合法贡献
func submitContribution(t *testing.T, db *gorm.DB, campaignId int64, contributor, amount string) *model.Contribution {
	t.Helper()

	contributionLogic := logic.NewContributionLogic(db, testLedgerConfig())
	record, err := contributionLogic.Submit(logic.SubmitContribution{
		CampaignId:    campaignId,
		Contributor:   contributor,
		OptionIndex:   0,
		AmountPaid:    dec(t, amount),
		ProofToken:    "0xproof-" + contributor,
		RewardAddress: "0x00000000000000000000000000000000000000aa",
	})
	require.NoError(t, err)
	return record
}
