package logic_test

import (
	"testing"

	"github.com/blues/cls/internal/errs"
	"github.com/blues/cls/internal/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardOrdering(t *testing.T) {
	db := newTestDB(t)
	campaign := newTestCampaign(t, db, "alice", "1")
	leaderboardLogic := logic.NewLeaderboardLogic(db)

	// A=3.0，B=5.0，A再来1.0：A总计4.0，B总计5.0
	submitContribution(t, db, campaign.Id, "userA", "3.0")
	submitContribution(t, db, campaign.Id, "userB", "5.0")
	submitContribution(t, db, campaign.Id, "userA", "1.0")

	entries, err := leaderboardLogic.Leaderboard(campaign.Id)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "userB", entries[0].Contributor)
	assert.True(t, entries[0].TotalAmountPaid.Equal(dec(t, "5.0")))
	assert.Equal(t, 1, entries[0].ContributionCount)

	assert.Equal(t, "userA", entries[1].Contributor)
	assert.True(t, entries[1].TotalAmountPaid.Equal(dec(t, "4.0")))
	assert.Equal(t, 2, entries[1].ContributionCount)
}

func TestLeaderboardStableTies(t *testing.T) {
	db := newTestDB(t)
	campaign := newTestCampaign(t, db, "alice", "1")
	leaderboardLogic := logic.NewLeaderboardLogic(db)

	// 同额并列时先贡献者在前
	submitContribution(t, db, campaign.Id, "first", "2.0")
	submitContribution(t, db, campaign.Id, "second", "2.0")
	submitContribution(t, db, campaign.Id, "third", "2.0")

	entries, err := leaderboardLogic.Leaderboard(campaign.Id)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "first", entries[0].Contributor)
	assert.Equal(t, "second", entries[1].Contributor)
	assert.Equal(t, "third", entries[2].Contributor)
}

func TestLeaderboardRewardAddress(t *testing.T) {
	db := newTestDB(t)
	campaign := newTestCampaign(t, db, "alice", "1")
	contributionLogic := logic.NewContributionLogic(db, testLedgerConfig())
	leaderboardLogic := logic.NewLeaderboardLogic(db)

	for _, addr := range []string{"0xold", "0xnew"} {
		_, err := contributionLogic.Submit(logic.SubmitContribution{
			CampaignId:    campaign.Id,
			Contributor:   "bob",
			OptionIndex:   0,
			AmountPaid:    dec(t, "1"),
			ProofToken:    "0xabc",
			RewardAddress: addr,
		})
		require.NoError(t, err)
	}

	entries, err := leaderboardLogic.Leaderboard(campaign.Id)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	// 最近登记的奖励地址生效
	assert.Equal(t, "0xnew", entries[0].RewardAddress)
}

func TestLeaderboardEmptyAndMissing(t *testing.T) {
	db := newTestDB(t)
	campaign := newTestCampaign(t, db, "alice", "1")
	leaderboardLogic := logic.NewLeaderboardLogic(db)

	entries, err := leaderboardLogic.Leaderboard(campaign.Id)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = leaderboardLogic.Leaderboard(9999)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
