package gamefi

import (
	"context"

	"go.uber.org/zap"

	"github.com/AlexZinkM/ton-gamefi/internal/model"
)

const rewardsUnavailable = "Could not load your rewards information"

var achievementNames = map[string]string{
	"first-time": "Played 1 time",
	"five-times": "Played 5 times",
}

// SubmitPlayed reports a finished round to the ledger
func (c *Coordinator) SubmitPlayed(ctx context.Context, initData string, score int) model.PlayedResult {
	var wallet string
	if account := c.connectedAccount(); account != nil {
		wallet = account.Address
	}

	resp, err := c.ledger.Played(ctx, model.PlayedRequest{TgData: initData, Wallet: wallet, Score: score})
	if err != nil {
		c.logger.Warn("failed to submit round", zap.Int("score", score), zap.Error(err))
		return model.Failure{Reason: rewardsUnavailable}
	}

	achievements := make([]string, 0, len(resp.Achievements))
	for _, id := range resp.Achievements {
		if name, ok := achievementNames[id]; ok {
			achievements = append(achievements, name)
			continue
		}
		achievements = append(achievements, id)
	}
	return model.Reward{Amount: resp.Reward, Achievements: achievements}
}
