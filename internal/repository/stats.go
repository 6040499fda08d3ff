package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

const (
	DefaultStatsPrefix = "playerstats:"

	fieldWins         = "wins"
	fieldTotalMatches = "total_matches"
)

// StatsRepository - write side of the player statistics store.
type StatsRepository interface {
	RecordMatch(ctx context.Context, result entity.MatchResult) error
}

type dbStats struct {
	client *redis.Client
	prefix string
}

func NewStatsRepository(client *redis.Client, prefix string) StatsRepository {
	if prefix == "" {
		prefix = DefaultStatsPrefix
	}

	return &dbStats{
		client: client,
		prefix: prefix,
	}
}

// RecordMatch - bumps wins and total_matches for the winner and total_matches for the loser.
// Participants without a user id are skipped.
func (that *dbStats) RecordMatch(ctx context.Context, result entity.MatchResult) error {
	winner, loser := result.WinnerUserID, result.LoserUserID
	if loser == winner {
		loser = ""
	}

	if winner == "" && loser == "" {
		return nil
	}

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if winner != "" {
			pipe.HIncrBy(ctx, that.prefix+winner, fieldWins, 1)
			pipe.HIncrBy(ctx, that.prefix+winner, fieldTotalMatches, 1)
		}

		if loser != "" {
			pipe.HIncrBy(ctx, that.prefix+loser, fieldTotalMatches, 1)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record match for room %s: %w", result.RoomID, err)
	}

	return nil
}

type discardStats struct{}

// NewDiscardStatsRepository - used when the statistics store is switched off.
func NewDiscardStatsRepository() StatsRepository {
	return discardStats{}
}

func (discardStats) RecordMatch(context.Context, entity.MatchResult) error {
	return nil
}
