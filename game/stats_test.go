// File: game/stats_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lguibr/volley/utils"
)

func TestStatsRallyLifecycle(t *testing.T) {
	stats := NewMatchStats()

	stats.BeginRally()
	stats.RecordHit(0)
	stats.RecordHit(1)
	stats.RecordHit(0)
	assert.Equal(t, 3, stats.CurrentHits())

	record := stats.RecordGoal(1, 12.5)
	assert.Equal(t, 1, record.Scorer)
	assert.Equal(t, 12.5, record.Duration)
	assert.Equal(t, 3, record.Hits)

	assert.Equal(t, 0, stats.CurrentHits(), "the rally counter resets after a goal")
	assert.Equal(t, 1, stats.TotalRallies())
	assert.Equal(t, 2, stats.HitsFor(0))
	assert.Equal(t, 1, stats.HitsFor(1))
}

func TestStatsLongestRally(t *testing.T) {
	stats := NewMatchStats()

	stats.BeginRally()
	stats.RecordHit(0)
	stats.RecordGoal(0, 5.0)

	stats.BeginRally()
	stats.RecordHit(1)
	stats.RecordHit(1)
	stats.RecordGoal(1, 20.0)

	stats.BeginRally()
	stats.RecordGoal(0, 8.0)

	longest := stats.Longest()
	assert.Equal(t, 20.0, longest.Duration)
	assert.Equal(t, 2, longest.Hits)
	assert.Equal(t, 1, longest.Scorer)
}

func TestStatsIgnoresOutOfRangePlayers(t *testing.T) {
	stats := NewMatchStats()
	stats.RecordHit(-1)
	stats.RecordHit(utils.MaxPlayers)
	assert.Equal(t, 0, stats.CurrentHits())
	assert.Equal(t, 0, stats.HitsFor(-1))
	assert.Equal(t, 0, stats.HitsFor(utils.MaxPlayers))
}

func TestStatsSummary(t *testing.T) {
	stats := NewMatchStats()
	stats.BeginRally()
	stats.RecordHit(0)
	stats.RecordGoal(0, 3.0)
	stats.BeginRally()
	stats.RecordHit(1)
	stats.RecordHit(0)
	stats.RecordGoal(1, 7.0)

	summary := stats.Summary()
	assert.Equal(t, 2, summary.TotalRallies)
	assert.Equal(t, 7.0, summary.LongestRallySeconds)
	assert.Equal(t, 2, summary.LongestRallyHits)
	assert.Equal(t, [utils.MaxPlayers]int{2, 1}, summary.HitsByPlayer)
}
