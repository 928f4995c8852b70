// File: game/stats.go
package game

import "github.com/lguibr/volley/utils"

// RallyRecord captures one finished rally.
type RallyRecord struct {
	Scorer   int     `json:"scorer"`
	Duration float64 `json:"duration"` // Seconds of play from launch to goal
	Hits     int     `json:"hits"`     // Paddle hits during the rally
}

// MatchStats aggregates per-rally figures over one match. It is owned by the
// Match and mutated only from the simulation step, so it needs no locking.
type MatchStats struct {
	rallies      []RallyRecord
	currentHits  int
	hitsByPlayer [utils.MaxPlayers]int
	longest      RallyRecord
}

// StatsSummary is the wire-friendly aggregate included in game-over messages.
type StatsSummary struct {
	TotalRallies        int                   `json:"totalRallies"`
	LongestRallySeconds float64               `json:"longestRallySeconds"`
	LongestRallyHits    int                   `json:"longestRallyHits"`
	HitsByPlayer        [utils.MaxPlayers]int `json:"hitsByPlayer"`
}

func NewMatchStats() *MatchStats {
	return &MatchStats{}
}

// BeginRally resets the per-rally counters. Called on every launch.
func (s *MatchStats) BeginRally() {
	s.currentHits = 0
}

// RecordHit counts one paddle hit for the given player in the current rally.
func (s *MatchStats) RecordHit(playerIndex int) {
	if playerIndex < 0 || playerIndex >= utils.MaxPlayers {
		return
	}
	s.currentHits++
	s.hitsByPlayer[playerIndex]++
}

// RecordGoal finalizes the current rally with its scorer and duration.
func (s *MatchStats) RecordGoal(scorer int, duration float64) RallyRecord {
	record := RallyRecord{
		Scorer:   scorer,
		Duration: duration,
		Hits:     s.currentHits,
	}
	s.rallies = append(s.rallies, record)
	if duration > s.longest.Duration {
		s.longest = record
	}
	s.currentHits = 0
	return record
}

// CurrentHits returns the paddle hits seen so far in the ongoing rally.
func (s *MatchStats) CurrentHits() int { return s.currentHits }

// TotalRallies returns the number of finished rallies.
func (s *MatchStats) TotalRallies() int { return len(s.rallies) }

// HitsFor returns the total paddle hits for a player across the match.
func (s *MatchStats) HitsFor(playerIndex int) int {
	if playerIndex < 0 || playerIndex >= utils.MaxPlayers {
		return 0
	}
	return s.hitsByPlayer[playerIndex]
}

// Longest returns the longest finished rally.
func (s *MatchStats) Longest() RallyRecord { return s.longest }

// Summary flattens the stats for the wire.
func (s *MatchStats) Summary() StatsSummary {
	return StatsSummary{
		TotalRallies:        len(s.rallies),
		LongestRallySeconds: s.longest.Duration,
		LongestRallyHits:    s.longest.Hits,
		HitsByPlayer:        s.hitsByPlayer,
	}
}
