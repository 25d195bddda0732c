package service

import (
	"math"
	"sort"
	"time"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
)

const (
	defaultTopN = 5

	scoreBase          = 100.0
	scoreSameDayBonus  = 50.0
	scoreHourPenalty   = 5.0
	scoreEdgePenalty   = 20.0
	scoreMorningBonus  = 10.0
	excellentThreshold = 130.0
	goodThreshold      = 100.0
)

// OriginalSlot is the slot alternatives are compared against. Date is
// optional; when both sides carry a date, "same day" means same date.
type OriginalSlot struct {
	Day   models.Weekday
	Date  time.Time
	Start models.TimeOfDay
}

// SuggestionRanker scores free candidates against the original slot.
type SuggestionRanker struct {
	topN int
}

// NewSuggestionRanker builds a ranker returning at most topN candidates.
func NewSuggestionRanker(topN int) *SuggestionRanker {
	if topN <= 0 {
		topN = defaultTopN
	}
	return &SuggestionRanker{topN: topN}
}

// TopN returns the configured result cap.
func (r *SuggestionRanker) TopN() int { return r.topN }

// Score applies the preference model to one candidate.
func (r *SuggestionRanker) Score(orig OriginalSlot, c models.Candidate) float64 {
	score := scoreBase
	if sameDay(orig, c) {
		score += scoreSameDayBonus
	}
	hour := c.Start.Hour()
	score -= scoreHourPenalty * math.Abs(float64(orig.Start.Hour()-hour))
	if hour < 9 || hour > 16 {
		score -= scoreEdgePenalty
	}
	if hour >= 9 && hour <= 12 {
		score += scoreMorningBonus
	}
	return math.Max(0, score)
}

// Rank scores, annotates and sorts the candidates and returns the top N
// together with the number of viable candidates seen.
func (r *SuggestionRanker) Rank(orig OriginalSlot, candidates []models.Candidate) ([]models.Candidate, int) {
	if len(candidates) == 0 {
		return []models.Candidate{}, 0
	}
	ranked := make([]models.Candidate, len(candidates))
	copy(ranked, candidates)
	for i := range ranked {
		ranked[i].Score = r.Score(orig, ranked[i])
		ranked[i].Reason = candidateReason(ranked[i])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Room.ID < b.Room.ID
	})
	total := len(ranked)
	if total > r.topN {
		ranked = ranked[:r.topN]
	}
	return ranked, total
}

func sameDay(orig OriginalSlot, c models.Candidate) bool {
	if !orig.Date.IsZero() && !c.Date.IsZero() {
		return models.DateOnly(orig.Date).Equal(models.DateOnly(c.Date))
	}
	return orig.Day == c.Day
}

func candidateReason(c models.Candidate) string {
	var bracket string
	switch {
	case c.Score > excellentThreshold:
		bracket = "Excellent match - same day"
	case c.Score > goodThreshold:
		bracket = "Good alternative"
	default:
		bracket = "Available option"
	}
	return bracket + " (" + timeOfDayLabel(c.Start) + ")"
}

func timeOfDayLabel(t models.TimeOfDay) string {
	hour := t.Hour()
	switch {
	case hour >= 9 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	default:
		return "off-peak"
	}
}
