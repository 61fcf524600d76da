package review

import (
	"fmt"
	"math"
	"time"
)

// Feedback is the coarse 1-4 grade a user gives after revealing an answer:
// 1 forgot, 2 hard, 3 good, 4 easy.
type Feedback int

const (
	FeedbackForgot Feedback = 1
	FeedbackHard   Feedback = 2
	FeedbackGood   Feedback = 3
	FeedbackEasy   Feedback = 4
)

const (
	// slowResponseThresholdMs is the response time after which a correct
	// answer starts losing quality.
	slowResponseThresholdMs = 15000
	slowResponsePenaltyRate = 0.0001
	maxSlowResponsePenalty  = 1.5
)

// Update is the scheduling state produced by Schedule. Callers persist it
// themselves; Apply merges it into an item.
type Update struct {
	Repetition     int
	IntervalDays   int
	EasinessFactor float64
	NextReview     *time.Time
	LastReview     time.Time
	Record         ReviewRecord
}

// Apply merges the update into a copy of the item and returns the copy.
// The record is appended; existing history entries are never mutated.
func (u Update) Apply(item Item) Item {
	item.Repetition = u.Repetition
	item.IntervalDays = u.IntervalDays
	item.EasinessFactor = u.EasinessFactor
	item.NextReview = u.NextReview
	lastReview := u.LastReview
	item.LastReview = &lastReview
	item.History = append(append([]ReviewRecord{}, item.History...), u.Record)
	return item
}

// Schedule computes the next scheduling state for an item after a review.
// It is pure: the caller persists the returned update.
//
// A review submitted before the item's next review date is an early review.
// It is recorded in the history but leaves repetition, interval and easiness
// factor untouched so that practicing ahead of schedule does not perturb the
// schedule.
func Schedule(item Item, feedback Feedback, responseTimeMs int64, now time.Time) (Update, error) {
	if feedback < FeedbackForgot || feedback > FeedbackEasy {
		return Update{}, fmt.Errorf("feedback must be between 1 and 4, got %d", feedback)
	}

	record := ReviewRecord{Quality: int(feedback), ReviewedAt: now}

	if item.NextReview != nil && item.NextReview.After(now) {
		return Update{
			Repetition:     item.Repetition,
			IntervalDays:   item.IntervalDays,
			EasinessFactor: easinessFactorOrDefault(item.EasinessFactor),
			NextReview:     item.NextReview,
			LastReview:     now,
			Record:         record,
		}, nil
	}

	quality := qualityForFeedback(feedback)
	quality = applySlowResponsePenalty(quality, responseTimeMs)

	ef := easinessFactorOrDefault(item.EasinessFactor)
	repetition := item.Repetition
	var intervalDays int

	if quality < 3 {
		repetition = 0
		intervalDays = 0
		ef = math.Max(ef-0.2, MinEasinessFactor)
	} else {
		repetition++
		ef = math.Max(ef+0.1-(5-quality)*(0.08+(5-quality)*0.02), MinEasinessFactor)

		switch repetition {
		case 1:
			intervalDays = 1
		case 2:
			intervalDays = int(math.Round(ef))
			if intervalDays < 2 {
				intervalDays = 2
			}
		default:
			previousInterval := item.IntervalDays
			if previousInterval < 1 {
				previousInterval = 1
			}
			intervalDays = int(math.Round(float64(previousInterval) * ef))
		}
		if intervalDays < 1 {
			intervalDays = 1
		}
	}

	nextReview := truncateToDay(now).AddDate(0, 0, intervalDays)
	return Update{
		Repetition:     repetition,
		IntervalDays:   intervalDays,
		EasinessFactor: ef,
		NextReview:     &nextReview,
		LastReview:     now,
		Record:         record,
	}, nil
}

// qualityForFeedback maps the discrete 1-4 feedback onto the SM-2 0-5
// quality scale.
func qualityForFeedback(feedback Feedback) float64 {
	switch feedback {
	case FeedbackForgot:
		return 0
	case FeedbackHard:
		return 2
	case FeedbackGood:
		return 4
	default:
		return 5
	}
}

// applySlowResponsePenalty down-weights slow but correct answers as a capped
// proxy for uncertainty. Wrong answers are left alone.
func applySlowResponsePenalty(quality float64, responseTimeMs int64) float64 {
	if quality < 3 || responseTimeMs <= slowResponseThresholdMs {
		return quality
	}
	penalty := math.Min(maxSlowResponsePenalty, float64(responseTimeMs-slowResponseThresholdMs)*slowResponsePenaltyRate)
	return math.Max(quality-penalty, 0)
}

func easinessFactorOrDefault(ef float64) float64 {
	if ef == 0 {
		return DefaultEasinessFactor
	}
	return ef
}
