package capture

import (
	"math"
	"time"

	"github.com/user/gifcast/pkg/ports"
)

// Timing groups the tunable delays and bounds of the seek/verify cycle.
// Tests shrink these to keep the suite fast.
type Timing struct {
	// SettleDelay is the wait after issuing a seek, letting it begin.
	SettleDelay time.Duration
	// PollInterval is the wait between readiness polls.
	PollInterval time.Duration
	// MaxPollAttempts bounds the readiness polling per frame.
	MaxPollAttempts int
	// StallAttempts is the number of consecutive polls with a frozen
	// position after which polling stops early.
	StallAttempts int
	// PostSeekDelay is the settle delay applied after polling.
	PostSeekDelay time.Duration
	// LongSeekDelay replaces PostSeekDelay when the seek distance exceeds
	// LongSeekDistance. Non-keyframe seeks need more decode time.
	LongSeekDelay    time.Duration
	LongSeekDistance float64
	// PositionTolerance is the maximum |position - target| in seconds for a
	// frame to count as ready.
	PositionTolerance float64
	// AccuracyTolerance is the |actual - target| above which a non-fatal
	// seek-inaccuracy warning is logged.
	AccuracyTolerance float64
	// RecoveryNudge is the epsilon added to the target for the single
	// duplicate-recovery re-seek.
	RecoveryNudge float64
	// FallbackSettle is the fixed per-frame delay of the fallback pass.
	FallbackSettle time.Duration
}

// DefaultTiming returns the standard seek timing.
func DefaultTiming() Timing {
	return Timing{
		SettleDelay:       50 * time.Millisecond,
		PollInterval:      25 * time.Millisecond,
		MaxPollAttempts:   20,
		StallAttempts:     4,
		PostSeekDelay:     100 * time.Millisecond,
		LongSeekDelay:     300 * time.Millisecond,
		LongSeekDistance:  2.0,
		PositionTolerance: 0.05,
		AccuracyTolerance: 0.1,
		RecoveryNudge:     0.001,
		FallbackSettle:    100 * time.Millisecond,
	}
}

// seekController drives the video source to a target timestamp and confirms
// the frame is actually decodable, not just requested. It never fails on
// imprecision; it returns a best-effort position and raises only when the
// source handle itself errors.
type seekController struct {
	source ports.VideoSource
	logger ports.Logger
	timing Timing
}

// seekTo moves the source to target and returns the position actually
// reached after the settle delays.
func (c *seekController) seekTo(target float64) (float64, error) {
	previous, err := c.source.CurrentTime()
	if err != nil {
		return 0, err
	}

	if err := c.source.SetCurrentTime(target); err != nil {
		return 0, err
	}
	time.Sleep(c.timing.SettleDelay)

	c.pollUntilReady(target)

	// Long seeks land on non-keyframes more often and need extra decode time.
	settle := c.timing.PostSeekDelay
	if math.Abs(target-previous) > c.timing.LongSeekDistance {
		settle = c.timing.LongSeekDelay
	}
	time.Sleep(settle)

	actual, err := c.source.CurrentTime()
	if err != nil {
		return 0, err
	}
	if math.Abs(actual-target) > c.timing.AccuracyTolerance {
		c.logger.Warn("Seek inaccuracy: requested %.3fs, source reports %.3fs", target, actual)
	}

	return actual, nil
}

// pollUntilReady polls the source until the target frame is presumed
// decodable, the attempt budget runs out, or the position freezes (stall).
// Source errors during polling are treated as "not ready yet"; the caller's
// final CurrentTime read surfaces a dead handle.
func (c *seekController) pollUntilReady(target float64) {
	lastPos := math.NaN()
	frozen := 0

	for attempt := 0; attempt < c.timing.MaxPollAttempts; attempt++ {
		pos, err := c.source.CurrentTime()
		if err == nil {
			if c.frameReady(pos, target) {
				return
			}
			if !math.IsNaN(lastPos) && pos == lastPos {
				frozen++
				if frozen >= c.timing.StallAttempts {
					c.logger.Debug("Seek polling stalled at %.3fs after %d attempts", pos, attempt+1)
					return
				}
			} else {
				frozen = 0
			}
			lastPos = pos
		}
		time.Sleep(c.timing.PollInterval)
	}
}

// frameReady reports whether the position is close enough to target, the
// source has sufficient decoded data, and the target falls inside a buffered
// range.
func (c *seekController) frameReady(pos, target float64) bool {
	if math.Abs(pos-target) > c.timing.PositionTolerance {
		return false
	}
	state, err := c.source.ReadyState()
	if err != nil || state < ports.HaveCurrentData {
		return false
	}
	ranges, err := c.source.BufferedRanges()
	if err != nil {
		return false
	}
	for _, r := range ranges {
		if r.Contains(target) {
			return true
		}
	}
	return false
}
