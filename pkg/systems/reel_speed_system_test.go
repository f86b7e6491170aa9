package systems

import (
	"testing"

	"github.com/decker502/slots/pkg/components"
	"github.com/decker502/slots/pkg/config"
)

func TestAccelerationReachesMaxWithinTolerance(t *testing.T) {
	motion := config.DefaultReelConfig().Motion
	reel := &components.ReelComponent{CanMove: true, DecelerationRate: motion.BaseDecelerationRate}

	reached := -1
	for tick := 1; tick <= 200; tick++ {
		if components.CanAccelerate(reel, motion.MaxVelocity) {
			Accelerate(reel, motion)
		}
		if reel.Velocity > 50.9 {
			t.Fatalf("tick %d: velocity %v exceeds 50.9", tick, reel.Velocity)
		}
		if reached < 0 && reel.Velocity >= 49 {
			reached = tick
		}
	}

	if reached < 0 || reached > 55 {
		t.Errorf("velocity should reach 49 within 55 ticks, reached at tick %d", reached)
	}
	if reel.Velocity < motion.MaxVelocity {
		t.Errorf("final velocity %v below max", reel.Velocity)
	}
}

func TestDecelerationConvergesToMin(t *testing.T) {
	motion := config.DefaultReelConfig().Motion
	reel := &components.ReelComponent{
		CanMove:          true,
		CanDecelerate:    true,
		Velocity:         50,
		DecelerationRate: motion.BaseDecelerationRate,
	}

	prev := reel.Velocity
	prevRate := reel.DecelerationRate
	atMin := -1
	for tick := 0; tick < 2000; tick++ {
		Decelerate(reel, motion)

		if reel.Velocity > prev {
			t.Fatalf("tick %d: velocity increased from %v to %v", tick, prev, reel.Velocity)
		}
		if reel.DecelerationRate > prevRate {
			t.Fatalf("tick %d: deceleration rate increased", tick)
		}
		if reel.Velocity < motion.MinVelocity {
			t.Fatalf("tick %d: velocity %v below min", tick, reel.Velocity)
		}
		if atMin < 0 && reel.Velocity == motion.MinVelocity {
			atMin = tick
		}
		prev = reel.Velocity
		prevRate = reel.DecelerationRate
	}

	if atMin < 0 {
		t.Fatal("velocity never reached min")
	}
	if reel.Velocity != motion.MinVelocity {
		t.Errorf("velocity should stay at min, got %v", reel.Velocity)
	}
	if !reel.CanStop {
		t.Error("CanStop should be raised once velocity reaches min")
	}
	if !reel.CanDecelerate {
		t.Error("CanDecelerate must stay set until the next spin")
	}
	if reel.DecelerationRate < motion.DecelerationFloor-motion.DecelerationDecay {
		t.Errorf("deceleration rate %v dropped past floor", reel.DecelerationRate)
	}
}

func TestDecelerateExactLandingRaisesCanStop(t *testing.T) {
	motion := config.DefaultReelConfig().Motion
	reel := &components.ReelComponent{
		CanMove:          true,
		CanDecelerate:    true,
		Velocity:         motion.MinVelocity + 0.5,
		DecelerationRate: 0.5,
	}

	if !Decelerate(reel, motion) {
		t.Fatal("landing exactly on min should report min velocity")
	}
	if !reel.CanStop {
		t.Error("CanStop should be raised on exact landing")
	}
}

func TestReelSpeedSystemIgnoresStoppedReels(t *testing.T) {
	ctx := newTestContext(t, 2, 3, 5)
	moving, _, _ := ctx.Reel(0)
	moving.CanMove = true
	stopped, _, _ := ctx.Reel(1)
	stopped.CanDecelerate = true

	NewReelSpeedSystem().Update(ctx)

	if moving.Velocity != ctx.Config.Motion.IncreaseRate {
		t.Errorf("moving reel velocity = %v, want %v", moving.Velocity, ctx.Config.Motion.IncreaseRate)
	}
	if stopped.Velocity != 0 || stopped.CanStop {
		t.Error("reel without CanMove must not be decelerated or re-armed")
	}
}

func TestAccelerationStopsWhenDecelerating(t *testing.T) {
	ctx := newTestContext(t, 1, 3, 5)
	reel, _, _ := ctx.Reel(0)
	reel.CanMove = true
	reel.CanDecelerate = true
	reel.Velocity = 30

	NewReelSpeedSystem().Update(ctx)

	if reel.Velocity >= 30 {
		t.Errorf("decelerating reel must not accelerate, velocity %v", reel.Velocity)
	}
}
