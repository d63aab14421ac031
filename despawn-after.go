package tandem

import "time"

var _ = ValidateComponent[DespawnTimer]()

// DespawnTimer despawns the entity it is placed on once its timer finishes.
type DespawnTimer struct {
	Component[DespawnTimer]
	Timer Timer
}

// DespawnAfter creates a DespawnTimer that finishes after the given duration.
func DespawnAfter(duration time.Duration) DespawnTimer {
	return DespawnTimer{
		Timer: NewTimer(duration, TimerModeOnce),
	}
}

func despawnTimerSystem(
	commands *Commands,
	vt VirtualTime,
	query Query[struct {
		EntityId
		DespawnTimer *DespawnTimer
	}],
) {
	for item := range query.Items() {
		timer := &item.DespawnTimer.Timer
		if timer.Tick(vt.Delta).JustFinished() || timer.Finished() {
			commands.Entity(item.EntityId).Despawn()
		}
	}
}
