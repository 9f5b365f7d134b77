package ecs

// Phase orders systems within a tick. Lower phases run first.
type Phase int

const (
	PhaseInput Phase = iota
	PhasePhysics
	PhaseBehavior
	PhaseCollision
	PhaseLifecycle
	PhaseCleanup
	PhaseAudio
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePhysics:
		return "physics"
	case PhaseBehavior:
		return "behavior"
	case PhaseCollision:
		return "collision"
	case PhaseLifecycle:
		return "lifecycle"
	case PhaseCleanup:
		return "cleanup"
	case PhaseAudio:
		return "audio"
	default:
		return "unknown"
	}
}

type System interface {
	Update(w *World)
}

// Gate decides whether a phase runs this tick. The game clock uses it to
// freeze simulation phases while stopped.
type Gate func(Phase) bool

type scheduled struct {
	phase  Phase
	system System
}

type Scheduler struct {
	systems []scheduled
	gate    Gate
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Add registers a system in phase. Systems in the same phase keep their
// registration order.
func (s *Scheduler) Add(phase Phase, system System) {
	if system == nil {
		return
	}
	at := len(s.systems)
	for i, entry := range s.systems {
		if entry.phase > phase {
			at = i
			break
		}
	}
	s.systems = append(s.systems, scheduled{})
	copy(s.systems[at+1:], s.systems[at:])
	s.systems[at] = scheduled{phase: phase, system: system}
}

func (s *Scheduler) SetGate(gate Gate) {
	s.gate = gate
}

func (s *Scheduler) Update(w *World) {
	for _, entry := range s.systems {
		if s.gate != nil && !s.gate(entry.phase) {
			continue
		}
		entry.system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	for _, entry := range s.systems {
		systems = append(systems, entry.system)
	}
	return systems
}
