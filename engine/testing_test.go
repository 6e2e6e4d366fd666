package engine

// recordingSystem appends its name to a shared log on every update
// Used by scheduler tests
type recordingSystem struct {
	SystemBase
	log *[]string
	fn  func(w *World, dt float64)
}

func newRecordingSystem(name string, priority int, log *[]string) *recordingSystem {
	return &recordingSystem{SystemBase: NewSystemBase(name, priority), log: log}
}

func (s *recordingSystem) Update(w *World, dt float64) {
	*s.log = append(*s.log, s.name)
	if s.fn != nil {
		s.fn(w, dt)
	}
}
