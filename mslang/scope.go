package mslang

// ScopeStack holds the procedures visible at a point of the tree, innermost frame last.
type ScopeStack struct {
	frames []map[string]*Procedure
}

func NewScopeStack() *ScopeStack {
	s := new(ScopeStack)
	s.Push()
	return s
}

func (s *ScopeStack) Push() {
	s.frames = append(s.frames, make(map[string]*Procedure))
}

func (s *ScopeStack) Pop() {
	if len(s.frames) == 0 {
		panic("pop of empty scope stack")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *ScopeStack) Depth() int {
	return len(s.frames)
}

// Define adds the procedure to the innermost frame.
func (s *ScopeStack) Define(proc *Procedure) {
	if len(s.frames) == 0 {
		s.Push()
	}
	s.frames[len(s.frames)-1][proc.Name] = proc
}

// Lookup searches from the innermost frame outward.
func (s *ScopeStack) Lookup(name string) (*Procedure, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if proc, ok := s.frames[i][name]; ok {
			return proc, true
		}
	}
	return nil, false
}
