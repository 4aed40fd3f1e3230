package screen

type SectionState string

const (
	StateLoading SectionState = "loading"
	StateError   SectionState = "error"
	StateEmpty   SectionState = "empty"
	StateReady   SectionState = "ready"
)

// section tracks one data source independently of the others.
type section[T any] struct {
	state SectionState
	data  T
	err   string
}

func (s *section[T]) loading() {
	var zero T
	s.state, s.data, s.err = StateLoading, zero, ""
}

func (s *section[T]) fail(msg string) {
	var zero T
	s.state, s.data, s.err = StateError, zero, msg
}

func (s *section[T]) set(data T, empty bool) {
	s.data, s.err = data, ""
	if empty {
		s.state = StateEmpty
	} else {
		s.state = StateReady
	}
}
