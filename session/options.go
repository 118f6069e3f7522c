package session

type Option func(*Session)

// WithGenerationGuard makes an operation that resolves after a later SignIn,
// SignOut or Restore started discard its result and return ErrSuperseded.
// An operation that has started writing the store is not discarded; later
// operations wait for it instead. Without the guard the last operation to
// resolve wins.
func WithGenerationGuard() Option {
	return func(s *Session) {
		s.guarded = true
	}
}
