package quiz

import "errors"

var (
	// ErrNoActiveSession is returned when answer/submit is called before a quiz was started.
	ErrNoActiveSession = errors.New("no active quiz session")
	// ErrInvalidIndex is returned when an answer position is out of bounds.
	ErrInvalidIndex = errors.New("question position out of range")
	// ErrNoResult is returned when reading a result before any submission.
	ErrNoResult = errors.New("no quiz result available")
	// ErrProviderUnavailable indicates the question provider could not be reached in time.
	ErrProviderUnavailable = errors.New("question provider unavailable")
	// ErrProviderNoResults indicates the requested category/count yields no questions.
	ErrProviderNoResults = errors.New("question provider has no questions for these parameters")
)
