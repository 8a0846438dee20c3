package utils

import "time"

// Clock abstracts the wall clock so reservation lifecycle logic stays
// deterministic under test. Services receive a Clock; entity transition
// functions take the resolved instant as a plain parameter.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
