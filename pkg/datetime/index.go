package datetime

import "github.com/golang-module/carbon/v2"

var cb carbon.Carbon

func init() {
	cb = carbon.SetTimezone(carbon.UTC)
}

func Now() carbon.Carbon {
	return cb.Now()
}

// ElapsedSeconds is the whole number of seconds between start and now.
func ElapsedSeconds(start carbon.Carbon) int64 {
	return start.DiffAbsInSeconds(Now())
}
