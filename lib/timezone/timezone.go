package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Los_Angeles")
	if err != nil {
		panic(err)
	}
}

// force the timezone to be in PT because the host may end up
// anywhere, which will cause disturbances when bucketing reads
// by <time.Time>.Year()/Month()/Day()
func Now() time.Time {
	return time.Now().In(Location)
}
