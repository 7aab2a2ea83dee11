package constants

import "time"

// response codes sent with client errors so the ATM terminal can pick the
// screen to display. the last digit is 1 when the terminal should ask the
// customer to retake the photo.

var INVALID_IMAGE uint = 4101
var NO_FACE_DETECTED uint = 4111
var AMBIGUOUS_FACE uint = 4121
var ENCODING_FAILED uint = 4131
var NO_MATCH uint = 4140
var DUPLICATE_IDENTITY uint = 4150

var DEFAULT_PAGE_SIZE int64 = 10
var MAX_PAGE_SIZE int64 = 50

var MASS_REGISTER_PASSWORD_LENGTH = 12

var BACKFILL_LOCK_KEY = "face-descriptor-backfill-lock"

var BACKFILL_STATUS_KEY = "face-descriptor-backfill-status"

// BACKFILL_STATUS_TTL bounds how long a run's status and counters are kept.
var BACKFILL_STATUS_TTL = 24 * time.Hour

// BackfillCounterKey holds the number of refresh tasks of a backfill run that
// finished with the given result.
func BackfillCounterKey(runID string, result string) string {
	return "face-descriptor-backfill:" + runID + ":" + result
}
