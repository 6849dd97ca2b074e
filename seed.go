package main

import "time"

// civilEpoch is 0001-01-01 UTC; it is seed day 1.
var civilEpoch = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

// unixEpochDays is the number of whole days between the civil epoch and
// 1970-01-01. A Duration cannot span two millennia, so the seed is computed
// from Unix time instead of a time subtraction.
const unixEpochDays = 719162

// dailySeed derives the puzzle seed for a moment in time: the count of days
// from the civil epoch, matching the backend's session numbering
// (1970-01-01 is day 719163). It is stable for one UTC day and shared by
// both games as the synchronization key with the oracle.
func dailySeed(now time.Time) uint64 {
	days := now.UTC().Unix() / 86400
	return uint64(days + unixEpochDays + 1)
}
