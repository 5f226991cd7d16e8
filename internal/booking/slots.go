package booking

// CandidateSlots is the fixed set of bookable time-of-day values, hourly
// across business hours.
var CandidateSlots = []string{
	"09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

type SlotStatus struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

func validSlot(slot string) bool {
	for _, s := range CandidateSlots {
		if s == slot {
			return true
		}
	}
	return false
}
