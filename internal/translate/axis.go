package translate

// Hysteresis converts a raw axis magnitude into a digital state using two
// thresholds. An inactive control only becomes active once the value crosses
// above Activate; an active one only releases once it crosses below
// Deactivate. The band between the two is what keeps a stick hovering near a
// single threshold from chattering.
type Hysteresis struct {
	Activate   float64
	Deactivate float64
}

// Next returns the new logical state given the previous one and the
// current raw value.
func (h Hysteresis) Next(active bool, value float64) bool {
	if active {
		return value >= h.Deactivate
	}
	return value > h.Activate
}
