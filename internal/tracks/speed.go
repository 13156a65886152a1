// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package tracks

// SpeedOption is one entry of the playback-speed picker.
type SpeedOption struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

var speedOptions = [...]SpeedOption{
	{Value: 0.5, Label: "0.5x"},
	{Value: 0.75, Label: "0.75x"},
	{Value: 1.0, Label: "Normal"},
	{Value: 1.25, Label: "1.25x"},
	{Value: 1.5, Label: "1.5x"},
	{Value: 1.75, Label: "1.75x"},
	{Value: 2.0, Label: "2x"},
}

// SpeedOptions returns the picker entries in ascending order.
func SpeedOptions() []SpeedOption {
	out := make([]SpeedOption, len(speedOptions))
	copy(out, speedOptions[:])
	return out
}

// DefaultSpeed is the 1.0x entry.
func DefaultSpeed() SpeedOption { return speedOptions[2] }

// SpeedByValue finds the table entry for rate.
func SpeedByValue(rate float64) (SpeedOption, bool) {
	for _, o := range speedOptions {
		if o.Value == rate {
			return o, true
		}
	}
	return SpeedOption{}, false
}
