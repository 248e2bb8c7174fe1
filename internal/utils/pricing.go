package utils

import "math"

// Tiered per-kayak prices in whole dollars, keyed by rounded rental hours.
var hourlyTiers = map[int64]int64{
	1: 10,
	2: 18,
	4: 32,
	8: 50,
}

// fallbackHourlyRate prices durations outside the published tiers.
const fallbackHourlyRate = 10

// RentalPriceDollars computes the total price for renting quantity kayaks for
// the given duration. The duration is rounded to the nearest whole hour before
// the tier lookup, so a rental that runs a few minutes long still bills at its
// booked tier.
func RentalPriceDollars(durationSeconds int64, quantity int32) int64 {
	hours := int64(math.Round(float64(durationSeconds) / 3600))
	if hours < 1 {
		hours = 1
	}

	perKayak, ok := hourlyTiers[hours]
	if !ok {
		perKayak = hours * fallbackHourlyRate
	}
	return perKayak * int64(quantity)
}
