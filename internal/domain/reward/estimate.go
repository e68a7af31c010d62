// Package reward holds the linear (non-compounding) BONK reward formulas used
// by staking pools and the membership card.
package reward

import (
	"math"
	"strconv"
	"strings"
)

const DaysPerYear = 365

// DailyRate converts an annual yield fraction (0.12 == 12%) into a daily rate.
func DailyRate(apy float64) float64 {
	return sanitize(apy) / DaysPerYear
}

// Estimate returns round(principal * (apy/365) * days).
func Estimate(principal, apy float64, days int) int64 {
	return EstimateDaily(principal, DailyRate(apy), days)
}

// EstimateDaily returns round(principal * dailyRate * days).
// Negative or non-finite inputs count as 0.
func EstimateDaily(principal, dailyRate float64, days int) int64 {
	if days < 0 {
		days = 0
	}
	value := sanitize(principal) * sanitize(dailyRate) * float64(days)
	if value >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Round(value))
}

// PercentToFraction turns an APY shown as "12" (percent) into 0.12.
func PercentToFraction(percent float64) float64 {
	return sanitize(percent) / 100
}

// ParseAmount parses user input, treating anything non-numeric as 0.
func ParseAmount(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return sanitize(value)
}

// ParseDays parses a whole number of days, treating anything invalid as 0.
func ParseDays(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return 0
	}
	return value
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
