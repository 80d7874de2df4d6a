package domain

import (
	"strconv"
	"strings"
	"time"
)

const (
	gs1GroupSeparator = "\x1d"
	gs1ExpiryAI       = "17"
)

// fixed-length GS1 application identifiers and their data lengths.
var gs1FixedLengths = map[string]int{
	"00": 18,
	"01": 14,
	"02": 14,
	"11": 6,
	"12": 6,
	"13": 6,
	"15": 6,
	"16": 6,
	"17": 6,
	"20": 2,
}

// variable-length identifiers, terminated by a group separator or end of data.
var gs1VariableAIs = map[string]struct{}{
	"10": {},
	"21": {},
	"22": {},
}

// ExpiryDate extracts the GS1 (17) expiration date from a payload, either in
// human readable "(01)...(17)YYMMDD" form or as a raw element string.
func ExpiryDate(payload string) (time.Time, bool) {
	if strings.Contains(payload, "(") {
		return bracketedExpiry(payload)
	}

	return rawExpiry(payload)
}

// IsExpired reports whether the expiry day lies before the day of now.
func IsExpired(expiry, now time.Time) bool {
	if expiry.IsZero() {
		return false
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return expiry.Before(today)
}

func bracketedExpiry(payload string) (time.Time, bool) {
	idx := strings.Index(payload, "("+gs1ExpiryAI+")")
	if idx < 0 {
		return time.Time{}, false
	}

	rest := payload[idx+len(gs1ExpiryAI)+2:]
	if len(rest) < 6 {
		return time.Time{}, false
	}

	return parseGS1Date(rest[:6])
}

func rawExpiry(payload string) (time.Time, bool) {
	data := payload
	for _, prefix := range []string{"]C1", "]d2", "]Q3", "]e0"} {
		data = strings.TrimPrefix(data, prefix)
	}
	data = strings.TrimPrefix(data, gs1GroupSeparator)

	for len(data) >= 2 {
		ai := data[:2]
		data = data[2:]

		if length, ok := gs1FixedLengths[ai]; ok {
			if len(data) < length || !isDigits(data[:length]) {
				return time.Time{}, false
			}
			if ai == gs1ExpiryAI {
				return parseGS1Date(data[:length])
			}
			data = strings.TrimPrefix(data[length:], gs1GroupSeparator)
			continue
		}

		if _, ok := gs1VariableAIs[ai]; ok {
			end := strings.Index(data, gs1GroupSeparator)
			if end < 0 {
				return time.Time{}, false
			}
			data = data[end+1:]
			continue
		}

		return time.Time{}, false
	}

	return time.Time{}, false
}

// parseGS1Date reads YYMMDD; a day of 00 means the last day of the month.
func parseGS1Date(raw string) (time.Time, bool) {
	if len(raw) != 6 || !isDigits(raw) {
		return time.Time{}, false
	}

	yy, _ := strconv.Atoi(raw[0:2])
	mm, _ := strconv.Atoi(raw[2:4])
	dd, _ := strconv.Atoi(raw[4:6])
	if mm < 1 || mm > 12 {
		return time.Time{}, false
	}

	year := 2000 + yy
	month := time.Month(mm)
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if dd == 0 {
		dd = lastDay
	}
	if dd > lastDay {
		return time.Time{}, false
	}

	return time.Date(year, month, dd, 0, 0, 0, 0, time.UTC), true
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
