package time

import (
	"testing"
	"time"
)

func TestParseFlexibleTime(t *testing.T) {
	want := time.Date(2015, time.March, 4, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"wiki timestamp", "20150304123000", want},
		{"RFC3339", "2015-03-04T12:30:00Z", want},
		{"RFC3339 with offset", "2015-03-04T14:30:00+02:00", want},
		{"RFC1123", "Wed, 04 Mar 2015 12:30:00 UTC", want},
		{"date time", "2015-03-04 12:30:00", want},
		{"date only", "2015-03-04", time.Date(2015, time.March, 4, 0, 0, 0, 0, time.UTC)},
		{"surrounding whitespace", "  20150304123000 ", want},
		{"unix seconds", "1425472200", want},
		{"unix seconds with marker", "@1425472200", want},
		{"invalid wiki timestamp", "20151304123000", time.Time{}},
		{"too many digits", "142547220000000000", time.Time{}},
		{"RFC850", "Wednesday, 04-Mar-15 12:30:00 UTC", want},
		{"empty", "", time.Time{}},
		{"garbage", "last tuesday", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFlexibleTime(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("ParseFlexibleTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2015, time.March, 4, 14, 30, 0, 0, time.FixedZone("CEST", 2*3600))

	if got := FormatTimestamp(ts); got != "20150304123000" {
		t.Errorf("FormatTimestamp() = %s, want 20150304123000", got)
	}
}
