package copyright

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		startDate    string
		startYear    int
		hasStartYear bool
		current      int
		want         string
		wantWarnings int
	}{
		{name: "date range", startDate: "2020-03-01", current: 2024, want: "2020-2024"},
		{name: "year equals current", startYear: 2024, hasStartYear: true, current: 2024, want: "2024"},
		{name: "future date", startDate: "2099-01-01", current: 2024, want: "2024", wantWarnings: 1},
		{name: "future year", startYear: 2030, hasStartYear: true, current: 2024, want: "2024", wantWarnings: 1},
		{name: "nothing configured", current: 2024, want: "2024"},
		{name: "slash date", startDate: "2019/12/31", current: 2024, want: "2019-2024"},
		{name: "dotted date", startDate: "2018.1.5", current: 2024, want: "2018-2024"},
		{name: "bare year string", startDate: "2015", current: 2024, want: "2015-2024"},
		{name: "date preferred over year", startDate: "2016-01-01", startYear: 2010, hasStartYear: true, current: 2024, want: "2016-2024"},
		{name: "bad date falls back to year", startDate: "someday", startYear: 2012, hasStartYear: true, current: 2024, want: "2012-2024", wantWarnings: 1},
		{name: "bad date without year", startDate: "2020-13-45", current: 2024, want: "2024", wantWarnings: 1},
		{name: "bad date and future year", startDate: "x/y", startYear: 2050, hasStartYear: true, current: 2024, want: "2024", wantWarnings: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.startDate, tt.startYear, tt.hasStartYear, tt.current)
			if got.Text != tt.want {
				t.Errorf("Resolve() text = %q, want %q", got.Text, tt.want)
			}
			if len(got.Warnings) != tt.wantWarnings {
				t.Errorf("Resolve() warnings = %v, want %d", got.Warnings, tt.wantWarnings)
			}
		})
	}
}

func TestParseStartYear(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"2020-03-01", 2020, false},
		{"2020-3-1", 2020, false},
		{"2020/03/01", 2020, false},
		{"2020.03.01", 2020, false},
		{"1999", 1999, false},
		{"2020-02-30", 0, true},
		{"March 2020", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStartYear(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStartYear(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStartYear(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
