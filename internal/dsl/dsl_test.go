package dsl

import "testing"

func TestParseConstraint(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		want    Constraint
		wantErr bool
	}{
		{
			name: "apart unicode gap",
			text: "≥6h apart",
			want: Constraint{Kind: Apart, GapMinutes: 360, Text: "≥6h apart"},
		},
		{
			name: "apart ascii gap",
			text: ">=6h apart",
			want: Constraint{Kind: Apart, GapMinutes: 360, Text: ">=6h apart"},
		},
		{
			name: "before minutes",
			text: "≥90m before food",
			want: Constraint{Kind: Before, GapMinutes: 90, Ref: "food", Text: "≥90m before food"},
		},
		{
			name: "after fractional hours",
			text: "≥0.5h after antibiotic",
			want: Constraint{Kind: After, GapMinutes: 30, Ref: "antibiotic", Text: "≥0.5h after antibiotic"},
		},
		{
			name: "apart from",
			text: "≥1h apart from meal",
			want: Constraint{Kind: ApartFrom, GapMinutes: 60, Ref: "meal", Text: "≥1h apart from meal"},
		},
		{
			name:    "unknown form",
			text:    "≥1h sideways of food",
			wantErr: true,
		},
		{
			name:    "missing gap",
			text:    "apart",
			wantErr: true,
		},
		{
			name:    "bad duration unit",
			text:    "≥1x apart",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseConstraint(tc.text)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				var bad *BadConstraint
				if _, ok := err.(*BadConstraint); !ok {
					t.Fatalf("expected *BadConstraint, got %T", err)
				}
				_ = bad
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseFrequency(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		want    Frequency
		wantErr bool
	}{
		{name: "simple daily", text: "3x daily", want: Frequency{Count: 3, Period: "daily"}},
		{name: "empty defaults to once daily", text: "", want: Frequency{Count: 1, Period: "daily"}},
		{name: "weekly accepted syntactically", text: "2x weekly", want: Frequency{Count: 2, Period: "weekly"}},
		{name: "spaced form", text: "2 x monthly", want: Frequency{Count: 2, Period: "monthly"}},
		{name: "zero count invalid", text: "0x daily", wantErr: true},
		{name: "unknown period", text: "2x fortnightly", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFrequency(tc.text)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseWindow(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		want    Window
		wantErr bool
	}{
		{name: "anchor", text: "08:00", want: Window{Lo: 480, Hi: 480}},
		{name: "range", text: "12:00-14:00", want: Window{Lo: 720, Hi: 840}},
		{name: "inverted range", text: "14:00-12:00", wantErr: true},
		{name: "hour out of range", text: "24:00", wantErr: true},
		{name: "garbage", text: "noon", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseWindow(tc.text)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}
