package extract

import (
	"testing"
)

func TestExtractRoomCount(t *testing.T) {
	cases := []struct {
		name        string
		text        string
		wantValue   int
		wantNone    bool
		wantPattern string
	}{
		{
			name:        "simple german",
			text:        "unser hotel hat 25 zimmer mit seeblick",
			wantValue:   25,
			wantPattern: "zimmer",
		},
		{
			name:        "simple english",
			text:        "the hotel offers 48 rooms and a spa",
			wantValue:   48,
			wantPattern: "rooms",
		},
		{
			name:      "year rejected by sanity bound",
			text:      "baujahr 1890 und liebevoll renoviert, heute 25 zimmer",
			wantValue: 25,
		},
		{
			name:     "only out of range candidates",
			text:     "erbaut 1890, zuletzt renoviert 2021",
			wantNone: true,
		},
		{
			name:     "zero is out of range",
			text:     "0 zimmer frei",
			wantNone: true,
		},
		{
			name:      "frequency vote picks repeated value",
			text:      "wir haben 20 zimmer. alle 20 zimmer sind renoviert. dazu 5 suiten.",
			wantValue: 20,
		},
		{
			name: "tie broken by library order",
			// one hit each; "zimmer" precedes "suiten" in the library
			text:      "12 suiten und 30 zimmer",
			wantValue: 30,
		},
		{
			name:      "english units",
			text:      "our aparthotel has 16 units across two buildings",
			wantValue: 16,
		},
		{
			name:      "ferienwohnungen",
			text:      "8 ferienwohnungen direkt am strand",
			wantValue: 8,
		},
		{
			name:     "no numeric mention",
			text:     "gemütliche zimmer mit bergblick",
			wantNone: true,
		},
		{
			name:     "empty text",
			text:     "",
			wantNone: true,
		},
		{
			name:      "upper bound inclusive",
			text:      "500 rooms in total",
			wantValue: 500,
		},
		{
			name:     "above upper bound",
			text:     "501 rooms in total",
			wantNone: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ExtractRoomCount(tc.text)

			if tc.wantNone {
				if result.Value != nil {
					t.Fatalf("value = %d; want none", *result.Value)
				}
				return
			}

			if result.Value == nil {
				t.Fatal("value is nil; want a room count")
			}
			if *result.Value != tc.wantValue {
				t.Errorf("value = %d; want %d", *result.Value, tc.wantValue)
			}
			if tc.wantPattern != "" && result.Pattern != tc.wantPattern {
				t.Errorf("pattern = %q; want %q", result.Pattern, tc.wantPattern)
			}
		})
	}
}

func TestExtractRoomCountStable(t *testing.T) {
	text := "15 zimmer, 15 betten, 40 suiten, 15 apartments und 40 rooms"

	first := ExtractRoomCount(text)
	if first.Value == nil || *first.Value != 15 {
		t.Fatalf("got %+v; want value 15 (three hits beat two)", first)
	}
	for i := 0; i < 20; i++ {
		again := ExtractRoomCount(text)
		if again.Value == nil || *again.Value != *first.Value || again.Pattern != first.Pattern {
			t.Fatalf("run %d: %+v differs from first %+v", i, again, first)
		}
	}
}
