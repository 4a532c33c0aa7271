package polymarket

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTokenListDecoding(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"native array", `["t1","t2"]`, []string{"t1", "t2"}},
		{"string encoded array", `"[\"t1\",\"t2\"]"`, []string{"t1", "t2"}},
		{"string encoded empty array", `"[]"`, []string{}},
		{"empty string", `""`, nil},
		{"unparseable string", `"not json"`, nil},
		{"number degrades to empty", `42`, nil},
		{"null", `null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got tokenList
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFlexFloatDecoding(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"number", `512.5`, 512.5},
		{"numeric string", `"512.5"`, 512.5},
		{"empty string", `""`, 0},
		{"garbage string", `"abc"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got flexFloat
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if float64(got) != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlexStringDecoding(t *testing.T) {
	var fromString flexString
	if err := json.Unmarshal([]byte(`"m1"`), &fromString); err != nil {
		t.Fatalf("unmarshal string id: %v", err)
	}
	if fromString != "m1" {
		t.Fatalf("got %q, want %q", fromString, "m1")
	}

	var fromNumber flexString
	if err := json.Unmarshal([]byte(`12345`), &fromNumber); err != nil {
		t.Fatalf("unmarshal numeric id: %v", err)
	}
	if fromNumber != "12345" {
		t.Fatalf("got %q, want %q", fromNumber, "12345")
	}
}

func TestAPIEventToDomain(t *testing.T) {
	raw := []byte(`{
		"id": 7,
		"slug": "test-election",
		"title": "Test Election",
		"markets": [
			{"id": "m1", "question": "Will A win?", "clobTokenIds": "[\"t1\",\"t2\"]", "volume": "500"},
			{"id": "m2", "clobTokenIds": [], "volume": 10},
			{"id": "m3", "question": "Will C win?", "clobTokenIds": "broken"}
		]
	}`)

	var apiEvent APIEvent
	if err := json.Unmarshal(raw, &apiEvent); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	ev := apiEvent.ToDomainEvent(raw)

	if ev.ID != "7" || ev.Slug != "test-election" {
		t.Fatalf("unexpected event identity: %+v", ev)
	}
	if len(ev.Markets) != 3 {
		t.Fatalf("got %d markets, want 3", len(ev.Markets))
	}

	m1 := ev.Markets[0]
	if m1.ID != "m1" || m1.Question != "Will A win?" || m1.Volume != 500 {
		t.Fatalf("unexpected m1: %+v", m1)
	}
	if !reflect.DeepEqual(m1.TokenIDs, []string{"t1", "t2"}) {
		t.Fatalf("m1 tokens: %v", m1.TokenIDs)
	}
	if m1.YesTokenID() != "t1" {
		t.Fatalf("m1 yes token: %q", m1.YesTokenID())
	}

	// Empty question defaults to "", empty and unparseable token lists both
	// leave the market without a YES token.
	if ev.Markets[1].Question != "" {
		t.Fatalf("m2 question: %q", ev.Markets[1].Question)
	}
	if ev.Markets[1].YesTokenID() != "" || ev.Markets[2].YesTokenID() != "" {
		t.Fatalf("markets without tokens must have no yes token")
	}

	// Raw body rides along verbatim.
	if string(ev.Raw) != string(raw) {
		t.Fatal("raw body was not preserved")
	}
}
