package core

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestTimestampJSONRoundTrip(t *testing.T) {
	ts := Timestamp(time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC))

	data, err := json.Marshal(struct {
		At Timestamp `json:"at"`
	}{ts})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"at":"2024-03-09T14:05:07Z"}` {
		t.Errorf("unexpected encoding %s", data)
	}

	var decoded struct {
		At Timestamp `json:"at"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.At.Time().Equal(ts.Time()) {
		t.Errorf("got %v, want %v", decoded.At.Time(), ts.Time())
	}
}

func TestTimestampRejectsMalformedText(t *testing.T) {
	var ts Timestamp
	if err := ts.UnmarshalText([]byte("09/03/2024")); err == nil {
		t.Error("expected an error for a non-RFC3339 timestamp")
	}
}

func TestNowIsUTC(t *testing.T) {
	if loc := Now().Time().Location(); loc != time.UTC {
		t.Errorf("Now() location = %v, want UTC", loc)
	}
}
