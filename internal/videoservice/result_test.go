package videoservice

import (
	"encoding/json"
	"testing"
)

func TestResultAccessors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus string
		wantID     string
	}{
		{"nested", `{"video":{"id":"v1","status":"processing"}}`, "processing", "v1"},
		{"topLevelID", `{"id":"v2","video":{"status":"processed"}}`, "processed", "v2"},
		{"numericID", `{"video":{"id":12345678}}`, "", "12345678"},
		{"noVideo", `{"message":"hi"}`, "", ""},
		{"videoNotObject", `{"video":"oops"}`, "", ""},
		{"statusNotString", `{"video":{"status":3}}`, "", ""},
		{"arrayBody", `[{"video":{"id":"v1"}}]`, "", ""},
		{"stringBody", `"processed"`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Result
			if err := json.Unmarshal([]byte(tt.body), &r); err != nil {
				t.Fatal(err)
			}
			if got := r.VideoStatus(); got != tt.wantStatus {
				t.Errorf("VideoStatus() = %q, want %q", got, tt.wantStatus)
			}
			if got := r.VideoID(); got != tt.wantID {
				t.Errorf("VideoID() = %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestNilResult(t *testing.T) {
	var r Result
	if r.VideoStatus() != "" || r.VideoID() != "" || r.IsProcessed() {
		t.Error("nil result should have empty accessors")
	}
}
