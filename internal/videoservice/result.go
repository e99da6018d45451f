package videoservice

import (
	"encoding/json"
	"strconv"
)

const StatusProcessed = "processed"

// Result holds a decoded backend JSON body of any shape. Only the fields read
// by the accessors below have a known meaning; everything else is passed
// through untouched.
type Result struct {
	Value any
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value)
}

func (r *Result) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.Value)
}

// Object returns the body as a JSON object, or nil when it is not one.
func (r Result) Object() map[string]any {
	obj, _ := r.Value.(map[string]any)
	return obj
}

func (r Result) video() map[string]any {
	v, _ := r.Object()["video"].(map[string]any)
	return v
}

func (r Result) VideoStatus() string {
	status, _ := r.video()["status"].(string)
	return status
}

func (r Result) VideoID() string {
	if id := stringify(r.video()["id"]); id != "" {
		return id
	}
	return stringify(r.Object()["id"])
}

func (r Result) IsProcessed() bool {
	return r.VideoStatus() == StatusProcessed
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}
