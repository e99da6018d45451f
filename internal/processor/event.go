package processor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

const defaultTitle = "video"

var ErrIncompleteJob = errors.New("incomplete video data")

type Job struct {
	VideoID  string
	VideoURL string
	Title    string
}

// flexString accepts both JSON strings and numbers; backends are not
// consistent about the type of video_id.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = flexString(num.String())
	return nil
}

type dispatchEvent struct {
	ClientPayload struct {
		VideoID  flexString `json:"video_id"`
		VideoURL string     `json:"video_url"`
		Title    string     `json:"title"`
	} `json:"client_payload"`
}

// ParseEvent reads a repository_dispatch event body.
func ParseEvent(r io.Reader) (Job, error) {
	var event dispatchEvent
	if err := json.NewDecoder(r).Decode(&event); err != nil {
		return Job{}, fmt.Errorf("decode event: %w", err)
	}

	job := Job{
		VideoID:  string(event.ClientPayload.VideoID),
		VideoURL: event.ClientPayload.VideoURL,
		Title:    event.ClientPayload.Title,
	}
	if job.Title == "" {
		job.Title = defaultTitle
	}

	if err := job.Validate(); err != nil {
		return Job{}, err
	}

	return job, nil
}

func LoadEvent(path string) (Job, error) {
	if path == "" {
		return Job{}, fmt.Errorf("no event file given")
	}

	f, err := os.Open(path)
	if err != nil {
		return Job{}, fmt.Errorf("open event: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseEvent(f)
}

func (j Job) Validate() error {
	if j.VideoID == "" || j.VideoURL == "" {
		return ErrIncompleteJob
	}
	return nil
}
