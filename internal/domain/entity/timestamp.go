package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp tiempo tal como lo serializa el backend: ISO-8601 con o sin zona.
// FastAPI emite datetimes naive ("2026-02-10T08:30:00") que encoding/json no acepta.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NewTimestamp envuelve t.
func NewTimestamp(t time.Time) Timestamp { return Timestamp{Time: t} }

// UnmarshalJSON acepta null, cadenas vacías y los layouts conocidos.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: formato no reconocido %q", s)
}

// MarshalJSON serializa en RFC3339; el cero se emite como null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Display formato corto para tablas y timeline.
func (t Timestamp) Display() string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006 15:04")
}
