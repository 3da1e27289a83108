package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Layouts accepted for created_at, most specific first. Zone-less values
// come from timestamp columns and are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// normalizeRow rewrites a live row into the shape records decode from:
// non-string ids (serial, bigint, identity keys) become strings and
// created_at becomes RFC 3339.
func normalizeRow(doc []byte) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("row is null")
	}

	if id, ok := fields["id"]; ok {
		id = bytes.TrimSpace(id)
		if len(id) > 0 && id[0] != '"' && !bytes.Equal(id, []byte("null")) {
			fields["id"], _ = json.Marshal(string(id))
		}
	}

	if raw, ok := fields["created_at"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			ts, err := parseTimestamp(s)
			if err != nil {
				return nil, err
			}
			fields["created_at"], _ = json.Marshal(ts.Format(time.RFC3339Nano))
		}
	}
	return json.Marshal(fields)
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}
