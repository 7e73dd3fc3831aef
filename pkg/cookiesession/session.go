package cookiesession

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"maps"
	"strconv"
	"strings"
)

// Session is the decoded content of a signed session cookie. It is scoped to a
// single request and is not safe for concurrent use.
type Session struct {
	values  map[string]any
	isNew   bool
	changed bool
}

func newSession(values map[string]any, isNew bool) *Session {
	if values == nil {
		values = make(map[string]any)
	}
	return &Session{values: values, isNew: isNew}
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and marks the session as changed.
func (s *Session) Set(key string, value any) {
	s.values[key] = value
	s.changed = true
}

// Merge copies every entry of values into the session.
func (s *Session) Merge(values map[string]any) {
	for k, v := range values {
		s.Set(k, v)
	}
}

// Delete removes key.
func (s *Session) Delete(key string) {
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.changed = true
	}
}

// Clear drops every entry. A cleared session expires its cookies on write.
func (s *Session) Clear() {
	if len(s.values) > 0 {
		s.values = make(map[string]any)
		s.changed = true
	}
}

// Len returns the number of entries.
func (s *Session) Len() int { return len(s.values) }

// Populated reports whether the session holds at least one entry.
func (s *Session) Populated() bool { return len(s.values) > 0 }

// IsNew reports whether the request carried no verified session.
func (s *Session) IsNew() bool { return s.isNew }

// IsChanged reports whether the session was modified during the request.
func (s *Session) IsChanged() bool { return s.changed }

// Values returns a copy of the session entries.
func (s *Session) Values() map[string]any {
	return maps.Clone(s.values)
}

// Encode serializes values the way cookie-session does: JSON, then standard
// base64 with padding.
func Encode(values map[string]any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(values); err != nil {
		return "", errors.Join(ErrEncode, err)
	}
	raw := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode parses a cookie value produced by Encode. Both base64 alphabets are
// accepted with or without padding.
//
// Any JSON value is accepted and its keys are copied the way cookie-session
// builds a session: objects as they are, arrays and strings by index, other
// values as an empty session.
func Decode(value string) (map[string]any, error) {
	value = strings.TrimRight(value, "=")
	value = strings.NewReplacer("-", "+", "_", "/").Replace(value)
	raw, err := base64.RawStdEncoding.DecodeString(value)
	if err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}

	values := map[string]any{}
	switch v := payload.(type) {
	case map[string]any:
		values = v
	case []any:
		for i, item := range v {
			values[strconv.Itoa(i)] = item
		}
	case string:
		for i, r := range []rune(v) {
			values[strconv.Itoa(i)] = string(r)
		}
	}
	return values, nil
}
