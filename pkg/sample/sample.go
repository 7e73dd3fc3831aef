package sample

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// Sample is one captured cookie pair. IP and Port only describe where it was
// captured and are never used for verification.
type Sample struct {
	IP   *string `json:"ip" yaml:"ip"`
	Port *int    `json:"port" yaml:"port"`
	Data string  `json:"data" yaml:"data"`
	Sig  string  `json:"sig" yaml:"sig"`
}

// Origin renders the capture origin as "ip:port", or "" when no IP is known.
func (s Sample) Origin() string {
	if s.IP == nil || *s.IP == "" {
		return ""
	}
	if s.Port == nil {
		return *s.IP
	}
	return *s.IP + ":" + strconv.Itoa(*s.Port)
}

// Decoded returns the plaintext session carried by the sample.
func (s Sample) Decoded() string {
	return DecodeData(s.Data)
}

// Group is a set of samples that share one cookie name.
type Group struct {
	Name    string   `json:"name" yaml:"name"`
	Samples []Sample `json:"samples" yaml:"samples"`
}

// Single builds the one-group batch used when a cookie is passed on the
// command line.
func Single(name, data, sig string) []Group {
	return []Group{{
		Name:    name,
		Samples: []Sample{{Data: data, Sig: sig}},
	}}
}

// Validate checks that every group has a name and that names are unique.
func Validate(groups []Group) error {
	seen := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		if g.Name == "" {
			return ErrEmptyGroupName
		}
		if _, ok := seen[g.Name]; ok {
			return ErrDuplicateGroup
		}
		seen[g.Name] = struct{}{}
	}
	return nil
}

// Count returns the total number of samples across groups.
func Count(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Samples)
	}
	return n
}

// DecodeData decodes a base64 cookie payload leniently: both the standard and
// URL-safe alphabets are accepted, padding is optional and characters outside
// the alphabet are skipped. Undecodable input yields whatever prefix could be
// recovered.
func DecodeData(data string) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, r := range data {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '/':
			b.WriteRune(r)
		case r == '-':
			b.WriteByte('+')
		case r == '_':
			b.WriteByte('/')
		}
	}
	clean := b.String()
	if len(clean)%4 == 1 {
		clean = clean[:len(clean)-1]
	}
	out, err := base64.RawStdEncoding.DecodeString(clean)
	if err != nil {
		return ""
	}
	return string(out)
}
