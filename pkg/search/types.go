package search

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/cookiemonster/pkg/cookie"
	"github.com/dmitrymomot/cookiemonster/pkg/oracle"
	"github.com/dmitrymomot/cookiemonster/pkg/sample"
)

// Config is the immutable search configuration shared by every round.
type Config struct {
	Host   string
	Port   int
	Digest cookie.Digest
	// RequestTimeout and ShutdownTimeout are passed to each oracle; zero uses
	// the oracle defaults.
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// MatchRecord describes a sample whose secret was found.
type MatchRecord struct {
	Name        string  `json:"name" yaml:"name"`
	Data        string  `json:"data" yaml:"data"`
	Sig         string  `json:"sig" yaml:"sig"`
	IP          *string `json:"ip" yaml:"ip"`
	Port        *int    `json:"port" yaml:"port"`
	DecodedData string  `json:"decodedData" yaml:"decodedData"`
	Secret      string  `json:"secret" yaml:"secret"`
}

// Result is the outcome of a run. Unsolved holds, per group, the samples no
// candidate matched.
type Result struct {
	RunID    uuid.UUID
	Matches  []MatchRecord
	Unsolved []sample.Group
}

// Oracle is a running verification endpoint for one (name, secret) pair.
type Oracle interface {
	Verify(ctx context.Context, data, sig string) (oracle.Verdict, error)
	Stop(ctx context.Context) error
}

// Launcher starts an oracle. The default launcher wraps oracle.Start.
type Launcher func(ctx context.Context, cfg oracle.Config) (Oracle, error)

// Round identifies one (group, candidate) iteration.
type Round struct {
	GroupIndex int
	Group      string
	Secret     string
	Index      int
	Total      int
	Remaining  int
}

// Observer receives progress notifications. Callbacks run on the search
// goroutine and must not block.
type Observer interface {
	OnRound(ctx context.Context, r Round)
	OnMatch(ctx context.Context, m MatchRecord)
}
