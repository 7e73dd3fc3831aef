package search_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiemonster/pkg/logger"
	"github.com/dmitrymomot/cookiemonster/pkg/oracle"
	"github.com/dmitrymomot/cookiemonster/pkg/sample"
	"github.com/dmitrymomot/cookiemonster/pkg/search"
)

// fakeLab hands out oracles that accept a sample when the oracle secret
// matches the one registered for it.
type fakeLab struct {
	mu        sync.Mutex
	secrets   map[string]string // data -> secret
	failOn    map[string]bool   // data -> probe error
	startErr  map[string]error  // secret -> start error
	launches  []string
	verifies  map[string]int
	active    int
	maxActive int
}

func newFakeLab() *fakeLab {
	return &fakeLab{
		secrets:  map[string]string{},
		failOn:   map[string]bool{},
		startErr: map[string]error{},
		verifies: map[string]int{},
	}
}

func (l *fakeLab) launcher() search.Launcher {
	return func(_ context.Context, cfg oracle.Config) (search.Oracle, error) {
		l.mu.Lock()
		defer l.mu.Unlock()
		if err := l.startErr[cfg.CookieSecret]; err != nil {
			return nil, err
		}
		l.launches = append(l.launches, cfg.CookieSecret)
		l.active++
		l.maxActive = max(l.maxActive, l.active)
		return &fakeOracle{lab: l, secret: cfg.CookieSecret}, nil
	}
}

type fakeOracle struct {
	lab     *fakeLab
	secret  string
	stopped bool
}

func (o *fakeOracle) Verify(_ context.Context, data, _ string) (oracle.Verdict, error) {
	o.lab.mu.Lock()
	defer o.lab.mu.Unlock()
	o.lab.verifies[data]++
	if o.lab.failOn[data] {
		return oracle.Verdict{}, errors.New("connection reset")
	}
	if o.lab.secrets[data] == o.secret {
		return oracle.Verdict{Valid: true}, nil
	}
	return oracle.Verdict{}, nil
}

func (o *fakeOracle) Stop(context.Context) error {
	o.lab.mu.Lock()
	defer o.lab.mu.Unlock()
	if !o.stopped {
		o.stopped = true
		o.lab.active--
	}
	return nil
}

type recorder struct {
	rounds  []search.Round
	matches []search.MatchRecord
	onRound func(search.Round)
}

func (r *recorder) OnRound(_ context.Context, rd search.Round) {
	r.rounds = append(r.rounds, rd)
	if r.onRound != nil {
		r.onRound(rd)
	}
}

func (r *recorder) OnMatch(_ context.Context, m search.MatchRecord) {
	r.matches = append(r.matches, m)
}

func secrets(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "s" + string(rune('0'+i))
	}
	return out
}

func TestEmptyGroupStartsNoOracle(t *testing.T) {
	t.Parallel()
	lab := newFakeLab()
	d := search.New(search.Config{}, search.WithLauncher(lab.launcher()))

	res, err := d.Run(context.Background(), []sample.Group{{Name: "session"}}, secrets(5))
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
	assert.Empty(t, res.Unsolved)
	assert.Empty(t, lab.launches)
}

func TestEmptyWordlist(t *testing.T) {
	t.Parallel()
	lab := newFakeLab()
	d := search.New(search.Config{}, search.WithLauncher(lab.launcher()))

	groups := sample.Single("session", "A", "sigA")
	res, err := d.Run(context.Background(), groups, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
	assert.Empty(t, lab.launches)
	assert.Equal(t, groups, res.Unsolved)
}

func TestWrongSecretsLeaveSamplesUnsolved(t *testing.T) {
	t.Parallel()
	lab := newFakeLab()
	lab.secrets["A"] = "nowhere"
	d := search.New(search.Config{}, search.WithLauncher(lab.launcher()))

	res, err := d.Run(context.Background(), sample.Single("session", "A", "sigA"), secrets(3))
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
	assert.Len(t, lab.launches, 3)
	assert.Equal(t, 3, lab.verifies["A"])
	require.Len(t, res.Unsolved, 1)
	assert.Len(t, res.Unsolved[0].Samples, 1)
}

func TestSolvedSamplesAreNotRetested(t *testing.T) {
	t.Parallel()
	lab := newFakeLab()
	lab.secrets["A"] = "s1"
	lab.secrets["B"] = "s3"
	d := search.New(search.Config{}, search.WithLauncher(lab.launcher()))

	groups := []sample.Group{{Name: "session", Samples: []sample.Sample{{Data: "A"}, {Data: "B"}}}}
	res, err := d.Run(context.Background(), groups, secrets(5))
	require.NoError(t, err)

	assert.Equal(t, 2, lab.verifies["A"], "A is solved by the second secret")
	assert.Equal(t, 4, lab.verifies["B"], "B is solved by the fourth secret")
	assert.Equal(t, []string{"s0", "s1", "s2", "s3"}, lab.launches, "group is left once empty")
	require.Len(t, res.Matches, 2)
	assert.Equal(t, "s1", res.Matches[0].Secret)
	assert.Equal(t, "s3", res.Matches[1].Secret)
	assert.Empty(t, res.Unsolved)
	assert.Len(t, groups[0].Samples, 2, "caller groups are not mutated")
}

func TestMultipleMatchesInOneRound(t *testing.T) {
	t.Parallel()
	lab := newFakeLab()
	lab.secrets["A"] = "s1"
	lab.secrets["B"] = "s1"
	d := search.New(search.Config{}, search.WithLauncher(lab.launcher()))

	groups := []sample.Group{{Name: "session", Samples: []sample.Sample{{Data: "A"}, {Data: "B"}}}}
	res, err := d.Run(context.Background(), groups, secrets(5))
	require.NoError(t, err)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, []string{"s0", "s1"}, lab.launches)
	assert.Equal(t, 2, lab.verifies["A"])
	assert.Equal(t, 2, lab.verifies["B"])
}

func TestEarlyTermination(t *testing.T) {
	t.Parallel()
	lab := newFakeLab()
	lab.secrets["A"] = "s1"
	rec := &recorder{}
	d := search.New(search.Config{}, search.WithLauncher(lab.launcher()), search.WithObserver(rec))

	res, err := d.Run(context.Background(), sample.Single("session", "A", "sigA"), secrets(10))
	require.NoError(t, err)
	assert.Len(t, lab.launches, 2, "no oracle after the group is solved")
	assert.Equal(t, 2, lab.verifies["A"])
	require.Len(t, res.Matches, 1)

	require.Len(t, rec.rounds, 2)
	assert.Equal(t, search.Round{Group: "session", Secret: "s1", Index: 1, Total: 10, Remaining: 1}, rec.rounds[1])
	assert.Equal(t, res.Matches, rec.matches)
}

func TestGroupsAreIndependent(t *testing.T) {
	t.Parallel()
	lab := newFakeLab()
	lab.secrets["A"] = "s0"
	lab.secrets["B"] = "s2"
	d := search.New(search.Config{}, search.WithLauncher(lab.launcher()))

	groups := []sample.Group{
		{Name: "first", Samples: []sample.Sample{{Data: "A"}}},
		{Name: "second", Samples: []sample.Sample{{Data: "B"}}},
	}
	res, err := d.Run(context.Background(), groups, secrets(4))
	require.NoError(t, err)
	assert.Equal(t, []string{"s0", "s0", "s1", "s2"}, lab.launches)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, "first", res.Matches[0].Name)
	assert.Equal(t, "second", res.Matches[1].Name)
	assert.Equal(t, 1, lab.maxActive, "only one oracle at a time")
	assert.Zero(t, lab.active, "every oracle is stopped")
}

func TestProbeFailureCountsAsNoMatch(t *testing.T) {
	t.Parallel()
	lab := newFakeLab()
	lab.secrets["A"] = "s0"
	lab.secrets["B"] = "s1"
	lab.failOn["A"] = true
	d := search.New(search.Config{}, search.WithLauncher(lab.launcher()))

	groups := []sample.Group{{Name: "session", Samples: []sample.Sample{{Data: "A"}, {Data: "B"}}}}
	res, err := d.Run(context.Background(), groups, secrets(3))
	require.NoError(t, err)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "B", res.Matches[0].Data)
	assert.Equal(t, 3, lab.verifies["A"])
	require.Len(t, res.Unsolved, 1)
	assert.Equal(t, "A", res.Unsolved[0].Samples[0].Data)
}

func TestOracleStartFailureAborts(t *testing.T) {
	t.Parallel()
	lab := newFakeLab()
	lab.secrets["A"] = "s0"
	lab.startErr["s1"] = errors.New("address already in use")
	d := search.New(search.Config{}, search.WithLauncher(lab.launcher()))

	groups := []sample.Group{{Name: "session", Samples: []sample.Sample{{Data: "A"}, {Data: "B"}}}}
	res, err := d.Run(context.Background(), groups, secrets(3))
	require.Error(t, err)
	assert.ErrorIs(t, err, search.ErrOracleStart)
	require.Len(t, res.Matches, 1, "partial result is kept")
	require.Len(t, res.Unsolved, 1)
	assert.Equal(t, "B", res.Unsolved[0].Samples[0].Data)
	assert.Zero(t, lab.active)
}

func TestCancelBetweenRounds(t *testing.T) {
	t.Parallel()
	lab := newFakeLab()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := &recorder{onRound: func(r search.Round) {
		if r.Index == 1 {
			cancel()
		}
	}}
	d := search.New(search.Config{}, search.WithLauncher(lab.launcher()), search.WithObserver(rec))

	res, err := d.Run(ctx, sample.Single("session", "A", "sigA"), secrets(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, search.ErrAborted)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, lab.launches, 2, "the running round completes")
	assert.Zero(t, lab.active, "aborted run stops its oracle")
	assert.NotEqual(t, uuid.Nil, res.RunID)
	assert.Len(t, res.Unsolved, 1)
}

func TestMatchRecordAndLogs(t *testing.T) {
	t.Parallel()
	lab := newFakeLab()
	lab.secrets["eyJmb28iOiJiYXIifQ=="] = "keyboard cat"
	lab.secrets["eyJhIjoxLCJiIjoieCJ9"] = "keyboard cat"

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithNoColor())
	d := search.New(search.Config{}, search.WithLauncher(lab.launcher()), search.WithLogger(log))

	ip, port := "10.0.0.1", 443
	groups := []sample.Group{{Name: "session", Samples: []sample.Sample{
		{IP: &ip, Port: &port, Data: "eyJmb28iOiJiYXIifQ==", Sig: "LVMVxSNPdU_G8S3mkjlShUD78s4"},
		{Data: "eyJhIjoxLCJiIjoieCJ9", Sig: "x"},
	}}}
	res, err := d.Run(context.Background(), groups, []string{"keyboard cat"})
	require.NoError(t, err)
	require.Len(t, res.Matches, 2)

	assert.Equal(t, search.MatchRecord{
		Name:        "session",
		Data:        "eyJmb28iOiJiYXIifQ==",
		Sig:         "LVMVxSNPdU_G8S3mkjlShUD78s4",
		IP:          &ip,
		Port:        &port,
		DecodedData: `{"foo":"bar"}`,
		Secret:      "keyboard cat",
	}, res.Matches[0])

	raw, err := json.Marshal(res.Matches[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"session","data":"eyJhIjoxLCJiIjoieCJ9","sig":"x","ip":null,"port":null,"decodedData":"{\"a\":1,\"b\":\"x\"}","secret":"keyboard cat"}`, string(raw))

	out := buf.String()
	assert.Contains(t, out, "[*] Testing samples for: session\n")
	assert.Contains(t, out, "[+] Found secret for 10.0.0.1:443: keyboard cat\n")
	assert.Contains(t, out, "[+] Found secret: keyboard cat\n")
}

func TestRunIDIsLogged(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithJSONFormatter(),
		logger.WithContextExtractors(search.LoggerExtractor()),
	)
	d := search.New(search.Config{}, search.WithLauncher(newFakeLab().launcher()), search.WithLogger(log))

	res, err := d.Run(context.Background(), []sample.Group{{Name: "session"}}, nil)
	require.NoError(t, err)

	line, _, _ := strings.Cut(buf.String(), "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, res.RunID.String(), entry["run_id"])
}

func TestKeyboardCatWithRealOracle(t *testing.T) {
	t.Parallel()
	d := search.New(search.Config{Host: "127.0.0.1", Port: 0})

	groups := sample.Single("session", "eyJmb28iOiJiYXIifQ==", "LVMVxSNPdU_G8S3mkjlShUD78s4")
	res, err := d.Run(context.Background(), groups, []string{"word1", "keyboard cat", "word3"})
	require.NoError(t, err)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "keyboard cat", res.Matches[0].Secret)
	assert.Equal(t, `{"foo":"bar"}`, res.Matches[0].DecodedData)
	assert.Nil(t, res.Matches[0].IP)
	assert.Empty(t, res.Unsolved)
}
