package connection_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-genai-starter/pkg/connection"
	"github.com/goliatone/go-genai-starter/pkg/params"
	"github.com/goliatone/go-genai-starter/pkg/prompt"
	"github.com/goliatone/go-genai-starter/pkg/testsupport"
)

// numberedCollector returns distinct parameters on every call.
func numberedCollector(calls *int) connection.Collector {
	return func(context.Context) (params.ConnectionParameters, error) {
		*calls++
		return params.ConnectionParameters{
			Endpoint: fmt.Sprintf("https://db%d.apps.astra.datastax.com", *calls),
			Token:    fmt.Sprintf("AstraCS:%d", *calls),
		}, nil
	}
}

func TestAcquire_SurvivesConsecutiveFailures(t *testing.T) {
	for _, failures := range []int{0, 1, 2, 5} {
		t.Run(fmt.Sprintf("%d failures", failures), func(t *testing.T) {
			collects := 0
			checker := testsupport.FailingChecker(failures, errors.New("connection failed"))
			var notices []string

			acq, err := connection.NewAcquirer(numberedCollector(&collects), checker,
				connection.WithNotifier(func(_ context.Context, msg string) { notices = append(notices, msg) }),
			)
			if err != nil {
				t.Fatalf("new acquirer: %v", err)
			}

			res, err := acq.Acquire(context.Background())
			if err != nil {
				t.Fatalf("acquire: %v", err)
			}
			if res.Attempts != failures+1 || collects != failures+1 || len(checker.Calls) != failures+1 {
				t.Fatalf("expected %d cycles, got attempts=%d collects=%d checks=%d",
					failures+1, res.Attempts, collects, len(checker.Calls))
			}
			wantEndpoint := fmt.Sprintf("https://db%d.apps.astra.datastax.com", failures+1)
			if res.Params.Endpoint != wantEndpoint {
				t.Fatalf("expected parameters from the final attempt %q, got %q", wantEndpoint, res.Params.Endpoint)
			}

			var want []string
			for i := 0; i < failures; i++ {
				want = append(want, connection.MsgRetry)
			}
			want = append(want, connection.MsgConnected)
			if diff := cmp.Diff(want, notices); diff != "" {
				t.Fatalf("notices mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAcquire_ThirdAttemptSucceedsWithPromptGroup(t *testing.T) {
	driver := &testsupport.ScriptedDriver{
		Inputs: []string{
			"https://first.apps.astra.datastax.com",
			"https://second.apps.astra.datastax.com",
			"not-a-url",
			"https://third.apps.astra.datastax.com",
		},
		Passwords: []string{"AstraCS:one", "AstraCS:two", "AstraCS:three"},
	}
	checker := testsupport.FailingChecker(2, errors.New("nope"))
	collect := func(ctx context.Context) (params.ConnectionParameters, error) {
		return prompt.CollectConnection(ctx, driver)
	}

	var transitions []string
	acq, err := connection.NewAcquirer(collect, checker,
		connection.WithObserver(func(from, to connection.State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		}),
	)
	if err != nil {
		t.Fatalf("new acquirer: %v", err)
	}

	res, err := acq.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	want := params.ConnectionParameters{Endpoint: "https://third.apps.astra.datastax.com", Token: "AstraCS:three"}
	if diff := cmp.Diff(want, res.Params); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
	if res.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", res.Attempts)
	}
	wantTransitions := []string{
		"collecting->verifying", "verifying->collecting",
		"collecting->verifying", "verifying->collecting",
		"collecting->verifying", "verifying->connected",
	}
	if diff := cmp.Diff(wantTransitions, transitions); diff != "" {
		t.Fatalf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestAcquire_CancellationStopsLoop(t *testing.T) {
	calls := 0
	collect := func(context.Context) (params.ConnectionParameters, error) {
		calls++
		if calls == 2 {
			return params.ConnectionParameters{}, prompt.ErrAborted
		}
		return params.ConnectionParameters{Endpoint: "https://x.apps.astra.datastax.com", Token: "AstraCS:x"}, nil
	}
	checker := testsupport.FailingChecker(10, errors.New("nope"))

	acq, err := connection.NewAcquirer(collect, checker)
	if err != nil {
		t.Fatalf("new acquirer: %v", err)
	}
	_, err = acq.Acquire(context.Background())
	if !prompt.IsAborted(err) {
		t.Fatalf("expected abort, got %v", err)
	}
	if len(checker.Calls) != 1 {
		t.Fatalf("expected one check before abort, got %d", len(checker.Calls))
	}
}

func TestAcquire_ContextCancelledDuringCheck(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	checker := connection.CheckerFunc(func(context.Context, params.ConnectionParameters) error {
		cancel()
		return errors.New("interrupted")
	})
	calls := 0
	acq, err := connection.NewAcquirer(numberedCollector(&calls), checker)
	if err != nil {
		t.Fatalf("new acquirer: %v", err)
	}

	if _, err := acq.Acquire(ctx); !prompt.IsAborted(err) {
		t.Fatalf("expected abort, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected no further collection after cancellation, got %d", calls)
	}
}

func TestAcquire_CollectorFailureIsFatal(t *testing.T) {
	boom := errors.New("terminal gone")
	collect := func(context.Context) (params.ConnectionParameters, error) {
		return params.ConnectionParameters{}, boom
	}
	acq, err := connection.NewAcquirer(collect, testsupport.FailingChecker(0, nil))
	if err != nil {
		t.Fatalf("new acquirer: %v", err)
	}
	if _, err := acq.Acquire(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected collector error, got %v", err)
	}
}

func TestNewAcquirer_RequiresCollaborators(t *testing.T) {
	if _, err := connection.NewAcquirer(nil, testsupport.FailingChecker(0, nil)); err == nil {
		t.Fatalf("expected error for nil collector")
	}
	calls := 0
	if _, err := connection.NewAcquirer(numberedCollector(&calls), nil); err == nil {
		t.Fatalf("expected error for nil checker")
	}
}
