package astra_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-genai-starter/pkg/astra"
	"github.com/goliatone/go-genai-starter/pkg/params"
)

type fakeSession struct {
	factory *fakeFactory
	list    func(ctx context.Context) ([]string, error)
}

func (s *fakeSession) ListCollections(ctx context.Context) ([]string, error) {
	return s.list(ctx)
}

func (s *fakeSession) Close() error {
	s.factory.closed++
	return nil
}

type fakeFactory struct {
	opened  int
	closed  int
	openErr error
	list    func(ctx context.Context) ([]string, error)
}

func (f *fakeFactory) Open(_, _ string) (astra.Session, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.opened++
	return &fakeSession{factory: f, list: f.list}, nil
}

var validConn = params.ConnectionParameters{
	Endpoint: "https://db-us-east1.apps.astra.datastax.com",
	Token:    "AstraCS:secret",
}

func TestChecker_ReleasesSessionOnSuccess(t *testing.T) {
	factory := &fakeFactory{list: func(context.Context) ([]string, error) { return []string{"a"}, nil }}
	checker := astra.NewChecker(factory)

	if err := checker.Check(context.Background(), validConn); err != nil {
		t.Fatalf("check: %v", err)
	}
	if factory.opened != 1 || factory.closed != 1 {
		t.Fatalf("expected one open and one close, got open=%d close=%d", factory.opened, factory.closed)
	}
}

func TestChecker_ReleasesSessionOnFailure(t *testing.T) {
	factory := &fakeFactory{list: func(context.Context) ([]string, error) { return nil, errors.New("401") }}
	checker := astra.NewChecker(factory)

	err := checker.Check(context.Background(), validConn)
	if !errors.Is(err, astra.ErrConnectionFailed) {
		t.Fatalf("expected ErrConnectionFailed, got %v", err)
	}
	if factory.opened != 1 || factory.closed != 1 {
		t.Fatalf("expected one open and one close, got open=%d close=%d", factory.opened, factory.closed)
	}
}

func TestChecker_FreshSessionPerCall(t *testing.T) {
	factory := &fakeFactory{list: func(context.Context) ([]string, error) { return nil, nil }}
	checker := astra.NewChecker(factory)

	for i := 0; i < 3; i++ {
		_ = checker.Check(context.Background(), validConn)
	}
	if factory.opened != 3 || factory.closed != 3 {
		t.Fatalf("expected three sessions, got open=%d close=%d", factory.opened, factory.closed)
	}
}

func TestChecker_OpenFailure(t *testing.T) {
	factory := &fakeFactory{openErr: errors.New("bad endpoint")}
	err := astra.NewChecker(factory).Check(context.Background(), validConn)
	if !errors.Is(err, astra.ErrConnectionFailed) {
		t.Fatalf("expected ErrConnectionFailed, got %v", err)
	}
	if factory.closed != 0 {
		t.Fatalf("nothing to close when open fails, got %d", factory.closed)
	}
}

func TestChecker_TimeoutCountsAsFailure(t *testing.T) {
	factory := &fakeFactory{list: func(ctx context.Context) ([]string, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	checker := astra.NewChecker(factory, astra.WithTimeout(10*time.Millisecond))

	if err := checker.Check(context.Background(), validConn); !errors.Is(err, astra.ErrConnectionFailed) {
		t.Fatalf("expected ErrConnectionFailed, got %v", err)
	}
	if factory.closed != 1 {
		t.Fatalf("expected session to be closed, got %d", factory.closed)
	}
}
