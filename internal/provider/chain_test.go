package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
)

// fakeProvider is a scriptable chain member.
type fakeProvider struct {
	name      string
	available bool
	text      string
	err       error
	calls     int
}

func (f *fakeProvider) Name() string    { return f.name }
func (f *fakeProvider) Available() bool { return f.available }
func (f *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestChainFirstSuccessWins(t *testing.T) {
	first := &fakeProvider{name: "a", available: true, err: errors.New("boom")}
	second := &fakeProvider{name: "b", available: true, text: "the answer"}
	third := &fakeProvider{name: "c", available: true, text: "never reached"}
	chain := NewChain([]Provider{first, second, third}, zap.NewNop())

	text, name, err := chain.Generate(context.Background(), "q")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if text != "the answer" {
		t.Errorf("text = %q, want the second provider's output unmodified", text)
	}
	if name != "b" {
		t.Errorf("provider = %q, want b", name)
	}
	if third.calls != 0 {
		t.Error("later providers must be skipped after a success")
	}
}

func TestChainSkipsUnavailable(t *testing.T) {
	skipped := &fakeProvider{name: "a", available: false}
	hit := &fakeProvider{name: "b", available: true, text: "ok"}
	chain := NewChain([]Provider{skipped, hit}, zap.NewNop())

	if _, _, err := chain.Generate(context.Background(), "q"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if skipped.calls != 0 {
		t.Error("unavailable provider must not be called")
	}
}

func TestChainSkipsUnavailableError(t *testing.T) {
	down := &fakeProvider{name: "a", available: true, err: fmt.Errorf("%w: connection refused", ErrUnavailable)}
	hit := &fakeProvider{name: "b", available: true, text: "ok"}
	chain := NewChain([]Provider{down, hit}, zap.NewNop())

	text, _, err := chain.Generate(context.Background(), "q")
	if err != nil || text != "ok" {
		t.Fatalf("got (%q, %v), want fallthrough to next provider", text, err)
	}
}

func TestChainEmptyCompletionIsSkip(t *testing.T) {
	empty := &fakeProvider{name: "a", available: true, text: ""}
	hit := &fakeProvider{name: "b", available: true, text: "ok"}
	chain := NewChain([]Provider{empty, hit}, zap.NewNop())

	text, _, err := chain.Generate(context.Background(), "q")
	if err != nil || text != "ok" {
		t.Fatalf("got (%q, %v), want empty success treated as skip", text, err)
	}
}

func TestChainExhausted(t *testing.T) {
	chain := NewChain([]Provider{
		&fakeProvider{name: "a", available: false},
		&fakeProvider{name: "b", available: true, err: errors.New("500")},
	}, zap.NewNop())

	_, _, err := chain.Generate(context.Background(), "q")
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("err = %v, want ErrExhausted", err)
	}
}

func TestChainOrderingProperty(t *testing.T) {
	// First K callers fail, K+1 returns T: the result is T, untouched.
	var members []Provider
	for i := 0; i < 4; i++ {
		members = append(members, &fakeProvider{name: fmt.Sprintf("fail%d", i), available: true, err: errors.New("x")})
	}
	want := "T with  internal   spacing preserved"
	members = append(members, &fakeProvider{name: "winner", available: true, text: want})
	chain := NewChain(members, zap.NewNop())

	text, name, err := chain.Generate(context.Background(), "q")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
	if name != "winner" {
		t.Errorf("provider = %q, want winner", name)
	}
}

type fakePingable struct {
	fakeProvider
	pingErr error
}

func (f *fakePingable) Ping(ctx context.Context) error { return f.pingErr }

func TestProbe(t *testing.T) {
	live := &fakePingable{fakeProvider: fakeProvider{name: "live", available: true}}
	dead := &fakePingable{fakeProvider: fakeProvider{name: "dead", available: true}, pingErr: errors.New("refused")}
	plain := &fakeProvider{name: "plain", available: true}
	off := &fakeProvider{name: "off", available: false}
	chain := NewChain([]Provider{live, dead, plain, off}, zap.NewNop())

	results := chain.Probe(context.Background())
	byName := map[string]ProbeResult{}
	for _, r := range results {
		byName[r.Provider] = r
	}
	if !byName["live"].Live {
		t.Error("pingable provider with healthy ping should be live")
	}
	if byName["dead"].Live {
		t.Error("failed ping should mark provider dead")
	}
	if !byName["plain"].Live {
		t.Error("non-pingable configured provider should be live")
	}
	if byName["off"].Live {
		t.Error("unconfigured provider should not be live")
	}
}
