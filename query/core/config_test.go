package core

import (
	"context"
	"errors"
	"testing"
)

func TestTraversalConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		maxBuffered int
		wantErr     bool
	}{
		{name: "unlimited", maxBuffered: 0, wantErr: false},
		{name: "positive", maxBuffered: 64, wantErr: false},
		{name: "negative", maxBuffered: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &TraversalConfig{MaxBuffered: tt.maxBuffered}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTraversalConfig_FromContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want TraversalConfig
	}{
		{
			name: "no config uses default",
			ctx:  context.Background(),
			want: DefaultTraversalConfig(),
		},
		{
			name: "attached config",
			ctx:  WithConfig(context.Background(), &TraversalConfig{MaxBuffered: 3}),
			want: TraversalConfig{MaxBuffered: 3},
		},
		{
			name: "nil pointer falls back",
			ctx:  WithConfig[*TraversalConfig](context.Background(), nil),
			want: DefaultTraversalConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := traversalConfig(tt.ctx); got != tt.want {
				t.Errorf("traversalConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGetConfig_LaterWins(t *testing.T) {
	type limits struct{ n int }
	ctx := WithConfig(context.Background(), limits{1})
	ctx = WithConfig(ctx, limits{2})

	got, ok := GetConfig[limits](ctx)
	if !ok || got.n != 2 {
		t.Errorf("GetConfig() = %+v, %v", got, ok)
	}
	if _, ok := GetConfig[string](ctx); ok {
		t.Error("GetConfig[string] found a value")
	}
}

func TestMaterializeLimit(t *testing.T) {
	ctx := WithConfig(context.Background(), &TraversalConfig{CheckContext: true, MaxBuffered: 3})

	if _, err := Materialize(ctx, Range(0, 3)); err != nil {
		t.Fatalf("Materialize(3) error = %v", err)
	}
	if _, err := Materialize(ctx, Range(0, 4)); !errors.Is(err, ErrBufferLimit) {
		t.Errorf("Materialize(4) error = %v, want ErrBufferLimit", err)
	}
}

func TestDeferredRunsPrepareOnAdvance(t *testing.T) {
	calls := 0
	seq := Deferred(func(context.Context) ([]int, error) {
		calls++
		return []int{1, 2}, nil
	})

	cur := seq.Iterate(context.Background())
	if calls != 0 {
		t.Fatalf("prepare ran on Iterate")
	}
	cur.Advance()
	cur.Advance()
	cur.Close()

	got := collectValues(t, seq)
	if calls != 2 || len(got) != 2 {
		t.Errorf("calls = %d, got = %v", calls, got)
	}
}

func TestDeferredFaultIsSingle(t *testing.T) {
	boom := errors.New("boom")
	results := Collect(context.Background(), Deferred(func(context.Context) ([]int, error) {
		return nil, boom
	}))
	if len(results) != 1 || results[0].Error() != boom {
		t.Errorf("results = %+v", results)
	}
}
