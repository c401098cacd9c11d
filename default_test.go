// Copyright 2023 Ahmad Sameh(asmsh)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package futurecore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/asmsh/futurecore"
	"github.com/asmsh/futurecore/outcome"
)

// awaitOutcome waits for the outcome an installed callback sends on done:
// Go resolves its Future from another goroutine, so the callback may fire
// after Install has already returned.
func awaitOutcome(t *testing.T, done <-chan outcome.Outcome[int]) outcome.Outcome[int] {
	t.Helper()
	select {
	case got := <-done:
		return got
	case <-time.After(time.Second):
		t.Fatal("future from Go never resolved")
		return outcome.Outcome[int]{}
	}
}

func TestGo_ReturnsValue(t *testing.T) {
	f := futurecore.Go(func(context.Context) (int, error) {
		return 42, nil
	})

	done := make(chan outcome.Outcome[int], 1)
	require.NoError(t, f.Install(context.Background(), func(_ context.Context, o outcome.Outcome[int]) {
		done <- o
	}))
	got := awaitOutcome(t, done)
	require.True(t, got.Ok())
	require.Equal(t, 42, got.Value())
	require.NoError(t, f.Close())
}

func TestGo_ReturnsError(t *testing.T) {
	wantErr := errors.New("boom")
	f := futurecore.Go(func(context.Context) (int, error) {
		return 0, wantErr
	})

	done := make(chan outcome.Outcome[int], 1)
	require.NoError(t, f.Install(context.Background(), func(_ context.Context, o outcome.Outcome[int]) {
		done <- o
	}))
	got := awaitOutcome(t, done)
	require.False(t, got.Ok())
	require.ErrorIs(t, got.Failure(), wantErr)
	require.NoError(t, f.Close())
}

func TestGo_RecoversPanic(t *testing.T) {
	f := futurecore.Go(func(context.Context) (int, error) {
		panic("boom")
	})

	done := make(chan outcome.Outcome[int], 1)
	require.NoError(t, f.Install(context.Background(), func(_ context.Context, o outcome.Outcome[int]) {
		done <- o
	}))
	got := awaitOutcome(t, done)
	require.False(t, got.Ok())
	v, ok := got.Failure().PanicValue()
	require.True(t, ok)
	require.Equal(t, "boom", v)
	require.NoError(t, f.Close())
}

func TestResolvedAndFailed(t *testing.T) {
	f := futurecore.Resolved(7)
	var got outcome.Outcome[int]
	require.NoError(t, f.Install(context.Background(), func(_ context.Context, o outcome.Outcome[int]) {
		got = o
	}))
	require.Equal(t, 7, got.Value())
	require.NoError(t, f.Close())

	wantErr := errors.New("nope")
	f2 := futurecore.Failed[int](outcome.NewFailure(wantErr))
	var got2 outcome.Outcome[int]
	require.NoError(t, f2.Install(context.Background(), func(_ context.Context, o outcome.Outcome[int]) {
		got2 = o
	}))
	require.False(t, got2.Ok())
	require.ErrorIs(t, got2.Failure(), wantErr)
	require.NoError(t, f2.Close())
}
