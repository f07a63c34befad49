package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timmy/reconlens/internal/domain"
)

var petra = domain.Site{Slug: "petra", Name: "Petra (Jordan)"}

func TestBuildQueries(t *testing.T) {
	q := BuildQueries("Petra (Jordan)")
	require.Len(t, q, 7)
	assert.Equal(t, "Petra reconstruction", q[0])
	assert.Equal(t, "Petra ancient view", q[6])
}

func TestRetrievePastDeadline(t *testing.T) {
	primary := &fakeProvider{name: "p", items: scoredItems("p", 12)}
	secondary := &fakeProvider{name: "s", items: scoredItems("s", 9)}
	r := NewRetriever(nil, Tier{Provider: primary, Ceiling: 2, Primary: true}, Tier{Provider: secondary, Ceiling: 3})

	done := make(chan RetrieveResult, 1)
	go func() {
		done <- r.Retrieve(context.Background(), petra, RetrieveOptions{
			Target:   3,
			Deadline: time.Now().Add(-time.Second),
			Delay:    time.Hour,
		})
	}()

	select {
	case res := <-done:
		assert.Empty(t, res.Candidates)
		assert.Empty(t, res.Queries)
	case <-time.After(2 * time.Second):
		t.Fatal("Retrieve blocked past its deadline")
	}
	assert.Zero(t, primary.calls())
	assert.Zero(t, secondary.calls())
}

func TestRetrieveFallsBackWhenPrimaryIsShort(t *testing.T) {
	primary := &fakeProvider{name: "p", items: scoredItems("p", 12, 3)}
	secondary := &fakeProvider{name: "s", items: scoredItems("s", 6, 7)}
	r := NewRetriever(nil, Tier{Provider: primary, Ceiling: 2, Primary: true}, Tier{Provider: secondary, Ceiling: 3})

	res := r.Retrieve(context.Background(), petra, RetrieveOptions{Target: 3, MaxPerQuery: 10})

	assert.Equal(t, 7, primary.calls())
	assert.Equal(t, 7, secondary.calls())
	require.Len(t, res.Candidates, 3)
	assert.Equal(t, "p-p1", res.Candidates[0].Identity)
	assert.Equal(t, "s-s2", res.Candidates[1].Identity)
	assert.Equal(t, "s-s1", res.Candidates[2].Identity)
	assert.Len(t, res.Queries, 7)
}

func TestRetrieveSkipsSecondaryWhenPrimaryIsEnough(t *testing.T) {
	primary := &fakeProvider{name: "p", items: scoredItems("p", 12, 11, 10)}
	secondary := &fakeProvider{name: "s", items: scoredItems("s", 9)}
	r := NewRetriever(nil, Tier{Provider: primary, Ceiling: 2, Primary: true}, Tier{Provider: secondary, Ceiling: 3})

	res := r.Retrieve(context.Background(), petra, RetrieveOptions{Target: 3})
	assert.Len(t, res.Candidates, 3)
	assert.Zero(t, secondary.calls())
}

func TestRetrieveStopsAtCeiling(t *testing.T) {
	primary := &fakeProvider{name: "p", items: scoredItems("p", 12, 11)}
	r := NewRetriever(nil, Tier{Provider: primary, Ceiling: 2, Primary: true})

	res := r.Retrieve(context.Background(), petra, RetrieveOptions{Target: 1})
	assert.Equal(t, 1, primary.calls())
	assert.Len(t, res.Candidates, 2)
	assert.Equal(t, []string{"Petra reconstruction"}, res.Queries)
}

func TestRetrieveSearchErrorsYieldNothing(t *testing.T) {
	primary := &fakeProvider{name: "p", err: errors.New("503")}
	secondary := &fakeProvider{name: "s", err: errors.New("blocked")}
	r := NewRetriever(nil, Tier{Provider: primary, Ceiling: 2, Primary: true}, Tier{Provider: secondary, Ceiling: 3})

	res := r.Retrieve(context.Background(), petra, RetrieveOptions{Target: 2})
	assert.Empty(t, res.Candidates)
	assert.Equal(t, 7, primary.calls())
	assert.Equal(t, 7, secondary.calls())
}

func TestRetrieveSkipPrimary(t *testing.T) {
	primary := &fakeProvider{name: "p", items: scoredItems("p", 12)}
	secondary := &fakeProvider{name: "s", items: scoredItems("s", 9)}
	r := NewRetriever(nil, Tier{Provider: primary, Ceiling: 2, Primary: true}, Tier{Provider: secondary, Ceiling: 3})

	res := r.Retrieve(context.Background(), petra, RetrieveOptions{Target: 2, SkipPrimary: true})
	assert.Zero(t, primary.calls())
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "s-s1", res.Candidates[0].Identity)
}
