package catalog

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/aishield/shield-backend/internal/clock"
	"github.com/aishield/shield-backend/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefault_LoadsEveryTable(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Incidents, 5)
	assert.Len(t, c.DefenseLog, 6)
	assert.Len(t, c.TrafficActors, 3)
	assert.Len(t, c.BudgetMatrix, 8)
	assert.Len(t, c.SentimentFeed, 4)
	assert.Len(t, c.SuccessStories, 4)
	assert.Len(t, c.Platforms, 4)
	assert.Len(t, c.WorldRegions, 7)

	assert.Equal(t, "14:30", c.DefenseLog[0].StartTime)
	assert.Equal(t, 4.5, c.BudgetMatrix[0].CPC)
	assert.Equal(t, "@crypto_king_99", c.SentimentFeed[0].User)
	assert.Empty(t, c.SentimentFeed[2].AIFlag)

	table, ok := c.Table("traffic-actors")
	require.True(t, ok)
	assert.Len(t, table, 3)
	_, ok = c.Table("nope")
	assert.False(t, ok)

	assert.Contains(t, c.TrustSummary(), "Arçelik (%30 Verimlilik Artışı)")
}

func TestParse_RejectsBadCatalogs(t *testing.T) {
	_, err := Parse([]byte("incidents: []"))
	assert.Error(t, err)

	_, err = Parse([]byte(`incidents:
  - {id: "1", message: a}
  - {id: "1", message: b}
`))
	assert.ErrorContains(t, err, "duplicate incident id")

	_, err = Parse([]byte(`incidents:
  - {id: "1"}
defense_log:
  - {id: d, threat_score: 140}
`))
	assert.ErrorContains(t, err, "outside [0,100]")

	for name, doc := range map[string]string{
		"duplicate traffic actor id": `incidents: [{id: "1"}]
traffic_actors: [{id: a1}, {id: a1}]`,
		"duplicate success story id": `incidents: [{id: "1"}]
success_stories: [{id: s}, {id: s}]`,
		"duplicate platform id": `incidents: [{id: "1"}]
platforms: [{name: Meta}, {name: Meta}]`,
		"sentiment item without id": `incidents: [{id: "1"}]
sentiment_feed: [{text: x}]`,
	} {
		_, err := Parse([]byte(doc))
		assert.ErrorContains(t, err, name)
	}

	_, err = Parse([]byte("incidents: [:"))
	assert.Error(t, err)
}

func ids(rows []model.Incident) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestFeed_RotationPreservesLengthAndMembership(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	feed := NewFeed(c.Incidents)

	before := ids(feed.Snapshot())
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	for n := 1; n <= 23; n++ {
		feed.Rotate(start.Add(time.Duration(n) * 3 * time.Second))

		after := feed.Snapshot()
		require.Len(t, after, len(before))

		// rotation by n positions
		for i := range after {
			assert.Equal(t, before[(i+n)%len(before)], after[i].ID)
		}

		sortedBefore := append([]string(nil), before...)
		sortedAfter := ids(after)
		sort.Strings(sortedBefore)
		sort.Strings(sortedAfter)
		assert.Equal(t, sortedBefore, sortedAfter)
	}

	last := feed.Snapshot()[len(before)-1]
	assert.Equal(t, "09:01:09", last.Timestamp)
	assert.Equal(t, uint64(23), feed.Rotations())
	assert.Equal(t, "10:42:05", c.Incidents[0].Timestamp, "catalog rows are never mutated")
}

func TestFeed_RunRotatesOnClockAndStopsOnCancel(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	feed := NewFeed([]model.Incident{{ID: "a"}, {ID: "b"}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		feed.Run(ctx, clk, 3*time.Second, zap.NewNop())
		close(done)
	}()
	require.Eventually(t, func() bool { return clk.Pending() == 1 }, 2*time.Second, time.Millisecond)

	clk.Advance(9 * time.Second)
	assert.Equal(t, uint64(3), feed.Rotations())
	assert.Equal(t, "12:00:09", feed.Snapshot()[1].Timestamp)
	assert.Equal(t, 1, clk.Pending(), "next rotation armed")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("feed did not stop")
	}
	assert.Zero(t, clk.Pending())
	clk.Advance(time.Minute)
	assert.Equal(t, uint64(3), feed.Rotations())
	assert.Len(t, feed.Snapshot(), 2)
}

func TestFeed_EmptyRotateIsNoop(t *testing.T) {
	feed := NewFeed(nil)
	feed.Rotate(time.Now())
	assert.Empty(t, feed.Snapshot())
	assert.Zero(t, feed.Rotations())
}
