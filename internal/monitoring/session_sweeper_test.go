package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePruner struct {
	cutoffs []time.Time
	deleted int64
}

func (f *fakePruner) DeleteSessionsBefore(cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.deleted, nil
}

func TestNewSessionSweeperRejectsBadCron(t *testing.T) {
	_, err := NewSessionSweeper(&fakePruner{}, time.Hour, "not a cron expression")
	assert.Error(t, err)
}

func TestSweepUsesTTLCutoff(t *testing.T) {
	pruner := &fakePruner{deleted: 3}
	sweeper, err := NewSessionSweeper(pruner, 24*time.Hour, "0 * * * *")
	require.NoError(t, err)

	now := time.Now()
	sweeper.sweep(now)

	require.Len(t, pruner.cutoffs, 1)
	assert.True(t, pruner.cutoffs[0].Equal(now.Add(-24*time.Hour)))
}
