package lobby

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

var headsUp = game.Config{Seats: 2, SmallBlind: 5, BigBlind: 10}

func newLobbyWithTable(t *testing.T) *Lobby {
	t.Helper()
	l := New(quietLogger())
	require.NoError(t, l.Create("main", headsUp, game.WithRNG(randutil.New(1))))
	require.NoError(t, l.Sit("main", 0, game.Player{ID: "a", Name: "alice"}, 1000))
	require.NoError(t, l.Sit("main", 1, game.Player{ID: "b", Name: "bob"}, 1000))
	return l
}

func TestCreate(t *testing.T) {
	l := New(nil)
	require.NoError(t, l.Create("b", headsUp))
	require.NoError(t, l.Create("a", headsUp))

	assert.ErrorIs(t, l.Create("a", headsUp), ErrTableExists)
	assert.Error(t, l.Create("bad", game.Config{Seats: 1, SmallBlind: 1, BigBlind: 2}))
	assert.Equal(t, []string{"a", "b"}, l.Names())

	require.NoError(t, l.Remove("a"))
	assert.ErrorIs(t, l.Remove("a"), ErrUnknownTable)
	assert.Equal(t, []string{"b"}, l.Names())
}

func TestUnknownTable(t *testing.T) {
	l := New(quietLogger())
	assert.ErrorIs(t, l.Sit("nope", 0, game.Player{ID: "a"}, 100), ErrUnknownTable)
	_, err := l.StartHand("nope")
	assert.ErrorIs(t, err, ErrUnknownTable)
	_, err = l.Snapshot("nope")
	assert.ErrorIs(t, err, ErrUnknownTable)
	assert.ErrorIs(t, l.Act("nope", 0, game.Action{Type: game.Fold}), ErrUnknownTable)
}

func TestHandThroughLobby(t *testing.T) {
	l := newLobbyWithTable(t)

	assert.ErrorIs(t, l.Act("main", 0, game.Action{Type: game.Fold}), ErrNoHand)
	_, err := l.View("main", 0)
	assert.ErrorIs(t, err, ErrNoHand)

	id, err := l.StartHand("main")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	snap, err := l.Snapshot("main")
	require.NoError(t, err)
	assert.Equal(t, game.InProgress, snap.Status)
	assert.Equal(t, id, snap.HandID)
	assert.Equal(t, 15, snap.Pot)
	assert.Equal(t, snap.Dealer, snap.ToAct, "heads-up button acts first preflop")

	_, err = l.StartHand("main")
	assert.ErrorIs(t, err, game.ErrHandInProgress)
	assert.ErrorIs(t, l.Remove("main"), game.ErrHandInProgress)
	_, err = l.Stand("main", 0)
	assert.ErrorIs(t, err, game.ErrHandInProgress)

	other := 1 - snap.ToAct
	legal, err := l.LegalActions("main", other)
	require.NoError(t, err)
	assert.Empty(t, legal)
	assert.ErrorIs(t, l.Act("main", other, game.Action{Type: game.Check}), game.ErrIllegalAction)

	v, err := l.View("main", snap.ToAct)
	require.NoError(t, err)
	assert.Len(t, v.Hole, 2)

	require.NoError(t, l.Act("main", snap.ToAct, game.Action{Type: game.Fold}))
	res, err := l.Result("main")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, map[int]int{other: 15}, res.Payouts)

	snap, err = l.Snapshot("main")
	require.NoError(t, err)
	assert.Equal(t, game.HandComplete, snap.Status)
	assert.Equal(t, -1, snap.ToAct)
	assert.Equal(t, 1, snap.HandsPlayed)

	stack, err := l.Stand("main", 0)
	require.NoError(t, err)
	assert.Positive(t, stack)
}

func TestForceFold(t *testing.T) {
	l := newLobbyWithTable(t)
	assert.ErrorIs(t, l.ForceFold("main", 0), ErrNoHand)

	_, err := l.StartHand("main")
	require.NoError(t, err)
	snap, err := l.Snapshot("main")
	require.NoError(t, err)

	waiting := 1 - snap.ToAct
	require.NoError(t, l.ForceFold("main", waiting))
	snap, err = l.Snapshot("main")
	require.NoError(t, err)
	assert.Equal(t, game.HandComplete, snap.Status)
}

// passive checks when it can, calls small bets and folds otherwise.
func passive(legal []game.LegalAction) game.Action {
	for _, la := range legal {
		if la.Type == game.Check {
			return game.Action{Type: game.Check}
		}
	}
	for _, la := range legal {
		if la.Type == game.Call && la.Max <= 50 {
			return game.Action{Type: game.Call}
		}
	}
	return game.Action{Type: game.Fold}
}

func TestConcurrentTables(t *testing.T) {
	const tables, hands, seats, stack = 8, 25, 4, 500
	l := New(quietLogger())

	for i := range tables {
		name := fmt.Sprintf("t%d", i)
		require.NoError(t, l.Create(name, game.Config{Seats: seats, SmallBlind: 5, BigBlind: 10}, game.WithRNG(randutil.Stream(1, i))))
		for s := range seats {
			require.NoError(t, l.Sit(name, s, game.Player{ID: fmt.Sprintf("%s-%d", name, s)}, stack))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g errgroup.Group
	for _, name := range l.Names() {
		g.Go(func() error {
			for range hands {
				if _, err := l.StartHand(name); err != nil {
					if errors.Is(err, game.ErrInsufficientPlayers) {
						return nil
					}
					return err
				}
				for {
					snap, err := l.Snapshot(name)
					if err != nil {
						return err
					}
					if snap.Status != game.InProgress {
						break
					}
					legal, err := l.LegalActions(name, snap.ToAct)
					if err != nil {
						return err
					}
					if err := l.Act(name, snap.ToAct, passive(legal)); err != nil {
						return fmt.Errorf("%s seat %d: %w", name, snap.ToAct, err)
					}
				}
			}
			return nil
		})
	}

	// readers race the writers on purpose
	var readers errgroup.Group
	readers.Go(func() error {
		for ctx.Err() == nil {
			for _, name := range l.Names() {
				if _, err := l.Snapshot(name); err != nil {
					return err
				}
			}
		}
		return nil
	})

	require.NoError(t, g.Wait())
	cancel()
	require.NoError(t, readers.Wait())

	for _, name := range l.Names() {
		snap, err := l.Snapshot(name)
		require.NoError(t, err)
		total := 0
		for _, s := range snap.Seats {
			total += s.Stack
		}
		assert.Equal(t, seats*stack, total, name)
		assert.Positive(t, snap.HandsPlayed, name)
	}
}
