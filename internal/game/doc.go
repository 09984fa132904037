// Package game implements a no-limit Texas Hold'em betting engine.
//
// A Table owns the seats, stacks and dealer button and persists between
// hands. Each call to StartHand produces a Hand which runs one deal from
// blinds to settlement:
//
//	t, _ := game.NewTable(game.Config{Seats: 6, SmallBlind: 5, BigBlind: 10})
//	t.Sit(0, game.Player{ID: "a", Name: "Alice"}, 1000)
//	t.Sit(3, game.Player{ID: "b", Name: "Bob"}, 1000)
//	h, err := t.StartHand(game.WithRNG(rng))
//	for h.Status() == game.InProgress {
//	    seat := h.ToAct()
//	    err = h.Act(seat, game.Action{Type: game.Call})
//	}
//	res := h.Result()
//
// # Architecture
//
//   - Betting: legal action computation, action application and the
//     street closure test.
//   - Hand: street progression, dealing, run-outs and settlement.
//   - BuildPots / Settle: layered side pots and payouts.
//   - AssignPositions: dealer rotation and position labels.
//   - Engine: drives a Hand with Agents and checks chip conservation.
//
// A Table and its Hand are not safe for concurrent use. Callers running
// several tables give each table its own goroutine or mutex.
package game
