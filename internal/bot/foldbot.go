package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/game"
)

// FoldBot checks when it can and folds to any bet.
type FoldBot struct {
	logger *log.Logger
}

func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger}
}

func (f *FoldBot) Decide(v game.View) game.Action {
	a := game.CheckOrFold(v.Legal)
	f.logger.Debug("fold-bot", "seat", v.Seat, "action", a)
	return a
}
