package tui

import (
	"github.com/zkhourdaji/hackernews/internal/hn"
	"github.com/zkhourdaji/hackernews/internal/history"
	"github.com/zkhourdaji/hackernews/internal/state"
)

type fetchDoneMsg struct {
	effect state.Effect
	result hn.Result
}

type fetchFailedMsg struct {
	effect state.Effect
	err    error
}

type historyLoadedMsg struct {
	entries []history.Entry
}

type errMsg struct {
	err error
}
