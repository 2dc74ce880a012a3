package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/zhuifan/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgRefreshed MsgKind = iota
	MsgCreated
	MsgUpdated
	MsgDeleted
	MsgLinkOpened
)

// outcome is the payload of every store command message. id is set for updates only.
type outcome struct {
	id       int64
	snapshot *tasks.Snapshot
	err      error
}

// refreshedMsg is the constructor for [MsgRefreshed]
func refreshedMsg(snap *tasks.Snapshot, err error) Msg {
	return Msg{kind: MsgRefreshed, data: outcome{snapshot: snap, err: err}}
}

// createdMsg is the constructor for [MsgCreated]
func createdMsg(snap *tasks.Snapshot, err error) Msg {
	return Msg{kind: MsgCreated, data: outcome{snapshot: snap, err: err}}
}

// updatedMsg is the constructor for [MsgUpdated]
func updatedMsg(id int64, snap *tasks.Snapshot, err error) Msg {
	return Msg{kind: MsgUpdated, data: outcome{id: id, snapshot: snap, err: err}}
}

// deletedMsg is the constructor for [MsgDeleted]
func deletedMsg(snap *tasks.Snapshot, err error) Msg {
	return Msg{kind: MsgDeleted, data: outcome{snapshot: snap, err: err}}
}

// linkOpenedMsg is the constructor for [MsgLinkOpened]
func linkOpenedMsg(url string, err error) Msg {
	return Msg{
		kind: MsgLinkOpened,
		data: struct {
			url string
			err error
		}{url, err},
	}
}
