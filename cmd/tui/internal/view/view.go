package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is the interface that all wizard screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct{}

// BackMsg returns control to the session picker.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// NextStageMsg asks the root model to advance the wizard one stage.
type NextStageMsg struct{}

func NextStage() tea.Msg {
	return NextStageMsg{}
}

// PrevStageMsg asks the root model to step the wizard back one stage.
type PrevStageMsg struct{}

func PrevStage() tea.Msg {
	return PrevStageMsg{}
}
