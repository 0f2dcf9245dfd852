package tui

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-postformat/pkg/contenttype"
	"github.com/goliatone/go-postformat/pkg/session"
)

// RemoveMedia is the answer that detaches media from a field.
const RemoveMedia = "-"

// Action is a follow-up chosen from the editor menu.
type Action string

const (
	ActionPreview    Action = "preview"
	ActionCopy       Action = "copy"
	ActionEdit       Action = "edit"
	ActionChangeType Action = "change-type"
	ActionQuit       Action = "quit"
)

var menu = []struct {
	action Action
	label  string
}{
	{ActionPreview, "Preview"},
	{ActionCopy, "Copy Content"},
	{ActionEdit, "Edit fields"},
	{ActionChangeType, "Change content type"},
	{ActionQuit, "Quit"},
}

// Editor renders the form for the selected content type as a sequence of
// prompts, one per field descriptor, and writes answers into a session.State.
type Editor struct {
	driver   PromptDriver
	registry *contenttype.Registry
	open     FileOpener
	logger   *zap.Logger
	theme    Theme
}

// New constructs an Editor with defaults (survey driver, default registry).
func New(options ...Option) *Editor {
	e := &Editor{
		driver:   NewSurveyDriver(),
		registry: contenttype.Default(),
		open:     session.OpenFile,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Run selects a content type and prompts every field once.
func (e *Editor) Run(ctx context.Context, state *session.State) error {
	if err := e.SelectType(ctx, state); err != nil {
		return err
	}
	return e.EditFields(ctx, state)
}

// SelectType prompts the content type picker, preselecting the current type.
func (e *Editor) SelectType(ctx context.Context, state *session.State) error {
	defs := e.registry.List()
	if len(defs) == 0 {
		return ErrNoContentTypes
	}

	options := make([]string, len(defs))
	current := 0
	for i, def := range defs {
		options[i] = def.Title
		if def.ID == state.SelectedType() {
			current = i
		}
	}

	idx, err := e.driver.Select(ctx, SelectConfig{
		Message:      "Content Type",
		Options:      options,
		DefaultIndex: current,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(defs) {
		return fmt.Errorf("tui: invalid content type choice %d", idx)
	}

	chosen := defs[idx]
	if selected := state.SelectedType(); selected != "" && selected != chosen.ID && hasValues(state.Snapshot()) {
		proceed, err := e.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Switch to %s? Current field values will be cleared.", chosen.Title),
			Help:    "Text and attached media belong to the current content type.",
		})
		if err != nil {
			return err
		}
		if !proceed {
			e.logger.Debug("content type switch declined", zap.String("contentType", chosen.ID))
			return nil
		}
	}
	return state.SelectType(chosen.ID)
}

func hasValues(snap session.Snapshot) bool {
	if len(snap.Media) > 0 {
		return true
	}
	for _, value := range snap.Text {
		if value != "" {
			return true
		}
	}
	return false
}

// EditFields prompts each field of the selected type in declaration order.
func (e *Editor) EditFields(ctx context.Context, state *session.State) error {
	def, ok := state.Definition()
	if !ok {
		return ErrNoSelection
	}
	for _, field := range def.Fields {
		if err := e.promptField(ctx, field, state); err != nil {
			return err
		}
	}
	return nil
}

// Menu asks for the next action.
func (e *Editor) Menu(ctx context.Context, copyLabel string) (Action, error) {
	options := make([]string, len(menu))
	for i, item := range menu {
		options[i] = item.label
		if item.action == ActionCopy && copyLabel != "" {
			options[i] = copyLabel
		}
	}
	idx, err := e.driver.Select(ctx, SelectConfig{Message: "Next", Options: options})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(menu) {
		return ActionQuit, nil
	}
	return menu[idx].action, nil
}

// Info prints msg through the driver.
func (e *Editor) Info(ctx context.Context, msg string) error {
	return e.driver.Info(ctx, e.theme.InfoPrefix+msg)
}

func (e *Editor) promptField(ctx context.Context, field contenttype.FieldDescriptor, state *session.State) error {
	current, _ := state.Text(field.Name)

	switch field.Kind {
	case contenttype.FieldMedia:
		return e.promptMedia(ctx, field, state)
	case contenttype.FieldLongText:
		value, err := e.driver.TextArea(ctx, TextAreaConfig{
			Message: field.Label,
			Default: current,
			Help:    field.Placeholder,
		})
		if err != nil {
			return err
		}
		state.SetText(field.Name, value)
	default:
		value, err := e.driver.Input(ctx, InputConfig{
			Message: field.Label,
			Default: current,
			Help:    field.Placeholder,
		})
		if err != nil {
			return err
		}
		state.SetText(field.Name, value)
	}
	return nil
}

func (e *Editor) promptMedia(ctx context.Context, field contenttype.FieldDescriptor, state *session.State) error {
	help := "Path to a file; empty keeps the current file, " + RemoveMedia + " removes it"
	if field.Accept != "" {
		help += " (" + field.Accept + ")"
	}
	current := ""
	if file, ok := state.Media(field.Name); ok {
		current = file.Name
	}

	for {
		message := field.Label
		if current != "" {
			message += " [" + current + "]"
		}
		answer, err := e.driver.Input(ctx, InputConfig{
			Message: message,
			Help:    help,
			Suggest: SuggestFiles,
		})
		if err != nil {
			return err
		}

		answer = strings.TrimSpace(answer)
		switch answer {
		case "":
			return nil
		case RemoveMedia:
			state.SetMedia(ctx, field.Name, nil)
			return nil
		}

		file, err := e.open(answer)
		if err != nil {
			e.logger.Debug("media open failed", zap.String("field", field.Name), zap.Error(err))
			if infoErr := e.driver.Info(ctx, e.theme.ErrorPrefix+describeOpenErr(answer, err)); infoErr != nil {
				return infoErr
			}
			continue
		}
		state.SetMedia(ctx, field.Name, file)
		return nil
	}
}

func describeOpenErr(path string, err error) string {
	return fmt.Sprintf("Could not read %s: %v", path, err)
}
