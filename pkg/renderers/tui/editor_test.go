package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-postformat/pkg/contenttype"
	"github.com/goliatone/go-postformat/pkg/session"
	"github.com/goliatone/go-postformat/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	textAreas    []string
	confirms     []bool
	infoMessages []string
	confirmCfgs  []ConfirmConfig
	inputCfgs    []InputConfig
	selectCfgs   []SelectConfig
	inputPos     int
	selectPos    int
	textPos      int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputCfgs = append(s.inputCfgs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.confirmCfgs = append(s.confirmCfgs, cfg)
	if s.confirmPos >= len(s.confirms) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirms[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectCfgs = append(s.selectCfgs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func settle(t *testing.T, state *session.State) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := state.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
}

func TestEditor_RunNewsFlow(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{0},
		// headline, source, question, newsImage
		inputs:    []string{"X", "Y", "Q?", "shot.png"},
		textAreas: []string{"Z", "Thoughts"},
	}
	opener := func(path string) (*session.File, error) {
		return &session.File{Name: path, Data: testsupport.PNGBytes()}, nil
	}
	editor := New(WithPromptDriver(driver), WithFileOpener(opener))
	state := session.New()

	if err := editor.Run(context.Background(), state); err != nil {
		t.Fatalf("run: %v", err)
	}
	settle(t, state)

	snap := state.Snapshot()
	if snap.ContentType != contenttype.News {
		t.Fatalf("unexpected type %q", snap.ContentType)
	}
	wantText := map[string]string{
		"headline":   "X",
		"source":     "Y",
		"summary":    "Z",
		"commentary": "Thoughts",
		"question":   "Q?",
	}
	if diff := cmp.Diff(wantText, snap.Text); diff != "" {
		t.Fatalf("text mismatch (-want +got):\n%s", diff)
	}
	if _, ok := snap.Previews["newsImage"]; !ok {
		t.Fatalf("expected media preview for newsImage")
	}

	if got := driver.inputCfgs[0]; got.Message != "Headline" || got.Help != "Breaking: AI Revolutionizes Content Creation!" {
		t.Fatalf("unexpected headline prompt %+v", got)
	}
	if driver.inputCfgs[3].Suggest == nil {
		t.Fatalf("expected file completion on media prompt")
	}
}

func TestEditor_SelectTypeOffersRegisteredTitles(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{2}}
	editor := New(WithPromptDriver(driver))
	state := session.New()

	if err := editor.SelectType(context.Background(), state); err != nil {
		t.Fatalf("select: %v", err)
	}
	defs := contenttype.Default().List()
	if state.SelectedType() != defs[2].ID {
		t.Fatalf("expected %q selected, got %q", defs[2].ID, state.SelectedType())
	}
	if len(driver.selectCfgs[0].Options) != len(defs) {
		t.Fatalf("expected %d options, got %v", len(defs), driver.selectCfgs[0].Options)
	}
}

func TestEditor_SelectTypeConfirmsBeforeClearing(t *testing.T) {
	defs := contenttype.Default().List()
	videoIdx := -1
	for i, def := range defs {
		if def.ID == contenttype.Video {
			videoIdx = i
		}
	}

	driver := &stubDriver{selectIdx: []int{videoIdx, videoIdx}, confirms: []bool{false, true}}
	editor := New(WithPromptDriver(driver))
	state := session.New()
	_ = state.SelectType(contenttype.News)
	state.SetText("headline", "X")

	if err := editor.SelectType(context.Background(), state); err != nil {
		t.Fatalf("declined select: %v", err)
	}
	if state.SelectedType() != contenttype.News {
		t.Fatalf("declined switch must keep news, got %q", state.SelectedType())
	}
	if value, _ := state.Text("headline"); value != "X" {
		t.Fatalf("declined switch must keep values, got %q", value)
	}

	if err := editor.SelectType(context.Background(), state); err != nil {
		t.Fatalf("confirmed select: %v", err)
	}
	if state.SelectedType() != contenttype.Video {
		t.Fatalf("expected video selected, got %q", state.SelectedType())
	}
	if len(driver.confirmCfgs) != 2 || driver.confirmCfgs[0].Message != "Switch to Screenshot + Video Commentary? Current field values will be cleared." {
		t.Fatalf("unexpected confirm prompts %+v", driver.confirmCfgs)
	}
}

func TestEditor_SelectTypeSkipsConfirmWithoutValues(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{1}}
	editor := New(WithPromptDriver(driver))
	state := session.New()
	_ = state.SelectType(contenttype.Default().List()[0].ID)
	state.SetText("headline", "")

	if err := editor.SelectType(context.Background(), state); err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(driver.confirmCfgs) != 0 {
		t.Fatalf("no confirmation expected for an empty form, got %+v", driver.confirmCfgs)
	}
	if state.SelectedType() != contenttype.Default().List()[1].ID {
		t.Fatalf("unexpected selection %q", state.SelectedType())
	}
}

func TestEditor_MediaOpenFailureReprompts(t *testing.T) {
	driver := &stubDriver{
		// title, toolScreenshots (bad then good)... tools is long text
		inputs:    []string{"Top", "Share", "missing.png", "ok.png"},
		textAreas: []string{"1. A\n2. B"},
	}
	opener := func(path string) (*session.File, error) {
		if path == "missing.png" {
			return nil, errors.New("no such file")
		}
		return &session.File{Name: path, Data: testsupport.PNGBytes()}, nil
	}
	editor := New(WithPromptDriver(driver), WithFileOpener(opener), WithTheme(Theme{ErrorPrefix: "! "}))
	state := session.New()
	_ = state.SelectType(contenttype.Tools)

	if err := editor.EditFields(context.Background(), state); err != nil {
		t.Fatalf("edit: %v", err)
	}
	settle(t, state)

	if len(driver.infoMessages) != 1 || driver.infoMessages[0] != "! Could not read missing.png: no such file" {
		t.Fatalf("unexpected info messages %v", driver.infoMessages)
	}
	if file, ok := state.Media("toolScreenshots"); !ok || file.Name != "ok.png" {
		t.Fatalf("expected ok.png attached, got %+v", file)
	}
}

func TestEditor_MediaKeepAndRemove(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", "-"}}
	editor := New(WithPromptDriver(driver))
	state := session.New()
	_ = state.SelectType(contenttype.Industry)
	state.SetMedia(context.Background(), "dataVisual", &session.File{Name: "chart.png", Data: testsupport.PNGBytes()})
	settle(t, state)

	field, _ := mustDefinition(t, state).Field("dataVisual")
	if err := editor.promptMedia(context.Background(), field, state); err != nil {
		t.Fatalf("keep: %v", err)
	}
	if _, ok := state.Media("dataVisual"); !ok {
		t.Fatalf("empty answer should keep media")
	}
	if driver.inputCfgs[0].Message != "Graph or Infographic [chart.png]" {
		t.Fatalf("unexpected message %q", driver.inputCfgs[0].Message)
	}

	if err := editor.promptMedia(context.Background(), field, state); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := state.Media("dataVisual"); ok {
		t.Fatalf("dash should remove media")
	}
}

func TestEditor_EditFieldsRequiresSelection(t *testing.T) {
	editor := New(WithPromptDriver(&stubDriver{}))
	if err := editor.EditFields(context.Background(), session.New()); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestEditor_Menu(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{1, 4}}
	editor := New(WithPromptDriver(driver))

	action, err := editor.Menu(context.Background(), "Copied!")
	if err != nil || action != ActionCopy {
		t.Fatalf("expected copy action, got %q (%v)", action, err)
	}
	if driver.selectCfgs[0].Options[1] != "Copied!" {
		t.Fatalf("expected copy label override, got %v", driver.selectCfgs[0].Options)
	}
	action, _ = editor.Menu(context.Background(), "")
	if action != ActionQuit {
		t.Fatalf("expected quit, got %q", action)
	}
}

func mustDefinition(t *testing.T, state *session.State) contenttype.Definition {
	t.Helper()
	def, ok := state.Definition()
	if !ok {
		t.Fatalf("no definition selected")
	}
	return def
}
