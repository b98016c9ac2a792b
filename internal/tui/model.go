// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/blindtype/internal/engine"
	"github.com/verte-zerg/blindtype/internal/log"
	"github.com/verte-zerg/blindtype/internal/model"
	"github.com/verte-zerg/blindtype/internal/results"
	statsPkg "github.com/verte-zerg/blindtype/internal/stats"
	"github.com/verte-zerg/blindtype/internal/store"
	"github.com/verte-zerg/blindtype/internal/texts"
)

// Options wires the model to its collaborators. History and Fetcher may be
// nil.
type Options struct {
	Config    model.Config
	Engine    *engine.Engine
	Results   *results.Store
	History   *store.Store
	Fetcher   *texts.Fetcher
	Picker    *texts.Picker
	Sentences []string
	TextsPath string
	WeakSet   map[rune]struct{}
	Clock     engine.Clock
}

type fetchDoneMsg struct {
	sentences []string
	err       error
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	config    model.Config
	engine    *engine.Engine
	results   *results.Store
	history   *store.Store
	fetcher   *texts.Fetcher
	picker    *texts.Picker
	sentences []string
	textsPath string
	weakSet   map[rune]struct{}

	nav     *Navigator
	help    help.Model
	spinner spinner.Model

	width  int
	height int

	pressed   rune
	fetching  bool
	status    string
	alert     string
	session   model.Result
	display   results.Display
	letter    results.LetterDisplay
	letterKey rune
	letterErr error
}

// NewModel constructs a typing TUI model.
func NewModel(opts Options) *Model {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	eng := opts.Engine
	if eng == nil {
		eng = engine.New(clock)
	}
	picker := opts.Picker
	if picker == nil {
		picker = texts.NewPicker()
	}
	weakSet := opts.WeakSet
	if weakSet == nil {
		weakSet = map[rune]struct{}{}
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle
	return &Model{
		config:    opts.Config,
		engine:    eng,
		results:   opts.Results,
		history:   opts.History,
		fetcher:   opts.Fetcher,
		picker:    picker,
		sentences: opts.Sentences,
		textsPath: opts.TextsPath,
		weakSet:   weakSet,
		nav:       NewNavigator(),
		help:      help.New(),
		spinner:   sp,
	}
}

// Screen returns the active screen.
func (m *Model) Screen() Screen {
	return m.nav.Current()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case fetchDoneMsg:
		m.handleFetchDone(msg)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.nav.Current() {
	case ScreenMain:
		return m.handleMainKey(msg)
	case ScreenTyping:
		m.handleTypingKey(msg)
	case ScreenTypingResult:
		switch {
		case key.Matches(msg, keys.Next):
			m.startSession(EventContinue)
		case key.Matches(msg, keys.Retry):
			m.engine.Reset()
			m.pressed = 0
			m.nav.Apply(EventRetry)
		case key.Matches(msg, keys.Quit), key.Matches(msg, keys.Back):
			m.nav.Apply(EventQuit)
		}
	case ScreenGlobalResult, ScreenLetterResult:
		if key.Matches(msg, keys.Back) {
			m.nav.Apply(EventBack)
			return m, nil
		}
		if r, ok := keyRune(msg); ok {
			m.showLetter(r)
		}
	case ScreenExiting:
		switch {
		case key.Matches(msg, keys.Yes):
			m.nav.Apply(EventConfirm)
			return m, tea.Quit
		case key.Matches(msg, keys.No), key.Matches(msg, keys.Back):
			m.nav.Apply(EventCancel)
		}
	case ScreenAlert:
		m.alert = ""
		m.nav.Apply(EventDismiss)
	}
	return m, nil
}

func (m *Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Start):
		m.startSession(EventStart)
	case key.Matches(msg, keys.Results):
		m.display = m.results.LoadForDisplay()
		m.nav.Apply(EventShowResults)
	case key.Matches(msg, keys.Fetch):
		return m, m.startFetch()
	case key.Matches(msg, keys.Delete):
		if err := m.results.Reset(); err != nil {
			m.showAlert(fmt.Sprintf("Failed to delete results: %v", err))
			return m, nil
		}
		log.Info("results deleted", "path", m.results.Path())
		m.showAlert("Results have been deleted.")
	case key.Matches(msg, keys.Quit):
		m.nav.Apply(EventQuit)
	}
	return m, nil
}

func (m *Model) handleTypingKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Back):
		m.nav.Apply(EventBack)
		return
	case key.Matches(msg, keys.Reload):
		m.engine.Reset()
		m.pressed = 0
		return
	}
	var runes []rune
	switch msg.Type {
	case tea.KeySpace:
		runes = []rune{' '}
	case tea.KeyRunes:
		runes = msg.Runes
	default:
		return
	}
	for _, r := range runes {
		m.pressed = r
		outcome, err := m.engine.Guess(r)
		if err != nil {
			log.Warn("keystroke ignored", "err", err)
			return
		}
		if outcome == engine.OutcomeFinished {
			m.finishSession()
			return
		}
	}
}

// startSession loads a fresh sample and moves to the typing screen via ev.
func (m *Model) startSession(ev Event) {
	if len(m.sentences) == 0 {
		m.showAlert(texts.ErrNoSentences.Error())
		return
	}
	var sample string
	if m.config.FocusWeak && len(m.weakSet) > 0 {
		sample = m.picker.PickWeighted(m.sentences, m.weakSet, m.config.WeakFactor)
	} else {
		sample = m.picker.Pick(m.sentences)
	}
	m.engine.Init(sample)
	m.pressed = 0
	m.status = ""
	m.nav.Apply(ev)
}

func (m *Model) finishSession() {
	res, ok := m.engine.Result()
	if !ok {
		return
	}
	m.session = res
	m.nav.Apply(EventFinished)

	if _, err := m.results.MergeAndPersist(res); err != nil {
		log.Error("failed to save results", "err", err)
		m.showAlert(fmt.Sprintf("Failed to save results: %v", err))
	}
	if m.history == nil {
		return
	}

	stats := m.engine.Stats()
	rec := model.SessionRecord{
		StartedAt:  stats.StartedAt(),
		EndedAt:    stats.EndedAt(),
		Sample:     m.engine.Sample(),
		WPM:        res.WPM,
		Accuracy:   res.TotalAccuracy,
		Keystrokes: stats.Keystrokes(),
		DurationMs: stats.ElapsedMs(),
	}
	ctx := context.Background()
	if _, err := m.history.InsertSession(ctx, rec, res.Letters); err != nil {
		log.Warn("failed to save session history", "err", err)
		return
	}
	if m.config.FocusWeak {
		m.refreshWeakSet(ctx)
	}
}

func (m *Model) refreshWeakSet(ctx context.Context) {
	aggs, err := m.history.GetWeakLetters(ctx, m.config.WeakWindow)
	if err != nil {
		log.Warn("failed to load weak letters", "err", err)
		return
	}
	m.weakSet = statsPkg.SelectWeakLetters(aggs, m.config.WeakTop)
	log.Debug("weak letters refreshed", "count", len(m.weakSet))
}

func (m *Model) showLetter(r rune) {
	m.letterKey = r
	m.letter, m.letterErr = m.results.LoadLetter(r)
	if m.letterErr != nil && !errors.Is(m.letterErr, results.ErrLetterNotFound) {
		log.Warn("failed to load letter", "letter", string(r), "err", m.letterErr)
	}
	m.nav.Apply(EventLetter)
}

func (m *Model) showAlert(text string) {
	m.alert = text
	m.nav.Apply(EventAlert)
}

func (m *Model) startFetch() tea.Cmd {
	if m.fetching {
		return nil
	}
	if m.fetcher == nil {
		m.showAlert(texts.ErrNoAPIKey.Error())
		return nil
	}
	m.fetching = true
	m.status = "Fetching new sentences"
	fetcher := m.fetcher
	path := m.textsPath
	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		sentences, err := fetcher.FetchTo(ctx, path)
		return fetchDoneMsg{sentences: sentences, err: err}
	}
	return tea.Batch(m.spinner.Tick, fetch)
}

func (m *Model) handleFetchDone(msg fetchDoneMsg) {
	m.fetching = false
	m.status = ""
	if msg.err != nil {
		log.Error("failed to fetch sentences", "err", msg.err)
		m.showAlert(fmt.Sprintf("Failed to fetch sentences: %v", msg.err))
		return
	}
	m.sentences = msg.sentences
	m.status = fmt.Sprintf("Loaded %d new sentences", len(msg.sentences))
	log.Info("sentences fetched", "count", len(msg.sentences), "path", m.textsPath)
}

func keyRune(msg tea.KeyMsg) (rune, bool) {
	switch msg.Type {
	case tea.KeySpace:
		return ' ', true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && unicode.IsPrint(msg.Runes[0]) {
			return msg.Runes[0], true
		}
	}
	return 0, false
}
