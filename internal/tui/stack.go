package tui

import tea "github.com/charmbracelet/bubbletea"

type frame struct {
	id     ScreenID
	screen Screen
}

// navStack is the navigation stack; the last frame is visible.
type navStack struct {
	frames []frame
}

func (s *navStack) push(id ScreenID, screen Screen) {
	s.frames = append(s.frames, frame{id: id, screen: screen})
}

// replace swaps the top frame. On an empty stack it pushes.
func (s *navStack) replace(id ScreenID, screen Screen) {
	if len(s.frames) == 0 {
		s.push(id, screen)
		return
	}
	s.frames[len(s.frames)-1] = frame{id: id, screen: screen}
}

// pop removes the top frame unless it is the last one, reporting whether
// it did.
func (s *navStack) pop() bool {
	if len(s.frames) <= 1 {
		return false
	}
	s.frames[len(s.frames)-1] = frame{}
	s.frames = s.frames[:len(s.frames)-1]
	return true
}

func (s *navStack) top() (frame, bool) {
	if len(s.frames) == 0 {
		return frame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

func (s *navStack) setTop(screen Screen) {
	if len(s.frames) > 0 {
		s.frames[len(s.frames)-1].screen = screen
	}
}

func (s *navStack) depth() int {
	return len(s.frames)
}

func (s *navStack) ids() []ScreenID {
	ids := make([]ScreenID, len(s.frames))
	for i, f := range s.frames {
		ids[i] = f.id
	}
	return ids
}

// registry builds screens on demand. Every screen is built once and reused
// on later visits, except the logging screen, which is rebuilt on every
// request so it reflects the current LoggingState.
type registry struct {
	build map[ScreenID]func() Screen
	fresh map[ScreenID]bool
	cache map[ScreenID]Screen
}

func newRegistry(sess *Session, svc *Services) *registry {
	return &registry{
		build: map[ScreenID]func() Screen{
			ScreenWelcome:            func() Screen { return NewWelcomeScreen(sess) },
			ScreenChooseType:         func() Screen { return NewChooseTypeScreen(sess) },
			ScreenBasicDetails:       func() Screen { return NewBasicDetailsScreen(sess) },
			ScreenTemplatePipeline:   func() Screen { return NewFeaturesScreen(sess, svc, ScreenTemplatePipeline) },
			ScreenCustomPipeline:     func() Screen { return NewFeaturesScreen(sess, svc, ScreenCustomPipeline) },
			ScreenFinalDetails:       func() Screen { return NewFinalDetailsScreen(sess, svc) },
			ScreenGithubRepoQuestion: func() Screen { return NewGithubQuestionScreen(sess) },
			ScreenGithubRepo:         func() Screen { return NewGithubRepoScreen(sess, svc) },
			ScreenGithubExit:         func() Screen { return NewGithubExitScreen(sess) },
			ScreenError:              func() Screen { return NewErrorScreen(sess) },
			ScreenLogging:            func() Screen { return NewLoggingScreen(sess) },
		},
		fresh: map[ScreenID]bool{ScreenLogging: true},
		cache: make(map[ScreenID]Screen),
	}
}

func (r *registry) get(id ScreenID) Screen {
	if !r.fresh[id] {
		if s, ok := r.cache[id]; ok {
			return s
		}
	}

	s := r.build[id]()
	if !r.fresh[id] {
		r.cache[id] = s
	}
	return s
}

// store keeps the latest value returned by a cached screen's Update.
func (r *registry) store(id ScreenID, s Screen) {
	if !r.fresh[id] {
		r.cache[id] = s
	}
}

func initScreen(s Screen) tea.Cmd {
	if s == nil {
		return nil
	}
	return s.Init()
}
