package engine

import (
	"fmt"

	"github.com/enetx/fsm"

	"github.com/nathoo/lumina/types"
)

// FinalChapter is the last numbered chapter. The cursor moves past it once
// the session reaches a terminal state.
const FinalChapter = 4

const (
	StateChapter1 fsm.State = "chapter_1"
	StateChapter2 fsm.State = "chapter_2"
	StateChapter3 fsm.State = "chapter_3"
	StateChapter4 fsm.State = "chapter_4"
	StateEpilogue fsm.State = "epilogue" // final boss defeated
	StateFallen   fsm.State = "fallen"   // died, or ran from the final boss
)

const (
	EventAdvance fsm.Event = "advance"
	EventTriumph fsm.Event = "triumph"
	EventFall    fsm.Event = "fall"
)

var chapterStates = []fsm.State{StateChapter1, StateChapter2, StateChapter3, StateChapter4}

// Progress tracks the chapter cursor. Chapters only move forward by one;
// the epilogue is reachable only from the final chapter.
type Progress struct {
	machine *fsm.FSM
}

// NewProgress creates a cursor positioned at chapter 1.
func NewProgress() *Progress {
	m := fsm.New(StateChapter1).
		Transition(StateChapter1, EventAdvance, StateChapter2).
		Transition(StateChapter2, EventAdvance, StateChapter3).
		Transition(StateChapter3, EventAdvance, StateChapter4).
		Transition(StateChapter4, EventTriumph, StateEpilogue)
	for _, s := range chapterStates {
		m = m.Transition(s, EventFall, StateFallen)
	}
	return &Progress{machine: m}
}

// Chapter returns the current 1-based chapter, or FinalChapter+1 once the
// session is over.
func (p *Progress) Chapter() int {
	cur := p.machine.Current()
	for i, s := range chapterStates {
		if s == cur {
			return i + 1
		}
	}
	return FinalChapter + 1
}

// Done returns true once the session reached the epilogue or fell.
func (p *Progress) Done() bool {
	return p.Chapter() > FinalChapter
}

// Ending reports how the session ended so far.
func (p *Progress) Ending() types.Ending {
	switch p.machine.Current() {
	case StateEpilogue:
		return types.EndingVictory
	case StateFallen:
		return types.EndingDefeat
	default:
		return types.EndingNone
	}
}

// Advance moves to the next chapter.
func (p *Progress) Advance() error {
	return p.trigger(EventAdvance)
}

// Triumph moves from the final chapter to the epilogue.
func (p *Progress) Triumph() error {
	return p.trigger(EventTriumph)
}

// Fall ends the session in a loss.
func (p *Progress) Fall() error {
	return p.trigger(EventFall)
}

func (p *Progress) trigger(ev fsm.Event) error {
	from := p.machine.Current()
	if err := p.machine.Trigger(ev); err != nil {
		return fmt.Errorf("progress %s from %s: %w", ev, from, err)
	}
	return nil
}
