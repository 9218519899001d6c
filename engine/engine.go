// Package engine drives a story session: chapter progression, choices and
// their effects, and turn-based combat.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/nathoo/lumina/engine/effects"
	"github.com/nathoo/lumina/engine/rules"
	"github.com/nathoo/lumina/engine/state"
	"github.com/nathoo/lumina/types"
)

// ErrInputAborted is returned by a UI when the input stream is closed or the
// player interrupts the session.
var ErrInputAborted = errors.New("input aborted")

// UI is the presentation collaborator. Show and Status are fire-and-forget.
// Choose returns a zero-based index into options and must re-prompt on
// invalid input; Prompt returns non-empty trimmed text. Both, and Pause,
// return ErrInputAborted when input ends.
type UI interface {
	Show(line types.Line)
	Status(p types.Player)
	Choose(ctx context.Context, options []string) (int, error)
	Prompt(ctx context.Context, question string) (string, error)
	Pause(ctx context.Context) error
}

// Engine holds the content, the session state, and its collaborators.
// All state is owned by the goroutine calling Run.
type Engine struct {
	Defs   *state.Defs
	Player *types.Player
	Flags  types.Flags
	RNG    Random
	UI     UI
	Tracer trace.Tracer
	Trace  bool // echo effects and events as [trace] lines

	progress     *Progress
	bossDefeated bool
}

// New creates an engine with a fresh player and empty flags.
func New(defs *state.Defs, ui UI, rng Random) *Engine {
	return &Engine{
		Defs:     defs,
		Player:   state.NewPlayer(defs.Player),
		Flags:    state.NewFlags(),
		RNG:      rng,
		UI:       ui,
		Tracer:   noop.NewTracerProvider().Tracer("lumina/noop"),
		progress: NewProgress(),
	}
}

// Run plays the session until the epilogue, a loss, or aborted input.
func (e *Engine) Run(ctx context.Context) (types.Ending, error) {
	ctx, span := e.Tracer.Start(ctx, "session")
	defer span.End()

	e.title()
	e.show(types.VoiceNarrator, "", "Bem-vindo ao mundo épico de Lumina!")
	e.show(types.VoiceNarrator, "", "Prepare-se para uma aventura inesquecível!")
	if err := e.UI.Pause(ctx); err != nil {
		return types.EndingNone, err
	}

	for !e.progress.Done() && state.Alive(e.Player) {
		chapter := e.progress.Chapter()
		next, err := e.Advance(ctx, chapter)
		if err != nil {
			if !errors.Is(err, ErrInputAborted) {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return types.EndingNone, err
		}
		if err := e.moveCursor(chapter, next); err != nil {
			return types.EndingNone, err
		}
	}

	if !state.Alive(e.Player) {
		e.warn("Sua aventura chegou ao fim...")
		e.system("Mas lendas nunca morrem! Tente novamente!")
	}

	ending := e.progress.Ending()
	span.SetAttributes(
		attribute.Int("ending", int(ending)),
		attribute.Int("player.level", e.Player.Level),
		attribute.Int("player.gold", e.Player.Gold),
	)
	return ending, nil
}

// moveCursor applies the result of one chapter to the progress machine.
func (e *Engine) moveCursor(chapter, next int) error {
	switch {
	case !state.Alive(e.Player):
		return e.progress.Fall()
	case next == chapter:
		// Replay the chapter.
		return nil
	case next > FinalChapter && e.bossDefeated:
		return e.progress.Triumph()
	case next > FinalChapter:
		return e.progress.Fall()
	case next == chapter+1:
		return e.progress.Advance()
	default:
		return fmt.Errorf("chapter %d returned invalid next chapter %d", chapter, next)
	}
}

// Advance plays one chapter and returns the chapter to play next: chapter+1
// on normal completion, the same chapter when it must be replayed, or past
// FinalChapter once the session is decided. A dead player ends the session
// regardless of the returned value.
func (e *Engine) Advance(ctx context.Context, chapter int) (int, error) {
	ctx, span := e.Tracer.Start(ctx, fmt.Sprintf("chapter.%d", chapter))
	defer span.End()

	var next int
	var err error
	switch chapter {
	case 1:
		next, err = e.chapter1(ctx)
	case 2:
		next, err = e.chapter2(ctx)
	case 3:
		next, err = e.chapter3(ctx)
	case 4:
		next, err = e.chapter4(ctx)
	default:
		return chapter, fmt.Errorf("no chapter %d", chapter)
	}
	if err != nil {
		return chapter, fmt.Errorf("chapter %d: %w", chapter, err)
	}
	span.SetAttributes(
		attribute.Int("next", next),
		attribute.Int("player.health", e.Player.Health),
	)
	return next, nil
}

// resolve presents the options, then applies the chosen option's effects if
// its requirements hold, or its Otherwise effects if not. Returns the chosen
// index and whether the main effects were applied.
func (e *Engine) resolve(ctx context.Context, opts []types.Option) (int, bool, error) {
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
	}
	idx, err := e.UI.Choose(ctx, labels)
	if err != nil {
		return 0, false, err
	}
	if idx < 0 || idx >= len(opts) {
		return 0, false, fmt.Errorf("choice %d out of range [0,%d)", idx, len(opts))
	}

	opt := opts[idx]
	trace.SpanFromContext(ctx).AddEvent("choice", trace.WithAttributes(
		attribute.Int("index", idx),
		attribute.String("label", opt.Label),
	))

	return idx, e.when(ctx, opt.Requires, opt.Effects, opt.Otherwise), nil
}

// when applies then if every condition holds, otherwise the alternative.
// Reports whether the conditions held.
func (e *Engine) when(ctx context.Context, requires []types.Condition, then, otherwise []types.Effect) bool {
	if rules.EvalAll(requires, e.Player, e.Flags) {
		e.apply(ctx, then...)
		return true
	}
	e.apply(ctx, otherwise...)
	return false
}

// apply runs effects, shows their output, and announces their events.
func (e *Engine) apply(ctx context.Context, effs ...types.Effect) {
	events, output := effects.Apply(e.Player, e.Flags, effs)
	for _, line := range output {
		e.UI.Show(line)
	}
	if e.Trace {
		for _, eff := range effs {
			if eff.Type != types.EffectSay {
				e.system(fmt.Sprintf("[trace] effect %s", formatEffect(eff)))
			}
		}
	}
	e.announce(ctx, events)
}

// announce records events on the active span and narrates level-ups.
func (e *Engine) announce(ctx context.Context, events []types.Event) {
	span := trace.SpanFromContext(ctx)
	for _, ev := range events {
		span.AddEvent(ev.Type, trace.WithAttributes(eventAttributes(ev.Data)...))
		if ev.Type == state.EventLevelUp {
			e.system("✨ LEVEL UP! ✨")
			e.system(fmt.Sprintf("Você subiu para o nível %v!", ev.Data["level"]))
			e.system("Vida e Mana totalmente restauradas!")
		}
		if e.Trace {
			e.system(fmt.Sprintf("[trace] event %s %v", ev.Type, ev.Data))
		}
	}
}

// encounter builds the named enemy from content and fights it.
func (e *Engine) encounter(ctx context.Context, id string) (types.Outcome, error) {
	enemy, err := e.enemy(id)
	if err != nil {
		return types.Defeat, err
	}
	return e.Fight(ctx, enemy)
}

func (e *Engine) enemy(id string) (*types.Enemy, error) {
	def, ok := e.Defs.Enemies[id]
	if !ok {
		return nil, fmt.Errorf("unknown enemy %q", id)
	}
	return state.NewEnemy(def), nil
}

func (e *Engine) show(voice types.Voice, speaker, text string) {
	e.UI.Show(types.Line{Voice: voice, Speaker: speaker, Text: text})
}

func (e *Engine) narrate(text string) {
	e.show(types.VoiceNarrator, "", text)
}

func (e *Engine) system(text string) {
	e.show(types.VoiceSystem, "", text)
}

func (e *Engine) warn(text string) {
	e.show(types.VoiceEnemy, "", text)
}

func (e *Engine) status() {
	e.UI.Status(state.Snapshot(e.Player))
}

func (e *Engine) title() {
	rule := strings.Repeat("=", 60)
	e.show(types.VoiceNarrator, "", rule)
	e.system("    ✦ A LENDA DO CRISTAL PERDIDO ✦")
	e.show(types.VoiceNarrator, "", "       Um RPG de Texto Épico")
	e.show(types.VoiceNarrator, "", rule)
}

func formatEffect(eff types.Effect) string {
	switch eff.Type {
	case types.EffectGiveItem, types.EffectRemoveItem, types.EffectEquip:
		return fmt.Sprintf("%s %s", eff.Type, eff.Item)
	case types.EffectSetFlag:
		return fmt.Sprintf("%s %s", eff.Type, state.FlagName(eff.Flag))
	case types.EffectRest:
		return string(eff.Type)
	default:
		return fmt.Sprintf("%s %d", eff.Type, eff.Amount)
	}
}

func eventAttributes(data map[string]any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(data))
	for k, v := range data {
		switch val := v.(type) {
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprint(val)))
		}
	}
	return attrs
}
