package engine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nathoo/lumina/engine/state"
	"github.com/nathoo/lumina/types"
)

// PotionName is the only consumable usable in combat.
const PotionName = "Poção de Vida"

const (
	attackMin     = 15
	attackMax     = 25
	healMin       = 30
	healMax       = 50
	fleeSides     = 3 // flee succeeds on a roll of 1
	enemyVariance = 5
)

// combatActions are presented in types.Action order.
var combatActions = []string{"Atacar", "Usar Poção de Vida", "Tentar Fugir"}

// Fight runs one encounter to completion, mutating the player turn by turn.
// The player's health never leaves [0, max]; a defeat leaves it at exactly 0.
func (e *Engine) Fight(ctx context.Context, enemy *types.Enemy) (types.Outcome, error) {
	ctx, span := e.Tracer.Start(ctx, "combat.encounter", trace.WithAttributes(
		attribute.String("enemy", enemy.Name),
		attribute.Int("enemy.health", enemy.Health),
		attribute.Int("enemy.damage", enemy.Damage),
	))
	defer span.End()

	e.warn("⚔️  COMBATE INICIADO! ⚔️")
	e.warn("Você enfrenta: " + enemy.Name)

	round := 0
	for enemy.Health > 0 && state.Alive(e.Player) {
		round++
		outcome, done, err := e.combatRound(ctx, enemy, round)
		if err != nil {
			span.RecordError(err)
			return types.Defeat, err
		}
		if done {
			span.SetAttributes(attribute.String("outcome", outcomeName(outcome)), attribute.Int("rounds", round))
			return outcome, nil
		}
	}

	if !state.Alive(e.Player) {
		return types.Defeat, nil
	}
	// The enemy entered the fight already beaten.
	return e.victory(ctx, enemy)
}

// combatRound plays one round. done is true when the encounter is over.
func (e *Engine) combatRound(ctx context.Context, enemy *types.Enemy, round int) (types.Outcome, bool, error) {
	ctx, span := e.Tracer.Start(ctx, "combat.round", trace.WithAttributes(attribute.Int("round", round)))
	defer span.End()

	e.warn(fmt.Sprintf("%s: %d/%d ❤️", enemy.Name, enemy.Health, enemy.MaxHealth))
	e.show(types.VoicePlayer, "", fmt.Sprintf("%s: %d/%d ❤️", e.Player.Name, e.Player.Health, e.Player.MaxHealth))

	idx, err := e.UI.Choose(ctx, combatActions)
	if err != nil {
		return types.Defeat, false, err
	}

	result, err := e.playerAction(enemy, types.Action(idx))
	if err != nil {
		return types.Defeat, false, err
	}
	span.SetAttributes(attribute.String("result", roundResultName(result)))

	switch {
	case result == types.Attacked && enemy.Health <= 0:
		outcome, err := e.victory(ctx, enemy)
		return outcome, true, err
	case result == types.FledSuccess:
		return types.Fled, true, nil
	}

	if !enemyRetaliates(result, enemy) {
		return types.Defeat, false, nil
	}

	if _, err := e.enemyAttack(enemy); err != nil {
		return types.Defeat, false, err
	}
	if !state.Alive(e.Player) {
		e.warn("Você foi derrotado...")
		e.warn("GAME OVER")
		return types.Defeat, true, nil
	}
	return types.Defeat, false, nil
}

// playerAction resolves the player's half of a round.
func (e *Engine) playerAction(enemy *types.Enemy, action types.Action) (types.RoundResult, error) {
	switch action {
	case types.ActionAttack:
		dmg, err := e.RNG.IntRange(attackMin, attackMax)
		if err != nil {
			return types.Attacked, err
		}
		enemy.Health -= dmg
		e.show(types.VoicePlayer, "", fmt.Sprintf("Você ataca %s causando %d de dano!", enemy.Name, dmg))
		return types.Attacked, nil

	case types.ActionPotion:
		return e.usePotion()

	case types.ActionFlee:
		return e.attemptFlee()

	default:
		return types.HealFailed, fmt.Errorf("unknown combat action %d", action)
	}
}

// usePotion consumes one potion and heals. Without a potion the round is
// spent and the enemy does not act.
func (e *Engine) usePotion() (types.RoundResult, error) {
	if !state.HasItem(e.Player, PotionName) {
		e.warn("Você não tem Poções de Vida!")
		return types.HealFailed, nil
	}
	amount, err := e.RNG.IntRange(healMin, healMax)
	if err != nil {
		return types.HealFailed, err
	}
	state.RemoveItem(e.Player, PotionName)
	state.Heal(e.Player, amount)
	e.system(fmt.Sprintf("Você usa uma Poção de Vida e recupera %d de vida!", amount))
	return types.Healed, nil
}

// attemptFlee succeeds with probability 1/fleeSides.
func (e *Engine) attemptFlee() (types.RoundResult, error) {
	roll, err := e.RNG.IntRange(1, fleeSides)
	if err != nil {
		return types.FledFailure, err
	}
	if roll == 1 {
		e.system("Você conseguiu fugir!")
		return types.FledSuccess, nil
	}
	e.warn("Não conseguiu fugir!")
	return types.FledFailure, nil
}

// enemyAttack rolls and applies the enemy's damage. Returns the damage dealt.
func (e *Engine) enemyAttack(enemy *types.Enemy) (int, error) {
	low, high := EnemyDamageRange(enemy.Damage)
	dmg, err := e.RNG.IntRange(low, high)
	if err != nil {
		return 0, fmt.Errorf("%s attack: %w", enemy.Name, err)
	}
	state.Damage(e.Player, dmg)
	e.warn(fmt.Sprintf("%s te ataca causando %d de dano!", enemy.Name, dmg))
	return dmg, nil
}

// victory grants the enemy's experience and a gold roll, then levels up.
func (e *Engine) victory(ctx context.Context, enemy *types.Enemy) (types.Outcome, error) {
	gold, err := e.RNG.IntRange(enemy.GoldMin, enemy.GoldMax)
	if err != nil {
		return types.Victory, fmt.Errorf("%s gold reward: %w", enemy.Name, err)
	}
	e.system(enemy.Name + " foi derrotado!")
	e.Player.Experience += enemy.Experience
	state.AddGold(e.Player, gold)
	e.system(fmt.Sprintf("Você ganhou %d XP e %d moedas de ouro!", enemy.Experience, gold))
	e.announce(ctx, state.ApplyLevelUps(e.Player))
	return types.Victory, nil
}

// EnemyDamageRange returns the closed damage range for an enemy's base
// damage. The low bound is clamped to 0.
func EnemyDamageRange(base int) (low, high int) {
	return max(base-enemyVariance, 0), base + enemyVariance
}

// enemyRetaliates decides whether the enemy acts after the player's action.
func enemyRetaliates(result types.RoundResult, enemy *types.Enemy) bool {
	switch result {
	case types.HealFailed, types.FledSuccess:
		return false
	case types.Attacked:
		return enemy.Health > 0
	default:
		return true
	}
}

func outcomeName(o types.Outcome) string {
	switch o {
	case types.Victory:
		return "victory"
	case types.Fled:
		return "fled"
	case types.Defeat:
		return "defeat"
	default:
		return "unknown"
	}
}

func roundResultName(r types.RoundResult) string {
	switch r {
	case types.Attacked:
		return "attacked"
	case types.Healed:
		return "healed"
	case types.HealFailed:
		return "heal_failed"
	case types.FledSuccess:
		return "fled_success"
	case types.FledFailure:
		return "fled_failure"
	default:
		return "unknown"
	}
}
