package model

import (
	"log/slog"
	"sync"
)

// PlayerGameStats — производные характеристики игрока.
//
// Бонусы от экипировки не являются "владельцем" предметов: это вычисляемое
// представление. Recompute пересобирает его с нуля по надетым предметам,
// AddModifiers/RemoveModifiers применяют инкрементальные изменения
// (например, manastone вставлен в уже надетый предмет).
type PlayerGameStats struct {
	base  [statCount]int32
	bonus [statCount]statBonus

	mu sync.RWMutex
}

// NewPlayerGameStats создаёт stats с базовыми значениями.
func NewPlayerGameStats(base map[StatEnum]int32) *PlayerGameStats {
	s := &PlayerGameStats{}
	for stat, v := range base {
		if stat >= 0 && stat < statCount {
			s.base[stat] = v
		}
	}
	return s
}

// Base возвращает базовое значение stat (без бонусов).
func (s *PlayerGameStats) Base(stat StatEnum) int32 {
	if stat < 0 || stat >= statCount {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.base[stat]
}

// Bonus возвращает flat и rate бонусы по stat.
func (s *PlayerGameStats) Bonus(stat StatEnum) (flat, rate int32) {
	if stat < 0 || stat >= statCount {
		return 0, 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.bonus[stat]
	return b.flat, b.rate
}

// Current возвращает итоговое значение: (base + flat) * (100 + rate) / 100.
func (s *PlayerGameStats) Current(stat StatEnum) int32 {
	if stat < 0 || stat >= statCount {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.bonus[stat]
	return (s.base[stat] + b.flat) * (100 + b.rate) / 100
}

// AddModifiers применяет модификаторы (надевание предмета / вставка stone).
func (s *PlayerGameStats) AddModifiers(mods []StatModifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(mods, 1)
}

// RemoveModifiers откатывает ранее применённые модификаторы.
func (s *PlayerGameStats) RemoveModifiers(mods []StatModifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(mods, -1)
}

// Recompute сбрасывает все бонусы и пересчитывает их по надетым предметам:
// модификаторы шаблона + модификаторы всех вставленных item stones.
func (s *PlayerGameStats) Recompute(equipped []*Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bonus = [statCount]statBonus{}
	for _, item := range equipped {
		if tmpl := item.Template(); tmpl != nil {
			s.apply(tmpl.Modifiers, 1)
		}
		for _, stone := range item.ItemStones() {
			s.apply(stone.Modifiers(), 1)
		}
	}
}

// apply вызывается под s.mu.
func (s *PlayerGameStats) apply(mods []StatModifier, sign int32) {
	for _, m := range mods {
		if m.Stat < 0 || m.Stat >= statCount {
			continue
		}
		fn, ok := statFuncs[m.Func]
		if !ok {
			slog.Warn("unknown stat func", "func", int32(m.Func), "stat", m.Stat.String())
			continue
		}
		fn(&s.bonus[m.Stat], m.Value, sign)
	}
}
