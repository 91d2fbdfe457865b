package model

import (
	"fmt"
	"strings"
)

// StatEnum — характеристика персонажа, на которую влияют предметы и manastones.
type StatEnum int32

const (
	StatMaxHP StatEnum = iota
	StatMaxMP
	StatPhysicalAttack
	StatPhysicalDefense
	StatMagicalAttack
	StatMagicalResist
	StatAccuracy
	StatEvasion
	StatParry
	StatBlock
	StatCritical
	StatAttackSpeed
	StatSpeed
	statCount
)

var statNames = [statCount]string{
	StatMaxHP:           "MAXHP",
	StatMaxMP:           "MAXMP",
	StatPhysicalAttack:  "PHYSICAL_ATTACK",
	StatPhysicalDefense: "PHYSICAL_DEFENSE",
	StatMagicalAttack:   "MAGICAL_ATTACK",
	StatMagicalResist:   "MAGICAL_RESIST",
	StatAccuracy:        "ACCURACY",
	StatEvasion:         "EVASION",
	StatParry:           "PARRY",
	StatBlock:           "BLOCK",
	StatCritical:        "CRITICAL",
	StatAttackSpeed:     "ATTACK_SPEED",
	StatSpeed:           "SPEED",
}

// String returns catalog name of the stat.
func (s StatEnum) String() string {
	if s < 0 || s >= statCount {
		return "UNKNOWN"
	}
	return statNames[s]
}

// ParseStatEnum разбирает имя stat из каталога (регистр не важен).
func ParseStatEnum(name string) (StatEnum, error) {
	upper := strings.ToUpper(name)
	for i, n := range statNames {
		if n == upper {
			return StatEnum(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stat %q", name)
}

// StatFunc — способ применения модификатора к stat.
type StatFunc int32

const (
	StatFuncAdd  StatFunc = iota // +value к flat bonus
	StatFuncSub                  // -value к flat bonus
	StatFuncRate                 // +value% к итоговому значению
)

// String returns catalog name of the modifier function.
func (f StatFunc) String() string {
	switch f {
	case StatFuncAdd:
		return "ADD"
	case StatFuncSub:
		return "SUB"
	case StatFuncRate:
		return "RATE"
	default:
		return "UNKNOWN"
	}
}

// ParseStatFunc разбирает имя функции модификатора из каталога.
func ParseStatFunc(name string) (StatFunc, error) {
	switch strings.ToUpper(name) {
	case "ADD":
		return StatFuncAdd, nil
	case "SUB":
		return StatFuncSub, nil
	case "RATE":
		return StatFuncRate, nil
	default:
		return 0, fmt.Errorf("unknown stat func %q", name)
	}
}

// StatModifier — один модификатор stat из шаблона предмета.
type StatModifier struct {
	Stat  StatEnum
	Func  StatFunc
	Value int32
}

// statBonus — накопленные бонусы по одному stat.
type statBonus struct {
	flat int32
	rate int32 // проценты
}

// statFuncs — dispatch table: StatFunc → применение к бонусу.
// sign = +1 при надевании, -1 при снятии.
var statFuncs = map[StatFunc]func(b *statBonus, value, sign int32){
	StatFuncAdd: func(b *statBonus, value, sign int32) {
		b.flat += value * sign
	},
	StatFuncSub: func(b *statBonus, value, sign int32) {
		b.flat -= value * sign
	},
	StatFuncRate: func(b *statBonus, value, sign int32) {
		b.rate += value * sign
	},
}
