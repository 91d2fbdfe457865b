// Package admin provides GM command handling (//command) and the admin HTTP surface.
package admin

import "github.com/udisondev/aiongo/internal/model"

// AccessLevel defines a GM access level with associated permissions.
// Level 0 = normal player, 1+ = GM, 100+ = full admin.
type AccessLevel struct {
	Level               int32
	Name                string
	IsGM                bool
	CanUseAdminCommands bool
}

var defaultAccessLevels = map[int32]*AccessLevel{
	model.AccessLevelPlayer: {
		Level:               model.AccessLevelPlayer,
		Name:                "User",
		CanUseAdminCommands: false,
	},
	model.AccessLevelGM: {
		Level:               model.AccessLevelGM,
		Name:                "Game Master",
		IsGM:                true,
		CanUseAdminCommands: true,
	},
	model.AccessLevelAdmin: {
		Level:               model.AccessLevelAdmin,
		Name:                "Administrator",
		IsGM:                true,
		CanUseAdminCommands: true,
	},
}

// GetAccessLevel returns AccessLevel for the given level value.
// Unknown levels inherit from the highest known level below them.
// Negative levels (banned) return nil.
func GetAccessLevel(level int32) *AccessLevel {
	if level < 0 {
		return nil
	}

	if al, ok := defaultAccessLevels[level]; ok {
		return al
	}

	var best *AccessLevel
	for _, al := range defaultAccessLevels {
		if al.Level <= level && (best == nil || al.Level > best.Level) {
			best = al
		}
	}
	return best
}
