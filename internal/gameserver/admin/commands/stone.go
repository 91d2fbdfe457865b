package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/udisondev/aiongo/internal/model"
)

// Stone handles //stone <objectID> <slot> <stoneItemID> and //unstone <objectID> <slot>.
type Stone struct {
	stones StoneSocketer
}

// NewStone creates //stone and //unstone commands.
func NewStone(stones StoneSocketer) *Stone {
	return &Stone{stones: stones}
}

func (c *Stone) Names() []string            { return []string{"stone", "unstone"} }
func (c *Stone) RequiredAccessLevel() int32 { return model.AccessLevelGM }

func (c *Stone) Handle(player *model.Player, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: //stone <objectID> <slot> <stoneItemID> | //unstone <objectID> <slot>")
	}

	objectID, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return fmt.Errorf("invalid objectID %q: %w", args[1], err)
	}
	slot, err := strconv.ParseInt(args[2], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid slot %q: %w", args[2], err)
	}

	target := player.Inventory().GetItemByObjID(uint32(objectID))
	if target == nil {
		return fmt.Errorf("item %d: %w", objectID, model.ErrInvalidReference)
	}

	if strings.EqualFold(args[0], "unstone") {
		stone, err := c.stones.RemoveStone(player, target, int32(slot))
		if err != nil {
			return fmt.Errorf("remove stone: %w", err)
		}
		player.SetLastAdminMessage(fmt.Sprintf("Removed manastone %d from %s slot %d", stone.ItemID(), target.Name(), slot))
		return nil
	}

	if len(args) < 4 {
		return fmt.Errorf("usage: //stone <objectID> <slot> <stoneItemID>")
	}
	stoneID, err := strconv.ParseInt(args[3], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid stoneItemID %q: %w", args[3], err)
	}

	if _, err := c.stones.SocketStone(player, target, int32(stoneID), int32(slot)); err != nil {
		return fmt.Errorf("socket stone: %w", err)
	}
	player.SetLastAdminMessage(fmt.Sprintf("Socketed manastone %d into %s slot %d", stoneID, target.Name(), slot))
	return nil
}
