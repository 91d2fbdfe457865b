package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/udisondev/aiongo/internal/model"
)

// maxAddCount — потолок одной выдачи через //add.
const maxAddCount = 1_000_000

// AddItem handles //add <itemID> [count].
// Выдача идёт через обычный grant: стаки доливаются, остаток при полном cube сообщается.
type AddItem struct {
	items ItemGranter
}

// NewAddItem creates //add command.
func NewAddItem(items ItemGranter) *AddItem {
	return &AddItem{items: items}
}

func (c *AddItem) Names() []string            { return []string{"add", "item"} }
func (c *AddItem) RequiredAccessLevel() int32 { return model.AccessLevelAdmin }

func (c *AddItem) Handle(player *model.Player, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: //add <itemID> [count]")
	}

	itemID, err := strconv.ParseInt(args[1], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid itemID %q: %w", args[1], err)
	}

	count := int64(1)
	if len(args) > 2 {
		count, err = strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid count %q: %w", args[2], err)
		}
	}
	if count < 1 || count > maxAddCount {
		return fmt.Errorf("count must be between 1 and %d, got %d", maxAddCount, count)
	}

	tmpl := c.items.Template(int32(itemID))
	if tmpl == nil {
		return fmt.Errorf("item template %d not found", itemID)
	}

	remaining, err := c.items.AddItem(player, int32(itemID), count, true)
	if err != nil && !errors.Is(err, model.ErrCapacityExhausted) {
		return fmt.Errorf("add item: %w", err)
	}

	if remaining > 0 {
		player.SetLastAdminMessage(fmt.Sprintf("Added %d %s (ID: %d), %d did not fit",
			count-remaining, tmpl.Name, itemID, remaining))
		return nil
	}
	player.SetLastAdminMessage(fmt.Sprintf("Added %d %s (ID: %d)", count, tmpl.Name, itemID))
	return nil
}
