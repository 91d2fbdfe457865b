package commands

import (
	"fmt"
	"strconv"

	"github.com/udisondev/aiongo/internal/constants"
	"github.com/udisondev/aiongo/internal/model"
)

// Kinah handles //kinah <count>.
type Kinah struct {
	items ItemGranter
}

// NewKinah creates //kinah command.
func NewKinah(items ItemGranter) *Kinah {
	return &Kinah{items: items}
}

func (c *Kinah) Names() []string            { return []string{"kinah"} }
func (c *Kinah) RequiredAccessLevel() int32 { return model.AccessLevelAdmin }

func (c *Kinah) Handle(player *model.Player, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: //kinah <count>")
	}

	count, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid count %q: %w", args[1], err)
	}
	if count < 1 {
		return fmt.Errorf("count must be positive, got %d", count)
	}

	if _, err := c.items.AddItem(player, constants.KinahItemID, count, false); err != nil {
		return fmt.Errorf("add kinah: %w", err)
	}

	player.SetLastAdminMessage(fmt.Sprintf("Added %d kinah, balance %d", count, player.Inventory().KinahCount()))
	return nil
}
