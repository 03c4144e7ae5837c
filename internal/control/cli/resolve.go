package cli

import (
	"fmt"

	"github.com/ja-he/touchkey/internal/keyboard"
	"github.com/ja-he/touchkey/internal/replay"
)

// ResolveCommand is the command `resolve`, which resolves a single touch point
// on the configured layout.
type ResolveCommand struct {
	ConfigOpts
	MoreKeysOpts

	X int `short:"x" long:"x" required:"true" description:"x-coordinate of the touch point (layout pixels)"`
	Y int `short:"y" long:"y" required:"true" description:"y-coordinate of the touch point (layout pixels)"`
}

// Execute executes the resolve command.
func (command *ResolveCommand) Execute(args []string) error {
	c, l, err := loadLayout(&command.ConfigOpts)
	if err != nil {
		return err
	}
	d := command.detector(&c)

	result := d.Resolve(l, command.X, command.Y, true)

	if k, ok := l.Lookup(result.Key); ok {
		fmt.Fprintf(stdout, "key: %s (%s) at %d,%d %dx%d\n", keyboard.ToCodeSpec(k.Code), result.Key, k.X, k.Y, k.Width, k.Height)
	} else {
		fmt.Fprintln(stdout, "key: none")
	}
	fmt.Fprintf(stdout, "nearby: %s\n", replay.FormatCodes(result.Nearby))
	for i, candidate := range result.Candidates.Candidates() {
		k := l.Key(candidate.Key)
		inside := ""
		if candidate.Inside {
			inside = " (inside)"
		}
		fmt.Fprintf(stdout, "  %d: %s distance² %d%s\n", i, keyboard.ToCodeSpec(k.Code), candidate.Distance, inside)
	}
	return nil
}
