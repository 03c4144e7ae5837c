package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/touchkey/internal/replay"
)

// ReplayCommand is the command `replay`, which replays a script of touch
// events on the configured layout and prints the resulting key actions.
type ReplayCommand struct {
	ConfigOpts
	MoreKeysOpts

	Script string `short:"s" long:"script" required:"true" description:"Specify the touch event script" value-name:"<file>"`
}

// Execute executes the replay command.
func (command *ReplayCommand) Execute(args []string) error {
	c, l, err := loadLayout(&command.ConfigOpts)
	if err != nil {
		return err
	}
	events, err := replay.LoadScript(command.Script)
	if err != nil {
		return err
	}

	log.Debug().Int("events", len(events)).Str("script", command.Script).Msg("replaying script")
	for _, line := range replay.Replay(events, l, command.detector(&c), c.TrackerConfig(), log.Logger) {
		fmt.Fprintln(stdout, line)
	}
	return nil
}
