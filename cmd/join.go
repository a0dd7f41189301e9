package cmd

import (
	"io"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"
	"github.com/titlekit/titlekit/join"
)

// JoinMain is wrapped by NewJoinCommand and only exported for testing
// purposes.
var JoinMain *join.Main

// NewJoinCommand returns a new cobra command wrapping JoinMain.
func NewJoinCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	JoinMain = join.NewMain()
	joinCommand := &cobra.Command{
		Use:   "join",
		Short: "join the basics and ratings dumps and write merged avro records",
		Long: `Reads the title.basics and title.ratings TSV dumps, filters them
(movies from 1970 on, rated 5.0 or better), joins them on title id, and
writes the merged records to an avro file, optionally publishing them to
kafka as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			err := JoinMain.Run()
			if err != nil {
				return err
			}
			cmd.PrintErrln("Done: ", time.Since(start))
			return nil
		},
	}
	flags := joinCommand.Flags()
	if err := commandeer.Flags(flags, JoinMain); err != nil {
		panic(err)
	}
	return joinCommand
}

func init() {
	subcommandFns["join"] = NewJoinCommand
}
