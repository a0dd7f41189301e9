package cmd

import (
	"io"

	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"
	"github.com/titlekit/titlekit/fake"
)

// GenMain is wrapped by NewGenCommand and only exported for testing
// purposes.
var GenMain *fake.Main

// NewGenCommand returns a new cobra command wrapping GenMain.
func NewGenCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	GenMain = fake.NewMain()
	genCommand := &cobra.Command{
		Use:   "gen",
		Short: "generate fake basics and ratings dumps for testing",
		Long: `Writes a pair of fake IMDb-style TSV dumps with matching title ids,
useful for trying the join without downloading the real datasets.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenMain.Run()
		},
	}
	flags := genCommand.Flags()
	if err := commandeer.Flags(flags, GenMain); err != nil {
		panic(err)
	}
	return genCommand
}

func init() {
	subcommandFns["gen"] = NewGenCommand
}
