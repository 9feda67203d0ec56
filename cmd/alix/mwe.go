package main

import (
	"fmt"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"
)

func newMWECmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mwe",
		Short: "compile the expression dictionary",
		Long:  `Compile the expression dictionary named by the configuration and report the automaton size.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			comp, err := loadComponents(configPath)
			if err != nil {
				return err
			}
			defer comp.Close()

			a := comp.Automaton
			if a == nil {
				return errors.New("no expression dictionary configured (mwe)")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sequences\t%d\n", a.Len())
			fmt.Fprintf(out, "states\t%d\n", a.States())
			fmt.Fprintf(out, "transitions\t%d\n", a.Transitions())
			fmt.Fprintf(out, "max length\t%d\n", a.MaxLen())
			fmt.Fprintf(out, "vocabulary\t%d\n", comp.Vocab.Len())
			return nil
		},
	}
}
