package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-lifelike/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [rule]",
	Short: "List rule presets or check a rule string",
	Long: `Without arguments, list the named rule presets. With an argument, parse
it as a preset name or rule string and print its canonical form.

Examples:
  lifelike rules
  lifelike rules 23/36
  lifelike rules b3678/s34678`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		rs, err := rules.Lookup(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  born: %v  survive: %v\n", rs, rs.Born(), rs.Survive())
		return nil
	}

	fmt.Fprintln(out, "Rule presets:")
	fmt.Fprintln(out)
	for _, name := range rules.PresetNames() {
		rs, _ := rules.Preset(name)
		fmt.Fprintf(out, "  %-18s %s\n", name, rs)
	}
	return nil
}
