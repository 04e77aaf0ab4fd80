package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// taskFieldFlagAliases maps short spellings and the original field names
// onto the canonical flag names.
var taskFieldFlagAliases = map[string]string{
	"desc":              "description",
	"expire-at":         "due",
	"estimated-minutes": "estimate",
	"est":               "estimate",
	"pri":               "priority",
}

func addTaskFieldFlagAliases(cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		setFlagAliases(cmd.Flags(), taskFieldFlagAliases)
	}
}

func setFlagAliases(flags *pflag.FlagSet, aliases map[string]string) {
	if len(aliases) == 0 {
		return
	}

	normalize := flags.GetNormalizeFunc()
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		return normalize(f, name)
	})
}
