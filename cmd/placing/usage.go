package main

import (
	"github.com/spf13/cobra"
)

// usageError reports missing or surplus positional arguments.
type usageError struct {
	usage string
}

func (e *usageError) Error() string {
	return "usage: " + e.usage
}

// argsBetween accepts between minArgs and maxArgs positional arguments.
// A negative maxArgs means unbounded.
func argsBetween(usage string, minArgs, maxArgs int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < minArgs || (maxArgs >= 0 && len(args) > maxArgs) {
			return &usageError{usage: usage}
		}
		return nil
	}
}
