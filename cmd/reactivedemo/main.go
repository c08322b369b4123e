// Command reactivedemo is a small inspection tool for the reactive
// engine: each subcommand runs a scripted scenario and prints what its
// effects see, and the object subcommand also prints each track/trigger
// event as it happens, so the engine's behavior can be eyeballed
// without writing a Go test.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reactive"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "reactivedemo",
		Short:         "Inspect the reactive engine's track/trigger behavior",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(signalCmd(), computedCmd(), objectCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func withDebug(fn func()) {
	reactive.DebugMode = true
	reactive.Debug.OnTrack = func(e reactive.TrackEvent) {
		fmt.Printf("  track   %-8s %v on %T\n", e.Type, e.Key, e.Target)
	}
	reactive.Debug.OnTrigger = func(e reactive.TriggerEvent) {
		fmt.Printf("  trigger %-8s %v (%v -> %v)\n", e.Type, e.Key, e.OldValue, e.NewValue)
	}
	fn()
	reactive.Debug.OnTrack = nil
	reactive.Debug.OnTrigger = nil
	reactive.DebugMode = false
}

func signalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ref",
		Short: "Run a ref through one read and two writes",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := reactive.NewRef(0)
			reactive.CreateEffect(func() reactive.Cleanup {
				fmt.Println("effect saw:", r.Value())
				return nil
			})
			r.Set(1)
			r.Set(1) // same-value-zero: no re-fire
			r.Set(2)
			return nil
		},
	}
}

func computedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "computed",
		Short: "Show a computed recomputing at most once per read",
		RunE: func(cmd *cobra.Command, args []string) error {
			n := reactive.NewRef(1)
			calls := 0
			c := reactive.NewComputed(func() int {
				calls++
				return n.Value() * 2
			})
			fmt.Println("value:", c.Value(), "calls:", calls)
			fmt.Println("value:", c.Value(), "calls:", calls)
			n.Set(3)
			fmt.Println("after write, calls still:", calls)
			fmt.Println("value:", c.Value(), "calls:", calls)
			return nil
		},
	}
}

func objectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "object",
		Short: "Track/trigger a reactive struct field, printing debug events",
		RunE: func(cmd *cobra.Command, args []string) error {
			type State struct{ Count int }
			state := reactive.Reactive(&State{}).(*reactive.Object)
			withDebug(func() {
				reactive.CreateEffect(func() reactive.Cleanup {
					fmt.Println("count is", state.Get("Count"))
					return nil
				})
				state.Set("Count", 1)
			})
			return nil
		},
	}
}
