// Command gcodeclean is the thin composition root over internal/workflow,
// internal/split and internal/merge: flag binding, file opening and
// closing, and the one place a fatal error exits the process.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
