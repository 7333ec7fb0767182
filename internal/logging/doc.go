// Package logger provides leveled diagnostic logging for edk commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags on the root command:
//
//   - --verbose: Shows info messages
//   - --debug: Shows info and debug messages, including every remote call
//
// Warnings and errors are always written to stderr.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Pulled %d secrets", count)
//
// The root command creates the logger in its PersistentPreRun and
// subcommands read it from the package-level cmd.Logger variable.
package logger
