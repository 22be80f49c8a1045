// Package logger provides the process logger of the loogi-http command built on zap.
// It keeps a shared logger with an atomic level that configuration can adjust at runtime,
// and context-aware helpers (plain, formatted and key-value variants) used by the CLI.
// Library code never reads this package; stacks receive their logger explicitly.
package logger
