// Package main hosts the corpusprep CLI entrypoint and command graph.
//
// The Cobra-based command tree exposes the order-restoration matcher
// (reorder), the cluster split utilities (separate, concat), dataset symlink
// creation, and configuration scaffolding. It centralizes configuration
// resolution and structured logging setup so subcommands only parse flags,
// call into the internal packages, and render a summary.
//
// Keep this package lean: new functionality belongs in the internal packages
// first and is surfaced here through dedicated commands or flags.
package main
