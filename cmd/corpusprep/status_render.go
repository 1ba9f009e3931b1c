package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const ansiReset = "\x1b[0m"

var statusStyles = map[statusKind]struct{ tag, color string }{
	statusInfo:  {"INFO", "\x1b[34m"},
	statusOK:    {"OK", "\x1b[32m"},
	statusWarn:  {"WARN", "\x1b[33m"},
	statusError: {"ERROR", "\x1b[31m"},
}

const statusLabelWidth = 14

// renderStatusLine formats "  label:  [TAG] message", wrapped in the kind's
// colour when colorize is set.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style := statusStyles[kind]
	line := fmt.Sprintf("  %-*s [%s]", statusLabelWidth, label+":", style.tag)
	if message != "" {
		line += " " + message
	}
	if colorize && style.color != "" {
		return style.color + line + ansiReset
	}
	return line
}

// statusPrinter writes status lines to one destination, deciding once
// whether it is a terminal.
type statusPrinter struct {
	out      io.Writer
	colorize bool
}

func newStatusPrinter(out io.Writer) *statusPrinter {
	return &statusPrinter{out: out, colorize: shouldColorize(out)}
}

func (p *statusPrinter) print(label string, kind statusKind, format string, args ...any) {
	fmt.Fprintln(p.out, renderStatusLine(label, kind, fmt.Sprintf(format, args...), p.colorize))
}

func (p *statusPrinter) info(label, format string, args ...any) {
	p.print(label, statusInfo, format, args...)
}

func (p *statusPrinter) ok(label, format string, args ...any) {
	p.print(label, statusOK, format, args...)
}

func (p *statusPrinter) warn(label, format string, args ...any) {
	p.print(label, statusWarn, format, args...)
}

func (p *statusPrinter) fail(label, format string, args ...any) {
	p.print(label, statusError, format, args...)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
