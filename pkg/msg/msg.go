// Package msg implements the leveled message logger for skel.
// Each message is rendered immediately: colorized to the console (unless
// quiet mode is set or the terminal cannot display color) and, when file
// logging is enabled, appended as a plain timestamped line to the log file.
// Messages are never persisted as structures.
package msg

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/skelgo/skel/pkg/options"
)

// Level identifies the severity of a message.
type Level string

// Supported message levels, ordered roughly by severity.
const (
	// LevelEmergency is reserved for fatal-terminate paths.
	LevelEmergency Level = "emergency"

	// LevelError reports a failure the run cannot recover from.
	LevelError Level = "error"

	// LevelWarning reports a suspicious but non-fatal condition.
	LevelWarning Level = "warning"

	// LevelNotice is an informational message with mild emphasis.
	LevelNotice Level = "notice"

	// LevelInfo is a plain informational message.
	LevelInfo Level = "info"

	// LevelDebug is emitted only when verbose or debug mode is enabled.
	LevelDebug Level = "debug"

	// LevelSuccess reports a completed step.
	LevelSuccess Level = "success"

	// LevelInput prompts for interactive input. Input messages go to the
	// console only and omit the trailing newline.
	LevelInput Level = "input"

	// LevelHeader renders a banner separating sections of output.
	LevelHeader Level = "header"
)

// timeLayout is the timestamp prefix used on every rendered line.
const timeLayout = "2006-01-02 15:04:05"

// tagWidth right-aligns level tags so message bodies line up.
const tagWidth = 8

// bannerWidth is the total display width of header banners.
const bannerWidth = 56

// levelColors maps each level to its console color.
// A nil entry renders plain text.
var levelColors = map[Level]*color.Color{
	LevelEmergency: color.New(color.FgRed, color.Bold),
	LevelError:     color.New(color.FgRed),
	LevelWarning:   color.New(color.FgYellow),
	LevelSuccess:   color.New(color.FgGreen),
	LevelDebug:     color.New(color.FgMagenta),
	LevelHeader:    color.New(color.FgYellow, color.Bold),
	LevelInput:     color.New(color.Bold),
}

// Logger renders leveled messages to the console and optionally to a file.
//
// A Logger is constructed once per run from the resolved run configuration
// and passed explicitly to whatever needs to report; there is no package
// global. The log file is opened lazily on the first logged message so a
// run that never logs leaves no file behind.
//
// Fields are unexported; construct with New.
type Logger struct {
	mu      sync.Mutex
	opts    options.Options
	console io.Writer
	logPath string
	logFile *os.File
	logErr  bool
	now     func() time.Time
	color   bool
}

// New creates a Logger for the given run configuration.
//
// It performs the following operations:
//   - Binds the console to stderr
//   - Records the log path for lazy opening (used only when PrintLog is set)
//   - Decides color support once, from the terminal and TERM environment
//
// Parameters:
//   - opts: The resolved run configuration
//   - logPath: Path of the append-only log file; ignored unless PrintLog is set
//
// Returns:
//   - *Logger: Ready-to-use logger
func New(opts options.Options, logPath string) *Logger {
	console := io.Writer(os.Stderr)
	return &Logger{
		opts:    opts,
		console: console,
		logPath: logPath,
		now:     time.Now,
		color:   colorSupported(console),
	}
}

// colorSupported reports whether colored output should be emitted.
//
// Coloring is disabled when the writer is not an interactive terminal,
// when TERM is empty or "dumb", or when the color library itself has been
// globally disabled (NO_COLOR convention).
//
// Parameters:
//   - w: The console writer to probe
//
// Returns:
//   - bool: true if ANSI colors can be rendered
func colorSupported(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetConsole replaces the console writer and returns a restore function.
//
// Color support is re-evaluated for the new writer. Intended for tests
// capturing output; pass nil to reset to stderr.
//
// Parameters:
//   - w: The io.Writer to use for console output; nil resets to stderr
//
// Returns:
//   - func(): Restores the previous writer and color decision
func (l *Logger) SetConsole(w io.Writer) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	prevW, prevC := l.console, l.color
	if w == nil {
		w = os.Stderr
	}
	l.console = w
	l.color = colorSupported(w)

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.console = prevW
		l.color = prevC
	}
}

// SetClock replaces the timestamp source and returns a restore function.
//
// Parameters:
//   - now: Replacement clock; nil resets to time.Now
//
// Returns:
//   - func(): Restores the previous clock
func (l *Logger) SetClock(now func() time.Time) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := l.now
	if now == nil {
		now = time.Now
	}
	l.now = now

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.now = prev
	}
}

// LogPath returns the path of the log file this logger appends to.
//
// Returns:
//   - string: The configured log path, empty if file logging is unused
func (l *Logger) LogPath() string {
	return l.logPath
}

// Alert is the generic primitive every level-specific method routes through.
//
// It performs the following operations:
//   - Drops debug messages unless verbose or debug mode is enabled
//   - Appends a plain timestamped line to the log file when PrintLog is set,
//     except for input-level messages which are console-only
//   - Writes a colorized timestamped line to the console unless quiet mode
//     is set; input-level messages omit the trailing newline
//
// Parameters:
//   - level: The message level
//   - text: The message body
func (l *Logger) Alert(level Level, text string) {
	if level == LevelDebug && !l.opts.DebugEnabled() {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("[%s] [%*s] %s", l.now().Format(timeLayout), tagWidth, level, text)

	if l.opts.PrintLog && level != LevelInput {
		l.appendToLog(line)
	}

	if l.opts.Quiet {
		return
	}

	out := line
	if l.color {
		if c, ok := levelColors[level]; ok && c != nil {
			out = c.Sprint(line)
		}
	}
	if level == LevelInput {
		_, _ = fmt.Fprint(l.console, out)
		return
	}
	_, _ = fmt.Fprintln(l.console, out)
}

// appendToLog writes one line to the log file, opening it on first use.
//
// The file is opened append-only so concurrent runs interleave whole lines
// rather than clobbering each other. A failure to open is reported once to
// the console and file logging is abandoned for the rest of the run; log
// output is best-effort and never terminates the process.
//
// Parameters:
//   - line: The fully rendered, uncolored line to append
func (l *Logger) appendToLog(line string) {
	if l.logErr {
		return
	}
	if l.logFile == nil {
		f, err := os.OpenFile(l.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			l.logErr = true
			_, _ = fmt.Fprintf(l.console, "cannot open log file %s: %v\n", l.logPath, err)
			return
		}
		l.logFile = f
	}
	_, _ = fmt.Fprintln(l.logFile, line)
}

// Close releases the log file if one was opened.
//
// Returns:
//   - error: Error from closing the file, nil if no file was opened
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile == nil {
		return nil
	}
	err := l.logFile.Close()
	l.logFile = nil
	return err
}

// Info logs a plain informational message.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func (l *Logger) Info(format string, args ...any) {
	l.Alert(LevelInfo, fmt.Sprintf(format, args...))
}

// Notice logs an informational message with mild emphasis.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func (l *Logger) Notice(format string, args ...any) {
	l.Alert(LevelNotice, fmt.Sprintf(format, args...))
}

// Warning logs a warning message.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func (l *Logger) Warning(format string, args ...any) {
	l.Alert(LevelWarning, fmt.Sprintf(format, args...))
}

// Error logs an error message.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func (l *Logger) Error(format string, args ...any) {
	l.Alert(LevelError, fmt.Sprintf(format, args...))
}

// Emergency logs a fatal message. Termination itself is the caller's job;
// fatal paths funnel through the script runner so cleanup always runs.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func (l *Logger) Emergency(format string, args ...any) {
	l.Alert(LevelEmergency, fmt.Sprintf(format, args...))
}

// Debug logs a message that appears only in verbose or debug mode.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func (l *Logger) Debug(format string, args ...any) {
	l.Alert(LevelDebug, fmt.Sprintf(format, args...))
}

// Success logs a completed-step message.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func (l *Logger) Success(format string, args ...any) {
	l.Alert(LevelSuccess, fmt.Sprintf(format, args...))
}

// Input prompts for interactive input. The prompt goes to the console
// only, is never written to the log file, and omits the trailing newline
// so the cursor stays on the prompt line.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func (l *Logger) Input(format string, args ...any) {
	l.Alert(LevelInput, fmt.Sprintf(format, args...))
}

// Header logs a banner line separating sections of output.
//
// The banner is padded with '=' to a fixed display width. Width is
// computed with runewidth so wide runes (CJK, emoji) do not skew the fill.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func (l *Logger) Header(format string, args ...any) {
	l.Alert(LevelHeader, banner(fmt.Sprintf(format, args...)))
}

// banner decorates header text as "== text ====..." padded to bannerWidth.
//
// Parameters:
//   - text: The header text
//
// Returns:
//   - string: The decorated banner
func banner(text string) string {
	fill := bannerWidth - runewidth.StringWidth(text) - 4
	if fill < 2 {
		fill = 2
	}
	return "== " + text + " " + strings.Repeat("=", fill)
}
