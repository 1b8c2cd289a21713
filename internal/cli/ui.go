package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/lineart/pkg/observability"
	"github.com/matzehuels/lineart/pkg/pipeline"
)

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // commands
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // secondary text
	colorDim    = lipgloss.Color("240") // muted text
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints an output path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printResult prints the outcome of one processed image.
func printResult(res *pipeline.Result) {
	printSuccess("%s", res.Source)
	fmt.Println(statsLine(res))
	printFile(res.Dir)
	if res.Summary != "" {
		printFile(res.Summary)
	}
}

// statsLine renders variant count, cache use and duration on one line,
// e.g. "  20 drawings · 5 radii cached · 1.2s".
func statsLine(res *pipeline.Result) string {
	parts := []string{StyleDim.Render(fmt.Sprintf("%d drawings", len(res.Variants)))}

	switch {
	case res.CacheHits > 0 && res.CacheMisses == 0:
		parts = append(parts, styleCached.Render(fmt.Sprintf("%d radii cached", res.CacheHits)))
	case res.CacheHits > 0:
		parts = append(parts, styleCached.Render(fmt.Sprintf("%d cached", res.CacheHits)),
			styleComputed.Render(fmt.Sprintf("%d fresh", res.CacheMisses)))
	default:
		parts = append(parts, styleComputed.Render("fresh"))
	}
	parts = append(parts, StyleDim.Render(res.Duration.Round(100*time.Millisecond).String()))

	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

// countersLine summarizes a directory run, e.g.
// "20 drawings · 1 grids · 3 cache hits · 2 misses · 1.4 MB cached · 3.2s busy".
func countersLine(s observability.Snapshot) string {
	return fmt.Sprintf("%d drawings · %d grids · %d cache hits · %d misses · %s cached · %s busy",
		s.Variants, s.Grids, s.CacheHits, s.CacheMisses,
		formatSize(s.CachedBytes), s.BusyDuration.Round(100*time.Millisecond))
}
