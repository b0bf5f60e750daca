package diag

import (
	"github.com/pterm/pterm"
)

var (
	errorBannerStyle = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	warnBannerStyle  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorTextStyle   = pterm.NewStyle(pterm.FgRed)
	warnTextStyle    = pterm.NewStyle(pterm.FgYellow)
)

// Display prints every recorded diagnostic to stdout in source order, one
// banner-prefixed line per diagnostic, matching the teacher's
// logging.display.go banner convention.
func (s *Sink) Display() {
	for _, d := range s.Diagnostics() {
		d.display()
	}
}

func (d Diagnostic) display() {
	if d.IsError() {
		errorBannerStyle.Print(d.Kind.String() + " Error")
		errorTextStyle.Printf(" (%d:%d) %s\n", d.Pos.Line, d.Pos.Col, d.Message)
	} else {
		warnBannerStyle.Print(d.Kind.String() + " Warning")
		warnTextStyle.Printf(" (%d:%d) %s\n", d.Pos.Line, d.Pos.Col, d.Message)
	}
}

// PrintErrorMessage prints a standalone driver-level error (e.g. a file I/O
// failure), outside the diagnostics sink proper.
func PrintErrorMessage(tag string, err error) {
	errorBannerStyle.Print(tag)
	errorTextStyle.Println(" " + err.Error())
}

// PrintInfoMessage prints a standalone informational banner.
func PrintInfoMessage(tag, msg string) {
	pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack).Print(tag)
	pterm.NewStyle(pterm.FgLightGreen).Println(" " + msg)
}
