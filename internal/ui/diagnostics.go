package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// stopTimeLayout matches strftime "%x %X %Z" in the C locale
const stopTimeLayout = "01/02/06 15:04:05 MST"

// PrintStop reports why the run is stopping, followed by a timestamp line
func PrintStop(w io.Writer, msg string, now time.Time) {
	fmt.Fprintln(w, color.RedString("%s", msg))
	fmt.Fprintf(w, "exit now (%s)\n", now.Format(stopTimeLayout))
}
