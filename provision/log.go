package provision

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

func logstep(text string) {
	fmt.Println(
		color.BlueString(" •"),
		color.New(color.FgHiBlack).Sprint(text),
	)
}

func logdetail(text string) {
	fmt.Println(
		color.New(color.FgHiBlack).Sprint("   └"),
		color.New(color.FgHiBlack).Sprint(text),
	)
}

func logwarn(text string) {
	fmt.Println(
		color.YellowString(" !"),
		color.YellowString(text),
	)
}

// timed prints the elapsed time since start, green or red depending on err.
// Meant to be deferred with a pointer to a named error return.
func timed(start time.Time, err *error) {
	elapsed := time.Since(start).Round(time.Millisecond)
	if *err != nil {
		color.Red("     ✘ %s", elapsed)
		return
	}
	color.Green("     ✔ %s", elapsed)
}
