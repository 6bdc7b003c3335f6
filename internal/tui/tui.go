package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"smart_scout/internal/app"
)

type Result struct {
	Options app.Options
	RunNow  bool
}

// Run shows the interactive launcher used when the binary is started with no
// arguments.
func Run() (Result, error) {
	printBanner()

	selected := append([]string{}, app.DefaultGuidelines...)
	custom := ""
	save := false
	fhirDemo := false
	runNow := true

	guidelineOpts := make([]huh.Option[string], 0, len(app.DefaultGuidelines))
	for _, id := range app.DefaultGuidelines {
		guidelineOpts = append(guidelineOpts, huh.NewOption(id, id).Selected(true))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Guidelines").
				Description("WHO SMART Guidelines to explore.").
				Options(guidelineOpts...).
				Value(&selected),
			huh.NewInput().
				Title("Extra guideline ids").
				Description("Optional, comma-separated (e.g. hiv,tb).").
				Value(&custom),
			huh.NewConfirm().
				Title("Save JSON and markdown reports?").
				Value(&save),
			huh.NewConfirm().
				Title("Run the FHIR demo afterwards?").
				Value(&fhirDemo),
			huh.NewConfirm().
				Title("Explore now?").
				Affirmative("Yes, run it.").
				Negative("No, quit.").
				Value(&runNow),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return Result{}, err
	}

	opts := app.Options{
		Guidelines: append(selected, splitIDs(custom)...),
		Save:       save,
		FHIRDemo:   fhirDemo,
	}
	return Result{Options: opts, RunNow: runNow}, nil
}

func printBanner() {
	fmt.Print(`
                          _                         _
  ___ _ __ ___   __ _ _ _| |_   ___  ___ ___  _   _| |_
 / __| '_ ` + "`" + ` _ \ / _` + "`" + ` | '__| __| / __|/ __/ _ \| | | | __|
 \__ \ | | | | | (_| | |  | |_  \__ \ (_| (_) | |_| | |_
 |___/_| |_| |_|\__,_|_|   \__| |___/\___\___/ \__,_|\__|
`)
}
