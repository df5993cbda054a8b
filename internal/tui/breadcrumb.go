package tui

import "strings"

// BreadcrumbStep represents one step in the wizard breadcrumb.
type BreadcrumbStep struct {
	Label     string // step name shown when active or future (e.g., "Type")
	Value     string // shown instead of Label when completed (e.g., "custom")
	Active    bool
	Completed bool
	Visible   bool
}

// RenderBreadcrumb renders the breadcrumb bar from a list of steps.
//
// Completed steps show their Value (or Label if Value is empty) in green
// with a check mark. The active step is bold cyan. Future steps are dim.
// Invisible steps are omitted entirely.
func RenderBreadcrumb(theme Theme, steps []BreadcrumbStep) string {
	var parts []string

	for _, step := range steps {
		if !step.Visible {
			continue
		}

		if step.Completed {
			display := step.Label
			if step.Value != "" {
				display = step.Value
			}

			parts = append(parts, theme.Completed.Render(display+" \u2713"))
		} else if step.Active {
			parts = append(parts, theme.Active.Render(step.Label))
		} else {
			parts = append(parts, theme.Dim.Render(step.Label))
		}
	}

	if len(parts) == 0 {
		return ""
	}

	sep := theme.BreadSep.Render(" \u203a ")
	return strings.Join(parts, sep)
}

var screenTitles = map[ScreenID]string{
	ScreenWelcome:            "Welcome",
	ScreenChooseType:         "Type",
	ScreenBasicDetails:       "Details",
	ScreenTemplatePipeline:   "Features",
	ScreenCustomPipeline:     "Features",
	ScreenFinalDetails:       "Create",
	ScreenGithubRepoQuestion: "GitHub",
	ScreenGithubRepo:         "Repository",
	ScreenGithubExit:         "Done",
	ScreenError:              "Error",
	ScreenLogging:            "Log",
}

// breadcrumbSteps describes the stack: frames below the top are completed.
func (m WizardModel) breadcrumbSteps() []BreadcrumbStep {
	ids := m.stack.ids()
	steps := make([]BreadcrumbStep, 0, len(ids))

	for i, id := range ids {
		step := BreadcrumbStep{Label: screenTitles[id], Visible: id != ScreenWelcome}
		if i == len(ids)-1 {
			step.Active = true
		} else {
			step.Completed = true
			step.Value = m.stepValue(id)
		}
		steps = append(steps, step)
	}

	return steps
}

func (m WizardModel) stepValue(id ScreenID) string {
	switch id {
	case ScreenChooseType:
		return m.session.PipelineType.Label()
	case ScreenBasicDetails:
		return m.session.Config.Name
	}
	return ""
}
