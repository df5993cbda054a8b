package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBreadcrumb_Empty(t *testing.T) {
	theme := NewTheme(true)
	assert.Equal(t, "", RenderBreadcrumb(theme, nil))
	assert.Equal(t, "", RenderBreadcrumb(theme, []BreadcrumbStep{}))
}

func TestRenderBreadcrumb_InvisibleStepsOmitted(t *testing.T) {
	theme := NewTheme(true)

	result := RenderBreadcrumb(theme, []BreadcrumbStep{
		{Label: "Type", Visible: false},
		{Label: "Details", Visible: false},
	})

	assert.Equal(t, "", result)
}

func TestRenderBreadcrumb_ActiveStep(t *testing.T) {
	theme := NewTheme(true)

	result := RenderBreadcrumb(theme, []BreadcrumbStep{
		{Label: "Details", Active: true, Visible: true},
	})

	assert.Contains(t, result, "Details")
}

func TestRenderBreadcrumb_CompletedWithValue(t *testing.T) {
	theme := NewTheme(true)

	result := RenderBreadcrumb(theme, []BreadcrumbStep{
		{Label: "Type", Value: "custom", Completed: true, Visible: true},
	})

	assert.Contains(t, result, "custom")
	assert.Contains(t, result, "\u2713")
	assert.NotContains(t, result, "Type")
}

func TestRenderBreadcrumb_CompletedWithoutValue(t *testing.T) {
	theme := NewTheme(true)

	result := RenderBreadcrumb(theme, []BreadcrumbStep{
		{Label: "Welcome", Completed: true, Visible: true},
	})

	assert.Contains(t, result, "Welcome")
	assert.Contains(t, result, "\u2713")
}

func TestRenderBreadcrumb_MixedStates(t *testing.T) {
	theme := NewTheme(true)

	result := RenderBreadcrumb(theme, []BreadcrumbStep{
		{Label: "Type", Value: "custom", Completed: true, Visible: true},
		{Label: "Details", Active: true, Visible: true},
		{Label: "Create", Visible: true},
	})

	assert.Contains(t, result, "custom")
	assert.Contains(t, result, "\u2713")
	assert.Contains(t, result, "Details")
	assert.Contains(t, result, "Create")
	assert.Contains(t, result, "\u203a")
}

func TestRenderBreadcrumb_ConditionalStepsHidden(t *testing.T) {
	theme := NewTheme(true)

	result := RenderBreadcrumb(theme, []BreadcrumbStep{
		{Label: "Type", Visible: false},
		{Label: "Details", Active: true, Visible: true},
		{Label: "Repository", Visible: false},
		{Label: "Create", Visible: true},
	})

	assert.NotContains(t, result, "Type")
	assert.Contains(t, result, "Details")
	assert.NotContains(t, result, "Repository")
	assert.Contains(t, result, "Create")
}
