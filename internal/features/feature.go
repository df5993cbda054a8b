package features

import "github.com/andreagrandi/pipecreate/internal/pipeline"

// Feature is an optional part of the pipeline skeleton that the user may
// deselect.
type Feature struct {
	Name             string   `yaml:"name"`
	ShortDescription string   `yaml:"short_description"`
	Description      string   `yaml:"description"`
	Default          bool     `yaml:"default"`
	NfcorePipelines  bool     `yaml:"nfcore_pipelines"`
	CustomPipelines  bool     `yaml:"custom_pipelines"`
	Paths            []string `yaml:"paths,omitempty"`
}

// AppliesTo reports whether the feature can be toggled for the given type.
func (f Feature) AppliesTo(t pipeline.Type) bool {
	switch t {
	case pipeline.TypeTemplate:
		return f.NfcorePipelines
	case pipeline.TypeCustom:
		return f.CustomPipelines
	default:
		return false
	}
}
