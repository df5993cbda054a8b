package pipeline

import "fmt"

// Type selects how the pipeline is scaffolded.
type Type int

const (
	TypeUnset Type = iota
	// TypeTemplate is a pipeline that follows the community template and
	// lives under the nf-core organisation.
	TypeTemplate
	TypeCustom
)

// TemplateOrg is the organisation forced for template-based pipelines.
const TemplateOrg = "nf-core"

func (t Type) String() string {
	switch t {
	case TypeTemplate:
		return "nfcore"
	case TypeCustom:
		return "custom"
	default:
		return ""
	}
}

// Label is the human readable name of the type.
func (t Type) Label() string {
	switch t {
	case TypeTemplate:
		return "template-based"
	case TypeCustom:
		return "custom"
	default:
		return "unset"
	}
}

// ParseType parses the values accepted by String.
func ParseType(s string) (Type, error) {
	switch s {
	case "nfcore", "template":
		return TypeTemplate, nil
	case "custom":
		return TypeCustom, nil
	case "":
		return TypeUnset, nil
	}
	return TypeUnset, fmt.Errorf("unknown pipeline type %q", s)
}
