package templates

import "embed"

// FS contains the feature catalog and the pipeline skeleton shipped with
// the binary. Skeleton files are text/template sources named *.tmpl.
//
//go:embed features.yaml all:skeleton
var FS embed.FS

// SkeletonRoot is the directory inside FS holding the pipeline skeleton.
const SkeletonRoot = "skeleton"
