// Package imagegen lowers a proof forest into a DAG of typed build
// nodes, per §4.7/§6: From, Run, CopyFromImage, CopyFromLocal,
// SetWorkdir, SetEntrypoint and SetLabel. It owns only the generation
// of this DAG — handing the nodes to a low-level image builder is an
// external boundary (§1, §6), not reimplemented here, mirroring the
// separation `original_source/src/buildkit_frontend.rs` draws between
// imagegen's BuildPlan and its own BuildKit-specific translation of it.
package imagegen

import (
	"encoding/json"

	"github.com/mayhemheroes/modus/pkg/logic"
)

// Kind tags the seven BuildNode variants named in §3's data model.
type Kind int

const (
	KindFrom Kind = iota
	KindRun
	KindCopyFromImage
	KindCopyFromLocal
	KindSetWorkdir
	KindSetEntrypoint
	KindSetLabel
)

func (k Kind) tag() string {
	switch k {
	case KindFrom:
		return "From"
	case KindRun:
		return "Run"
	case KindCopyFromImage:
		return "CopyFromImage"
	case KindCopyFromLocal:
		return "CopyFromLocal"
	case KindSetWorkdir:
		return "SetWorkdir"
	case KindSetEntrypoint:
		return "SetEntrypoint"
	case KindSetLabel:
		return "SetLabel"
	default:
		return "Unknown"
	}
}

// NodeId indexes BuildPlan.Nodes. Every reference a node makes to
// another node (Parent, SrcImage) must be strictly less than the
// referencing node's own index — the topological-order invariant of
// §3/§8.6.
type NodeId int

// BuildNode is one vertex of the build DAG. Only the fields relevant to
// Kind are meaningful; see the tagged variants in §3.
type BuildNode struct {
	Kind Kind

	// From
	ImageRef string

	// Run, CopyFromImage, CopyFromLocal, SetWorkdir, SetEntrypoint, SetLabel
	Parent NodeId

	// Run
	Command string
	Cwd     string

	// CopyFromImage
	SrcImage NodeId

	// CopyFromImage, CopyFromLocal
	SrcPath string
	DstPath string

	// SetWorkdir
	NewWorkdir string

	// SetEntrypoint
	NewEntrypoint []string

	// SetLabel
	Label string
	Value string
}

// MarshalJSON renders BuildNode as an externally-tagged variant, named
// exactly as in §3 ("From", "Run", ...), the wire shape §6 requires for
// the build-plan/external-executor boundary.
func (n BuildNode) MarshalJSON() ([]byte, error) {
	var payload interface{}
	switch n.Kind {
	case KindFrom:
		payload = struct {
			ImageRef string `json:"image_ref"`
		}{n.ImageRef}
	case KindRun:
		payload = struct {
			Parent  NodeId `json:"parent"`
			Command string `json:"command"`
			Cwd     string `json:"cwd"`
		}{n.Parent, n.Command, n.Cwd}
	case KindCopyFromImage:
		payload = struct {
			Parent   NodeId `json:"parent"`
			SrcImage NodeId `json:"src_image"`
			SrcPath  string `json:"src_path"`
			DstPath  string `json:"dst_path"`
		}{n.Parent, n.SrcImage, n.SrcPath, n.DstPath}
	case KindCopyFromLocal:
		payload = struct {
			Parent  NodeId `json:"parent"`
			SrcPath string `json:"src_path"`
			DstPath string `json:"dst_path"`
		}{n.Parent, n.SrcPath, n.DstPath}
	case KindSetWorkdir:
		payload = struct {
			Parent     NodeId `json:"parent"`
			NewWorkdir string `json:"new_workdir"`
		}{n.Parent, n.NewWorkdir}
	case KindSetEntrypoint:
		payload = struct {
			Parent        NodeId   `json:"parent"`
			NewEntrypoint []string `json:"new_entrypoint"`
		}{n.Parent, n.NewEntrypoint}
	case KindSetLabel:
		payload = struct {
			Parent NodeId `json:"parent"`
			Label  string `json:"label"`
			Value  string `json:"value"`
		}{n.Parent, n.Label, n.Value}
	}
	return json.Marshal(map[string]interface{}{n.Kind.tag(): payload})
}

// Output pairs a generated node with the ground literal whose proof
// produced it, for downstream reporting (§4.7, §6). HasSource is false
// when no source literal was available to attach.
type Output struct {
	Node          NodeId
	SourceLiteral logic.Literal
	HasSource     bool
}

func (o Output) MarshalJSON() ([]byte, error) {
	out := struct {
		Node          NodeId  `json:"node"`
		SourceLiteral *string `json:"source_literal"`
	}{Node: o.Node}
	if o.HasSource {
		s := o.SourceLiteral.String()
		out.SourceLiteral = &s
	}
	return json.Marshal(out)
}

// BuildPlan is the DAG §6 describes: an ordered node list (topological
// order equals vector order) plus one Output per requested query
// literal, in query order.
type BuildPlan struct {
	Nodes   []BuildNode `json:"nodes"`
	Outputs []Output    `json:"outputs"`
}
