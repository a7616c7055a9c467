package model

import "encoding/json"

// DefaultEdgeType is the edge style used when none is stored.
const DefaultEdgeType = "default"

// Position is a node's location on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// WorkspaceNode is a single node in the workspace graph. Data is an opaque
// type-specific document passed through unchanged.
type WorkspaceNode struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Position Position        `json:"position"`
	Width    *float64        `json:"width,omitempty"`
	Height   *float64        `json:"height,omitempty"`
	ZIndex   int             `json:"z_index"`
	ParentID string          `json:"parent_id,omitempty"`
	Data     json.RawMessage `json:"data"`
}

func (n *WorkspaceNode) UnmarshalJSON(b []byte) error {
	type alias WorkspaceNode
	a := alias{ZIndex: 1}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.Data == nil {
		a.Data = json.RawMessage("{}")
	}
	*n = WorkspaceNode(a)
	return nil
}

// WorkspaceEdge connects two nodes. Data is an opaque edge-specific document
// passed through unchanged.
type WorkspaceEdge struct {
	ID           string          `json:"id"`
	Source       string          `json:"source"`
	Target       string          `json:"target"`
	SourceHandle string          `json:"source_handle,omitempty"`
	TargetHandle string          `json:"target_handle,omitempty"`
	EdgeType     string          `json:"edge_type"`
	Label        string          `json:"label,omitempty"`
	Animated     bool            `json:"animated"`
	Data         json.RawMessage `json:"data"`
}

func (e *WorkspaceEdge) UnmarshalJSON(b []byte) error {
	type alias WorkspaceEdge
	a := alias{EdgeType: DefaultEdgeType}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.Data == nil {
		a.Data = json.RawMessage("{}")
	}
	*e = WorkspaceEdge(a)
	return nil
}

// WorkspaceSettings is pure canvas configuration. Absent fields read back as
// the documented defaults.
type WorkspaceSettings struct {
	GridSize         int    `json:"grid_size"`
	SnapToGrid       bool   `json:"snap_to_grid"`
	ShowMinimap      bool   `json:"show_minimap"`
	AutoSave         bool   `json:"auto_save"`
	AutoSaveInterval int    `json:"auto_save_interval"`
	Theme            string `json:"theme"`
	DefaultNodeColor string `json:"default_node_color"`
	DefaultEdgeColor string `json:"default_edge_color"`
}

// DefaultWorkspaceSettings returns the settings a fresh workspace starts with.
func DefaultWorkspaceSettings() WorkspaceSettings {
	return WorkspaceSettings{
		GridSize:         20,
		SnapToGrid:       true,
		ShowMinimap:      true,
		AutoSave:         true,
		AutoSaveInterval: 1000,
		Theme:            "dark",
		DefaultNodeColor: "#1e1e1e",
		DefaultEdgeColor: "#555555",
	}
}

func (s *WorkspaceSettings) UnmarshalJSON(b []byte) error {
	type alias WorkspaceSettings
	a := alias(DefaultWorkspaceSettings())
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*s = WorkspaceSettings(a)
	return nil
}

// WorkspaceData is the node/edge graph document stored in workspace.json.
type WorkspaceData struct {
	Version  string            `json:"version"`
	Nodes    []WorkspaceNode   `json:"nodes"`
	Edges    []WorkspaceEdge   `json:"edges"`
	Settings WorkspaceSettings `json:"settings"`
}

// NewWorkspaceData returns an empty document with default settings.
func NewWorkspaceData() *WorkspaceData {
	return &WorkspaceData{
		Version:  SchemaVersion,
		Nodes:    []WorkspaceNode{},
		Edges:    []WorkspaceEdge{},
		Settings: DefaultWorkspaceSettings(),
	}
}

func (d *WorkspaceData) UnmarshalJSON(b []byte) error {
	type alias WorkspaceData
	a := alias{Version: SchemaVersion, Settings: DefaultWorkspaceSettings()}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.Nodes == nil {
		a.Nodes = []WorkspaceNode{}
	}
	if a.Edges == nil {
		a.Edges = []WorkspaceEdge{}
	}
	*d = WorkspaceData(a)
	return nil
}

// AddNode appends a node. IDs are caller-supplied and not validated here.
func (d *WorkspaceData) AddNode(n WorkspaceNode) {
	d.Nodes = append(d.Nodes, n)
}

// AddEdge appends an edge.
func (d *WorkspaceData) AddEdge(e WorkspaceEdge) {
	d.Edges = append(d.Edges, e)
}

// RemoveNode removes the node and cascades: every edge whose source or
// target is the removed node goes with it.
func (d *WorkspaceData) RemoveNode(nodeID string) {
	nodes := d.Nodes[:0]
	for _, n := range d.Nodes {
		if n.ID != nodeID {
			nodes = append(nodes, n)
		}
	}
	d.Nodes = nodes

	edges := d.Edges[:0]
	for _, e := range d.Edges {
		if e.Source != nodeID && e.Target != nodeID {
			edges = append(edges, e)
		}
	}
	d.Edges = edges
}

// RemoveEdge removes the edge. Nodes are never touched.
func (d *WorkspaceData) RemoveEdge(edgeID string) {
	edges := d.Edges[:0]
	for _, e := range d.Edges {
		if e.ID != edgeID {
			edges = append(edges, e)
		}
	}
	d.Edges = edges
}

// FindNode returns the node with the given ID, or nil.
func (d *WorkspaceData) FindNode(nodeID string) *WorkspaceNode {
	for i := range d.Nodes {
		if d.Nodes[i].ID == nodeID {
			return &d.Nodes[i]
		}
	}
	return nil
}
