package model

import (
	"encoding/json"
	"testing"
)

func TestWorkspaceNodeUnmarshalDefaults(t *testing.T) {
	var n WorkspaceNode
	err := json.Unmarshal([]byte(`{"id":"n1","type":"note","position":{"x":10,"y":20}}`), &n)
	if err != nil {
		t.Fatal(err)
	}

	if n.ZIndex != 1 {
		t.Errorf("ZIndex = %d, want default 1", n.ZIndex)
	}
	if string(n.Data) != "{}" {
		t.Errorf("Data = %s, want empty object", n.Data)
	}
	if n.Width != nil || n.Height != nil {
		t.Error("absent dimensions should stay nil")
	}
}

func TestWorkspaceNodeDataRoundTrip(t *testing.T) {
	// Opaque payloads pass through byte for byte, unknown keys included.
	raw := `{"id":"n1","type":"note","position":{"x":0,"y":0},"data":{"text":"hi","custom_key":[1,2,3]}}`

	var n WorkspaceNode
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		t.Fatal(err)
	}
	if string(n.Data) != `{"text":"hi","custom_key":[1,2,3]}` {
		t.Errorf("Data = %s, want payload preserved verbatim", n.Data)
	}
}

func TestWorkspaceEdgeUnmarshalDefaults(t *testing.T) {
	var e WorkspaceEdge
	err := json.Unmarshal([]byte(`{"id":"e1","source":"n1","target":"n2"}`), &e)
	if err != nil {
		t.Fatal(err)
	}

	if e.EdgeType != DefaultEdgeType {
		t.Errorf("EdgeType = %q, want %q", e.EdgeType, DefaultEdgeType)
	}
	if e.Animated {
		t.Error("Animated should default to false")
	}
	if string(e.Data) != "{}" {
		t.Errorf("Data = %s, want empty object", e.Data)
	}
}

func TestWorkspaceSettingsUnmarshalDefaults(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		var s WorkspaceSettings
		if err := json.Unmarshal([]byte(`{}`), &s); err != nil {
			t.Fatal(err)
		}
		if s != DefaultWorkspaceSettings() {
			t.Errorf("got %+v, want defaults", s)
		}
	})

	t.Run("partial document", func(t *testing.T) {
		var s WorkspaceSettings
		if err := json.Unmarshal([]byte(`{"grid_size":40,"theme":"light"}`), &s); err != nil {
			t.Fatal(err)
		}
		if s.GridSize != 40 || s.Theme != "light" {
			t.Errorf("explicit fields lost: %+v", s)
		}
		if !s.SnapToGrid || s.AutoSaveInterval != 1000 {
			t.Errorf("absent fields should keep defaults: %+v", s)
		}
	})
}

func TestWorkspaceDataUnmarshalDefaults(t *testing.T) {
	var d WorkspaceData
	if err := json.Unmarshal([]byte(`{}`), &d); err != nil {
		t.Fatal(err)
	}
	if d.Version != SchemaVersion {
		t.Errorf("Version = %q, want %q", d.Version, SchemaVersion)
	}
	if d.Nodes == nil || d.Edges == nil {
		t.Error("collections should decode to empty slices, not nil")
	}
	if d.Settings.GridSize != 20 {
		t.Errorf("Settings.GridSize = %d, want 20", d.Settings.GridSize)
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	d := NewWorkspaceData()
	d.AddNode(WorkspaceNode{ID: "n1"})
	d.AddNode(WorkspaceNode{ID: "n2"})
	d.AddNode(WorkspaceNode{ID: "n3"})
	d.AddEdge(WorkspaceEdge{ID: "e1", Source: "n1", Target: "n2"})
	d.AddEdge(WorkspaceEdge{ID: "e2", Source: "n2", Target: "n3"})
	d.AddEdge(WorkspaceEdge{ID: "e3", Source: "n3", Target: "n1"})

	d.RemoveNode("n1")

	if d.FindNode("n1") != nil {
		t.Error("n1 still present")
	}
	if len(d.Nodes) != 2 {
		t.Errorf("len(Nodes) = %d, want 2", len(d.Nodes))
	}
	if len(d.Edges) != 1 || d.Edges[0].ID != "e2" {
		t.Errorf("edges = %v, want only e2 to survive", d.Edges)
	}
}

func TestRemoveEdgeLeavesNodes(t *testing.T) {
	d := NewWorkspaceData()
	d.AddNode(WorkspaceNode{ID: "n1"})
	d.AddNode(WorkspaceNode{ID: "n2"})
	d.AddEdge(WorkspaceEdge{ID: "e1", Source: "n1", Target: "n2"})

	d.RemoveEdge("e1")

	if len(d.Edges) != 0 {
		t.Errorf("len(Edges) = %d, want 0", len(d.Edges))
	}
	if len(d.Nodes) != 2 {
		t.Errorf("len(Nodes) = %d, want 2", len(d.Nodes))
	}
}

func TestFindNode(t *testing.T) {
	d := NewWorkspaceData()
	d.AddNode(WorkspaceNode{ID: "n1", Type: "note"})

	if got := d.FindNode("n1"); got == nil || got.Type != "note" {
		t.Errorf("FindNode(n1) = %v, want the note node", got)
	}
	if got := d.FindNode("missing"); got != nil {
		t.Errorf("FindNode(missing) = %v, want nil", got)
	}
}
