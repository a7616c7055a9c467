package workspace

import (
	"encoding/json"
	"testing"

	"mosaic-go/internal/model"
)

func TestLoadDefault(t *testing.T) {
	store := NewStore()

	data, err := store.Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(data.Nodes) != 0 || len(data.Edges) != 0 {
		t.Error("fresh workspace should be empty")
	}
	if data.Settings != model.DefaultWorkspaceSettings() {
		t.Errorf("Settings = %+v, want defaults", data.Settings)
	}
	if data.Version != model.SchemaVersion {
		t.Errorf("Version = %q, want %q", data.Version, model.SchemaVersion)
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := NewStore()
	root := t.TempDir()

	data := model.NewWorkspaceData()
	data.AddNode(model.WorkspaceNode{
		ID:       "n1",
		Type:     "note",
		Position: model.Position{X: 10, Y: 20},
		ZIndex:   2,
		Data:     json.RawMessage(`{"text":"hello"}`),
	})
	data.AddEdge(model.WorkspaceEdge{ID: "e1", Source: "n1", Target: "n1", EdgeType: "smooth"})

	if err := store.Save(root, data); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := store.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Nodes) != 1 || len(loaded.Edges) != 1 {
		t.Fatalf("loaded %d nodes, %d edges", len(loaded.Nodes), len(loaded.Edges))
	}
	n := loaded.Nodes[0]
	if n.ZIndex != 2 {
		t.Errorf("ZIndex = %d, want 2", n.ZIndex)
	}
	var payload map[string]any
	if err := json.Unmarshal(n.Data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload["text"] != "hello" {
		t.Errorf("Data = %s, want payload preserved", n.Data)
	}
	if loaded.Edges[0].EdgeType != "smooth" {
		t.Errorf("EdgeType = %q, want smooth", loaded.Edges[0].EdgeType)
	}
}

func TestAddAndRemoveNode(t *testing.T) {
	store := NewStore()
	root := t.TempDir()

	if err := store.AddNode(root, model.WorkspaceNode{ID: "n1"}); err != nil {
		t.Fatal(err)
	}
	if err := store.AddNode(root, model.WorkspaceNode{ID: "n2"}); err != nil {
		t.Fatal(err)
	}
	if err := store.AddEdge(root, model.WorkspaceEdge{ID: "e1", Source: "n1", Target: "n2"}); err != nil {
		t.Fatal(err)
	}

	if err := store.RemoveNode(root, "n1"); err != nil {
		t.Fatal(err)
	}

	data, err := store.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Nodes) != 1 || data.Nodes[0].ID != "n2" {
		t.Errorf("nodes = %v, want only n2", data.Nodes)
	}
	if len(data.Edges) != 0 {
		t.Errorf("edges = %v, want cascade removal", data.Edges)
	}
}

func TestUpdateNodesReplacesWholeCollection(t *testing.T) {
	store := NewStore()
	root := t.TempDir()

	if err := store.AddNode(root, model.WorkspaceNode{ID: "old"}); err != nil {
		t.Fatal(err)
	}
	if err := store.UpdateNodes(root, []model.WorkspaceNode{{ID: "new"}}); err != nil {
		t.Fatal(err)
	}

	data, err := store.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Nodes) != 1 || data.Nodes[0].ID != "new" {
		t.Errorf("nodes = %v, want the replacement collection only", data.Nodes)
	}
}

func TestBatchUpdateRemovesBeforeAdding(t *testing.T) {
	store := NewStore()
	root := t.TempDir()

	if err := store.AddNode(root, model.WorkspaceNode{ID: "n1", Type: "old"}); err != nil {
		t.Fatal(err)
	}
	if err := store.AddEdge(root, model.WorkspaceEdge{ID: "e1", Source: "n1", Target: "n1"}); err != nil {
		t.Fatal(err)
	}

	// Replace n1 in one batch: the removal runs first, so the replacement
	// node lands without a duplicate and the new edge survives the cascade.
	err := store.BatchUpdate(root,
		[]model.WorkspaceNode{{ID: "n1", Type: "new"}},
		[]string{"n1"},
		[]model.WorkspaceEdge{{ID: "e2", Source: "n1", Target: "n1"}},
		[]string{"e1"},
	)
	if err != nil {
		t.Fatalf("BatchUpdate() error: %v", err)
	}

	data, err := store.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Nodes) != 1 || data.Nodes[0].Type != "new" {
		t.Errorf("nodes = %v, want single replaced node", data.Nodes)
	}
	if len(data.Edges) != 1 || data.Edges[0].ID != "e2" {
		t.Errorf("edges = %v, want only the new edge", data.Edges)
	}
}
