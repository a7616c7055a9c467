// Package workspace implements the store for the per-canvas node/edge
// graph document. Every mutation is a load, apply, save cycle over the
// whole document.
package workspace

import (
	"mosaic-go/internal/fsx"
	"mosaic-go/internal/model"
	"mosaic-go/internal/mosaic"
)

// Store reads and writes workspace.json under a canvas root.
type Store struct{}

// NewStore creates a workspace store.
func NewStore() *Store { return &Store{} }

// Load returns the workspace document, or an empty document with default
// settings when the file is absent.
func (s *Store) Load(root string) (*model.WorkspaceData, error) {
	paths := mosaic.NewCanvasPaths(root)
	if !fsx.Exists(paths.WorkspaceJSON) {
		return model.NewWorkspaceData(), nil
	}
	var data model.WorkspaceData
	if err := fsx.ReadJSON(paths.WorkspaceJSON, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Save overwrites the whole document.
func (s *Store) Save(root string, data *model.WorkspaceData) error {
	paths := mosaic.NewCanvasPaths(root)
	return fsx.WriteJSON(paths.WorkspaceJSON, data)
}

// UpdateNodes replaces the entire node collection. Callers send the
// complete desired collection; this is not a merge.
func (s *Store) UpdateNodes(root string, nodes []model.WorkspaceNode) error {
	return s.mutate(root, func(data *model.WorkspaceData) {
		data.Nodes = nodes
	})
}

// UpdateEdges replaces the entire edge collection.
func (s *Store) UpdateEdges(root string, edges []model.WorkspaceEdge) error {
	return s.mutate(root, func(data *model.WorkspaceData) {
		data.Edges = edges
	})
}

// AddNode appends a single node.
func (s *Store) AddNode(root string, node model.WorkspaceNode) error {
	return s.mutate(root, func(data *model.WorkspaceData) {
		data.AddNode(node)
	})
}

// RemoveNode removes a node and every edge referencing it as source or
// target.
func (s *Store) RemoveNode(root, nodeID string) error {
	return s.mutate(root, func(data *model.WorkspaceData) {
		data.RemoveNode(nodeID)
	})
}

// AddEdge appends a single edge.
func (s *Store) AddEdge(root string, edge model.WorkspaceEdge) error {
	return s.mutate(root, func(data *model.WorkspaceData) {
		data.AddEdge(edge)
	})
}

// RemoveEdge removes a single edge. Nodes are never touched.
func (s *Store) RemoveEdge(root, edgeID string) error {
	return s.mutate(root, func(data *model.WorkspaceData) {
		data.RemoveEdge(edgeID)
	})
}

// BatchUpdate applies all removals first (nodes then edges), then all
// additions (nodes then edges), in one load/save cycle. Removing before
// adding lets a same-ID replacement node land without a duplicate, and new
// edges are never caught by the node-removal cascade.
func (s *Store) BatchUpdate(root string, nodesToAdd []model.WorkspaceNode, nodesToRemove []string, edgesToAdd []model.WorkspaceEdge, edgesToRemove []string) error {
	return s.mutate(root, func(data *model.WorkspaceData) {
		for _, id := range nodesToRemove {
			data.RemoveNode(id)
		}
		for _, id := range edgesToRemove {
			data.RemoveEdge(id)
		}
		for _, n := range nodesToAdd {
			data.AddNode(n)
		}
		for _, e := range edgesToAdd {
			data.AddEdge(e)
		}
	})
}

func (s *Store) mutate(root string, apply func(*model.WorkspaceData)) error {
	data, err := s.Load(root)
	if err != nil {
		return err
	}
	apply(data)
	return s.Save(root, data)
}

// Compile-time check that Store implements mosaic.WorkspaceStore.
var _ mosaic.WorkspaceStore = (*Store)(nil)
