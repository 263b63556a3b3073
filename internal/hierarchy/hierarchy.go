// Package hierarchy converts between the stored flat milestone rows and the
// nested parent/child view the API exposes. Milestones persist ParentID only;
// the Children slices are rebuilt here on every read.
package hierarchy

import (
	apperrors "plan-tracker.com/plan-tracker/internal/errors"
	model "plan-tracker.com/plan-tracker/internal/models"
)

// BuildForest groups a flat milestone collection into a forest: rows with a
// nil ParentID (or a parent absent from the collection) become roots, every
// other row is nested under its parent's Children. Sibling order follows the
// input order. Rows caught in a ParentID cycle are reachable from no root;
// rather than dropping them silently, BuildForest fails with
// ErrCyclicHierarchy.
func BuildForest(rows []model.Milestone) ([]model.Milestone, error) {
	present := make(map[string]bool, len(rows))
	for _, m := range rows {
		present[m.ID] = true
	}

	children := make(map[string][]model.Milestone)
	var rootIDs []string
	byID := make(map[string]model.Milestone, len(rows))
	for _, m := range rows {
		m.Children = nil
		byID[m.ID] = m
		if m.ParentID != nil && present[*m.ParentID] {
			children[*m.ParentID] = append(children[*m.ParentID], m)
		} else {
			rootIDs = append(rootIDs, m.ID)
		}
	}

	// Every row reachable from a root has an acyclic parent chain, so the
	// recursion below terminates; cycle members are exactly the rows it
	// never reaches.
	reached := 0
	var build func(id string) model.Milestone
	build = func(id string) model.Milestone {
		reached++
		node := byID[id]
		for _, child := range children[id] {
			node.Children = append(node.Children, build(child.ID))
		}
		return node
	}

	roots := make([]model.Milestone, 0, len(rootIDs))
	for _, id := range rootIDs {
		roots = append(roots, build(id))
	}

	if reached != len(rows) {
		return nil, apperrors.ErrCyclicHierarchy
	}
	return roots, nil
}

// Flatten returns every milestone reachable from the given roots in pre-order,
// each exactly once. A repeated id means the Children chains form a cycle;
// rather than recurse forever, Flatten fails with ErrCyclicHierarchy.
func Flatten(roots []model.Milestone) ([]model.Milestone, error) {
	visited := make(map[string]bool)
	var flat []model.Milestone

	var walk func(nodes []model.Milestone) error
	walk = func(nodes []model.Milestone) error {
		for _, node := range nodes {
			if visited[node.ID] {
				return apperrors.ErrCyclicHierarchy
			}
			visited[node.ID] = true

			entry := node
			entry.Children = nil
			flat = append(flat, entry)

			if err := walk(node.Children); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(roots); err != nil {
		return nil, err
	}
	return flat, nil
}
