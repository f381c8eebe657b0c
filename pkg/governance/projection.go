package governance

import (
	"helmline-hq/meridian/pkg/portfolio"
)

// Project applies a change request to a clone of the base scenario and
// returns the resulting hypothetical state. The base scenario is never
// mutated. Project validates the request shape but not the projected
// scenario; constraint evaluation is the validator's job.
func Project(base *portfolio.Scenario, req ChangeRequest) (*ProjectedScenario, error) {
	if base == nil {
		return nil, &ProjectionError{Kind: req.Kind, Reason: "base scenario is nil"}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	projected := base.Clone()

	var err error
	switch req.Kind {
	case ChangeAddItem:
		err = applyAddItem(projected, req)
	case ChangeRemoveItem:
		err = applyRemoveItem(projected, req)
	case ChangeMoveItem:
		err = applyMoveItem(projected, req)
	case ChangeResizeItem:
		err = applyResizeItem(projected, req)
	case ChangeReallocate:
		err = applyReallocate(projected, req)
	case ChangeUpdateCapacity:
		err = applyUpdateCapacity(projected, req)
	}
	if err != nil {
		return nil, err
	}

	return &ProjectedScenario{
		BaseID:   base.ID,
		Scenario: projected,
		Change:   req,
	}, nil
}

func applyAddItem(s *portfolio.Scenario, req ChangeRequest) error {
	if s.Item(req.Item.ID) != nil {
		return &ProjectionError{Kind: req.Kind, Target: req.Item.ID, Reason: "item already exists"}
	}
	for _, dep := range req.Item.Dependencies {
		if s.Item(dep) == nil {
			return &ProjectionError{Kind: req.Kind, Target: req.Item.ID, Reason: "dependency " + dep + " does not exist"}
		}
	}
	item := *req.Item
	item.Allocations = append([]portfolio.TeamAllocation(nil), req.Item.Allocations...)
	item.Dependencies = append([]string(nil), req.Item.Dependencies...)
	s.Items = append(s.Items, item)
	return nil
}

func applyRemoveItem(s *portfolio.Scenario, req ChangeRequest) error {
	idx := itemIndex(s, req.ItemID)
	if idx < 0 {
		return &ProjectionError{Kind: req.Kind, Target: req.ItemID, Reason: "item does not exist"}
	}
	// Removing an item other items depend on would leave dangling
	// references, so the projection refuses it up front.
	for _, item := range s.Items {
		if item.ID == req.ItemID {
			continue
		}
		for _, dep := range item.Dependencies {
			if dep == req.ItemID {
				return &ProjectionError{
					Kind:   req.Kind,
					Target: req.ItemID,
					Reason: "item " + item.ID + " depends on it",
				}
			}
		}
	}
	s.Items = append(s.Items[:idx], s.Items[idx+1:]...)
	return nil
}

func applyMoveItem(s *portfolio.Scenario, req ChangeRequest) error {
	idx := itemIndex(s, req.ItemID)
	if idx < 0 {
		return &ProjectionError{Kind: req.Kind, Target: req.ItemID, Reason: "item does not exist"}
	}
	item := &s.Items[idx]
	delta := *req.NewStartPeriod - item.StartPeriod
	item.StartPeriod = *req.NewStartPeriod
	// Allocations are anchored to absolute periods and move with the
	// item.
	for i := range item.Allocations {
		item.Allocations[i].Period += delta
	}
	return nil
}

func applyResizeItem(s *portfolio.Scenario, req ChangeRequest) error {
	idx := itemIndex(s, req.ItemID)
	if idx < 0 {
		return &ProjectionError{Kind: req.Kind, Target: req.ItemID, Reason: "item does not exist"}
	}
	s.Items[idx].Duration = *req.NewDuration
	return nil
}

func applyReallocate(s *portfolio.Scenario, req ChangeRequest) error {
	idx := itemIndex(s, req.ItemID)
	if idx < 0 {
		return &ProjectionError{Kind: req.Kind, Target: req.ItemID, Reason: "item does not exist"}
	}
	s.Items[idx].Allocations = append([]portfolio.TeamAllocation(nil), req.Allocations...)
	return nil
}

func applyUpdateCapacity(s *portfolio.Scenario, req ChangeRequest) error {
	for i := range s.Teams {
		if s.Teams[i].ID == req.TeamID {
			s.Teams[i].Capacity = append([]int(nil), req.Capacity...)
			return nil
		}
	}
	return &ProjectionError{Kind: req.Kind, Target: req.TeamID, Reason: "team does not exist"}
}

func itemIndex(s *portfolio.Scenario, id string) int {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}
