package service

import (
	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
)

// status_workflow.go
// The single transition table for order statuses. Every status-changing code
// path goes through canTransition; no endpoint carries its own copy of the
// rules. Terminal statuses (completed, cancelled) have no outgoing edges.

var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.StatusPending:    {model.StatusInProgress, model.StatusCancelled},
	model.StatusInProgress: {model.StatusReady, model.StatusCancelled},
	model.StatusReady:      {model.StatusCompleted, model.StatusCancelled},
}

func canTransition(from, to model.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
