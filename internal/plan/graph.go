package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nimbusgate/ccfleet/internal/metrics"
	"github.com/nimbusgate/ccfleet/internal/observe"
)

// Status is the terminal state of a plan node.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Inputs carries the resolved outputs of a node's dependencies, keyed
// by dependency name.
type Inputs map[string]any

// Get returns a dependency output cast to T. It fails when the
// dependency is missing or has an unexpected type, which indicates a
// wiring bug in the graph, not a runtime condition.
func Get[T any](in Inputs, name string) (T, error) {
	var zero T
	v, ok := in[name]
	if !ok {
		return zero, fmt.Errorf("missing dependency output %q", name)
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("dependency output %q has type %T, want %T", name, v, zero)
	}
	return typed, nil
}

// RunFunc executes one node. It receives the resolved outputs of its
// dependencies and returns its own output, available to consumers once.
type RunFunc func(ctx context.Context, in Inputs) (any, error)

type node struct {
	name string
	deps []string
	run  RunFunc

	done   chan struct{} // closed exactly once when the node resolves
	out    any
	err    error
	status Status
}

// SkipError marks a node that never ran because an upstream dependency
// failed or was itself skipped.
type SkipError struct {
	Node       string
	Dependency string
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("node %q skipped: dependency %q did not succeed", e.Node, e.Dependency)
}

// Graph is a directed acyclic graph of provisioning steps.
type Graph struct {
	observer observe.Observer
	nodes    map[string]*node
	order    []string // insertion order, for deterministic reporting
}

// New creates an empty graph reporting to the given observer.
func New(observer observe.Observer) *Graph {
	if observer == nil {
		observer = observe.Nop{}
	}
	return &Graph{
		observer: observer,
		nodes:    make(map[string]*node),
	}
}

// Add registers a node with its dependencies. Dependencies may be added
// in any order; they are resolved when Execute builds the schedule.
func (g *Graph) Add(name string, deps []string, run RunFunc) error {
	if name == "" {
		return errors.New("node name is required")
	}
	if _, exists := g.nodes[name]; exists {
		return fmt.Errorf("node %q already registered", name)
	}
	if run == nil {
		return fmt.Errorf("node %q has no run function", name)
	}
	g.nodes[name] = &node{
		name:   name,
		deps:   deps,
		run:    run,
		done:   make(chan struct{}),
		status: StatusPending,
	}
	g.order = append(g.order, name)
	return nil
}

// TopologicalOrder returns one valid execution order, or an error when
// the graph has an unknown dependency or a cycle. Execution itself is
// concurrent; this order is used for validation and dry-run display.
func (g *Graph) TopologicalOrder() ([]string, error) {
	indegree := make(map[string]int, len(g.nodes))
	consumers := make(map[string][]string, len(g.nodes))

	for _, name := range g.order {
		n := g.nodes[name]
		indegree[name] = len(n.deps)
		for _, dep := range n.deps {
			if _, ok := g.nodes[dep]; !ok {
				return nil, fmt.Errorf("node %q depends on unknown node %q", name, dep)
			}
			consumers[dep] = append(consumers[dep], name)
		}
	}

	var ready []string
	for _, name := range g.order {
		if indegree[name] == 0 {
			ready = append(ready, name)
		}
	}

	var sorted []string
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		sorted = append(sorted, name)
		for _, consumer := range consumers[name] {
			indegree[consumer]--
			if indegree[consumer] == 0 {
				ready = append(ready, consumer)
			}
		}
	}

	if len(sorted) != len(g.nodes) {
		var stuck []string
		for _, name := range g.order {
			if indegree[name] > 0 {
				stuck = append(stuck, name)
			}
		}
		return nil, fmt.Errorf("dependency cycle involving nodes %v", stuck)
	}
	return sorted, nil
}

// Execute runs the graph. Independent branches run concurrently; every
// node blocks until its dependencies resolve. The returned Report holds
// per-node status and outputs even when Execute returns an error.
func (g *Graph) Execute(ctx context.Context) (*Report, error) {
	if _, err := g.TopologicalOrder(); err != nil {
		return nil, err
	}

	start := time.Now()
	g.observer.Printf("executing plan with %d nodes", len(g.nodes))

	// The group is a structured wait, not a cancellation scope: a
	// failed branch must not abort independent branches, so node
	// errors are recorded on the nodes and joined after Wait.
	var group errgroup.Group
	for _, name := range g.order {
		n := g.nodes[name]
		group.Go(func() error {
			g.runNode(ctx, n)
			return nil
		})
	}
	_ = group.Wait()

	report := g.report()
	err := report.Err()
	if err != nil {
		g.observer.Printf("plan finished with errors in %v", time.Since(start).Round(time.Millisecond))
	} else {
		g.observer.Printf("plan completed in %v", time.Since(start).Round(time.Millisecond))
	}
	return report, err
}

func (g *Graph) runNode(ctx context.Context, n *node) {
	defer close(n.done)

	in := make(Inputs, len(n.deps))
	for _, dep := range n.deps {
		d := g.nodes[dep]
		select {
		case <-d.done:
		case <-ctx.Done():
			n.status = StatusSkipped
			n.err = ctx.Err()
			g.observer.Event(observe.Event{Type: observe.EventNodeSkipped, Node: n.name, Message: "plan aborted"})
			metrics.NodeFinished(n.name, string(StatusSkipped), 0)
			return
		}
		if d.status != StatusSucceeded {
			n.status = StatusSkipped
			n.err = &SkipError{Node: n.name, Dependency: dep}
			g.observer.Event(observe.Event{Type: observe.EventNodeSkipped, Node: n.name, Message: n.err.Error()})
			metrics.NodeFinished(n.name, string(StatusSkipped), 0)
			return
		}
		in[dep] = d.out
	}

	if err := ctx.Err(); err != nil {
		n.status = StatusSkipped
		n.err = err
		g.observer.Event(observe.Event{Type: observe.EventNodeSkipped, Node: n.name, Message: "plan aborted"})
		metrics.NodeFinished(n.name, string(StatusSkipped), 0)
		return
	}

	g.observer.Event(observe.Event{Type: observe.EventNodeStarted, Node: n.name})
	nodeStart := time.Now()

	out, err := n.run(ctx, in)
	elapsed := time.Since(nodeStart)

	if err != nil {
		n.status = StatusFailed
		n.err = fmt.Errorf("node %q failed: %w", n.name, err)
		g.observer.Event(observe.Event{Type: observe.EventNodeFailed, Node: n.name, Message: err.Error()})
		metrics.NodeFinished(n.name, string(StatusFailed), elapsed)
		return
	}

	n.status = StatusSucceeded
	n.out = out
	g.observer.Event(observe.Event{
		Type:    observe.EventNodeCompleted,
		Node:    n.name,
		Message: fmt.Sprintf("completed in %v", elapsed.Round(time.Millisecond)),
	})
	metrics.NodeFinished(n.name, string(StatusSucceeded), elapsed)
}

func (g *Graph) report() *Report {
	r := &Report{
		order:    append([]string(nil), g.order...),
		statuses: make(map[string]Status, len(g.nodes)),
		outputs:  make(map[string]any, len(g.nodes)),
	}
	for _, name := range g.order {
		n := g.nodes[name]
		r.statuses[name] = n.status
		if n.status == StatusSucceeded {
			r.outputs[name] = n.out
		}
		if n.status == StatusFailed {
			r.errs = append(r.errs, n.err)
		}
	}
	return r
}

// Report is the outcome of one plan execution.
type Report struct {
	order    []string
	statuses map[string]Status
	outputs  map[string]any
	errs     []error
}

// Status returns the terminal status of a node.
func (r *Report) Status(name string) Status {
	return r.statuses[name]
}

// Output returns a succeeded node's output.
func (r *Report) Output(name string) (any, bool) {
	v, ok := r.outputs[name]
	return v, ok
}

// Nodes returns node names in registration order.
func (r *Report) Nodes() []string {
	return r.order
}

// Err joins the failures of all failed nodes. Skipped nodes do not
// contribute: their root cause is already present.
func (r *Report) Err() error {
	return errors.Join(r.errs...)
}
