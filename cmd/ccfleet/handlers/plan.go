package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/nimbusgate/ccfleet/internal/observe"
	"github.com/nimbusgate/ccfleet/internal/registration"
)

// Plan prints what apply would do, without any cloud calls: the step
// execution order and the registrations implied by the size class
// policy. The delta against live state is only known at apply time.
func Plan(_ context.Context, configPath string) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := reportFindings(cfg); err != nil {
		return err
	}

	// A nil cloud client is safe here: building the graph wires nodes
	// without running them.
	graph, err := newDeployer(cfg, nil, nil, observe.Nop{}).BuildGraph()
	if err != nil {
		return err
	}
	order, err := graph.TopologicalOrder()
	if err != nil {
		return err
	}

	fmt.Printf("Execution order:\n  %s\n\n", strings.Join(order, " -> "))

	class := cfg.Class()
	desired, ignored := registration.Compute(class, cfg.AddressSets(), "<target-group>")

	fmt.Printf("Size class %q consumes %d service-interface slot(s).\n", class, class.Interfaces())
	fmt.Printf("Would register %d target(s):\n", len(desired))
	for _, reg := range desired {
		fmt.Printf("  slot %d  %s\n", reg.Slot, reg.Address)
	}
	for _, ig := range ignored {
		fmt.Printf("Would ignore slot %d (%d address(es): size class does not consume it)\n", ig.Slot, ig.Addresses)
	}

	return nil
}
