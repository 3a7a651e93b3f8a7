// Package pass runs the constancy analysis over a scene graph: it binds each
// object's animator controller and clip set into per-property analysis node
// trees, evaluates every tree on a worker pool, and reports which properties
// are provably constant.
package pass

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/oxbow3d/propconst/analysis"
	"github.com/oxbow3d/propconst/controller"
	"github.com/oxbow3d/propconst/lifetime"
	"github.com/oxbow3d/propconst/scene"
)

type analyzer struct {
	workers   int
	lifetimes lifetime.Registry

	// pool manages a bounded set of reusable goroutines for the parallel
	// evaluation phase.
	pool worker.DynamicWorkerPool
}

// Analyzer runs analysis passes over scene graphs. An Analyzer is safe for
// reuse; each Run builds, evaluates, and tears down its own node trees.
type Analyzer interface {
	// Run analyzes every enabled object in the graph and reports the
	// constancy verdict for each animated property.
	//
	// Parameters:
	//   - graph: the scene graph to analyze
	//
	// Returns:
	//   - *Report: the verdicts, ordered by object ID then property
	//   - error: a controller lowering or node construction failure
	Run(graph scene.Graph) (*Report, error)
}

var _ Analyzer = &analyzer{}

// NewAnalyzer creates an Analyzer configured with the given options. The
// worker count defaults to NumCPU-1 and the lifetime registry to the
// process-wide one.
//
// Parameters:
//   - options: functional options to configure the analyzer
//
// Returns:
//   - Analyzer: the newly created analyzer
func NewAnalyzer(options ...AnalyzerBuilderOption) Analyzer {
	a := &analyzer{
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(a)
	}
	if a.lifetimes == nil {
		a.lifetimes = lifetime.Default()
	}

	// Initialize the pool after options so WithWorkers can override the
	// default. Queue size of 256 accommodates typical per-pass job counts
	// with headroom.
	a.pool = worker.NewDynamicWorkerPool(a.workers, 256, 1*time.Second)

	return a
}

// job is one (object, property) root pending evaluation.
type job struct {
	object   analysis.ObjectRef
	property string
	root     analysis.RootNode[float32]
}

func (a *analyzer) Run(graph scene.Graph) (*Report, error) {
	jobs, err := a.buildJobs(graph)
	if err != nil {
		return nil, err
	}

	// Fan the evaluations out across the pool. Each job writes its own
	// result slot, so the only synchronization needed is the barrier. A
	// WaitGroup provides it since pool.Wait() blocks until workers
	// idle-exit, which is unsuitable for repeated passes.
	results := make([]PropertyResult, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		idx, jCap := i, j
		a.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				results[idx] = evaluate(jCap)
				return nil, nil
			},
		})
	}
	wg.Wait()

	// The roots only live for this pass; end their weak observation so
	// later graph removals don't fire into dead trees.
	for _, j := range jobs {
		j.root.Invalidate()
	}

	sort.Slice(results, func(i, k int) bool {
		if results[i].Object.Host != results[k].Object.Host {
			return results[i].Object.Host < results[k].Object.Host
		}
		return results[i].Property < results[k].Property
	})

	return &Report{Results: results}, nil
}

// buildJobs constructs one root per (enabled object, animated property).
func (a *analyzer) buildJobs(graph scene.Graph) ([]job, error) {
	var jobs []job

	for _, obj := range graph.Objects() {
		if !obj.Enabled() {
			continue
		}

		roots := make(map[string]analysis.RootNode[float32])
		rootFor := func(property string) analysis.RootNode[float32] {
			root, ok := roots[property]
			if !ok {
				root = analysis.NewRootNode(analysis.WithRootRegistry[float32](a.lifetimes))
				roots[property] = root
			}
			return root
		}

		if ctrl := obj.Controller(); ctrl != nil {
			for _, property := range controller.Properties(ctrl, obj.Clips()) {
				stack, err := controller.Build(ctrl, obj.Clips(), property)
				if err != nil {
					return nil, fmt.Errorf("pass: object %s: %w", obj.Name(), err)
				}
				if len(stack) == 0 {
					continue
				}

				node := analysis.NewAnimatedLayerNode(obj.ID(), stack,
					analysis.WithAnimatedContext[float32](obj.Ref()))
				rootFor(property).Add(node, node.AppliedAlways())
			}
		}

		for _, writer := range obj.OpaqueWriters() {
			for _, property := range writer.Properties {
				node := analysis.NewOpaqueNode(obj.ID(),
					analysis.WithOpaqueContext[float32](obj.Ref(),
						analysis.ObjectRef{Kind: "writer", Name: writer.Name, Host: obj.ID()}))
				rootFor(property).Add(node, node.AppliedAlways())
			}
		}

		properties := make([]string, 0, len(roots))
		for property := range roots {
			properties = append(properties, property)
		}
		sort.Strings(properties)
		for _, property := range properties {
			jobs = append(jobs, job{object: obj.Ref(), property: property, root: roots[property]})
		}
	}

	return jobs, nil
}

// evaluate queries one root for its verdict.
func evaluate(j job) PropertyResult {
	result := PropertyResult{
		Object:        j.object,
		Property:      j.property,
		AlwaysApplied: j.root.AppliedAlways(),
		Sources:       j.root.ContextReferences(),
	}
	if v, ok := j.root.Value().Constant(); ok {
		result.Constant = true
		result.Value = v
	}
	return result
}
