/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package optrace records tool operation invocations.

A Trace covers one call of a tool operation, from its arguments to its result,
and holds the Steps it took along the way. Each trace and step is also an
OpenTelemetry span.

Tracers are carried on the context per result type. Without one, completed
traces are logged through clog:

	tracer := optrace.ByCode[string](func(tr *optrace.Trace[string]) {
		fmt.Println(tr.Operation, tr.Outcome, tr.StepNames())
	})
	ctx = optrace.WithTracer[string](ctx, tracer)

	tr := optrace.Start[string](ctx, "create_notion_page", map[string]any{"title": "Report"})
	step := tr.StartStep("chunk", nil)
	step.Complete(3, nil)
	tr.SetOutcome("ok")
	tr.Complete("created", nil)
*/
package optrace
