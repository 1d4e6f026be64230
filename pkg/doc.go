// Package pkg provides the core libraries for isotower diagram rendering.
//
// # Overview
//
// isotower draws layered architecture diagrams as isometric towers: each
// tier is a translucent floor at its own elevation, nodes are rounded boxes
// resting on a floor, and pillars connect one floor to another.
//
// # Architecture
//
// The data flow through isotower:
//
//	JSON / TOML / YAML config
//	         ↓
//	    [io] package (decode into a diagram.Config)
//	         ↓
//	    [core/scene] package (project, shade and order the draw ops)
//	         ↓
//	    [render/sink] or [render/live] (static SVG or the live diagram)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
//	import (
//	    isoio "github.com/matzehuels/isotower/pkg/io"
//	    "github.com/matzehuels/isotower/pkg/render/sink"
//	)
//
//	cfg, _ := isoio.Import("topology.yaml")
//	svg, _ := sink.RenderSVG(cfg, sink.WithGrid(false))
//
// # Main Packages
//
// ## Core Geometry
//
// [core/iso] - The 30° isometric projection and its floor-plane inverse.
//
// [core/shade] - Named palette, color parsing, face shading and label
// contrast.
//
// [core/path] - Rounded isometric rectangles as path commands.
//
// [core/box] - A rounded 3D box split into corner, side and top parts in
// paint order.
//
// [core/scene] - Composition of a config into tiers, nodes, pillars and a
// flat draw sequence.
//
// ## Rendering
//
// [render/sink] - Static SVG, PNG, PDF and JSON renderers.
//
// [render/live] - The interactive diagram: staggered tier entrance and
// hover state on top of the same scene.
//
// [render/nodelink] - Graphviz overview of tiers and the nodes on them.
//
// ## Infrastructure
//
// [pipeline] - Validated render options and a cached multi-format runner
// shared by the CLI and the HTTP service.
//
// [cache] - Artifact caches on the filesystem, Redis or MongoDB.
//
// [server] - The HTTP render service.
//
// [observability] - Render, cache and request hooks.
//
// [core/iso]: https://pkg.go.dev/github.com/matzehuels/isotower/pkg/core/iso
// [core/shade]: https://pkg.go.dev/github.com/matzehuels/isotower/pkg/core/shade
// [core/path]: https://pkg.go.dev/github.com/matzehuels/isotower/pkg/core/path
// [core/box]: https://pkg.go.dev/github.com/matzehuels/isotower/pkg/core/box
// [core/scene]: https://pkg.go.dev/github.com/matzehuels/isotower/pkg/core/scene
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/isotower/pkg/render/sink
// [render/live]: https://pkg.go.dev/github.com/matzehuels/isotower/pkg/render/live
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/isotower/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/isotower/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/isotower/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/isotower/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/isotower/pkg/observability
//
// [io]: https://pkg.go.dev/github.com/matzehuels/isotower/pkg/io
package pkg
