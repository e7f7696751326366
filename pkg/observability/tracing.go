package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is used for per-file spans. Without a configured provider it is a
// no-op.
var Tracer trace.Tracer = otel.Tracer("cdecl-stream")
