package build

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/fileroutes/internal/errors"
	"github.com/vango-dev/fileroutes/pkg/listing"
	"github.com/vango-dev/fileroutes/pkg/routetree"
)

const defaultTracerName = "fileroutes"

// Result contains the build output.
type Result struct {
	// Duration is how long listing and compilation took.
	Duration time.Duration

	// Files are the listed route files in compile order.
	Files []string

	// Tree is the compiled route tree.
	Tree *routetree.Node

	// Routes is the flattened route table.
	Routes []routetree.Route

	// Hash identifies the file set. Equal hashes compile to equal trees.
	Hash string
}

// Options configures the builder.
type Options struct {
	// Logger receives build logs. Default: slog.Default().
	Logger *slog.Logger

	// Metrics records build metrics when non-nil.
	Metrics *Metrics

	// TracerName is the OpenTelemetry tracer name (default: "fileroutes").
	TracerName string

	// OnProgress is called with progress updates.
	OnProgress func(step string)
}

// Builder lists route files and compiles them into a tree.
type Builder struct {
	provider listing.Provider
	compiler *routetree.Compiler
	options  Options
	tracer   trace.Tracer
}

// New creates a new builder.
func New(provider listing.Provider, compiler *routetree.Compiler, options Options) *Builder {
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.TracerName == "" {
		options.TracerName = defaultTracerName
	}
	if compiler == nil {
		compiler = routetree.NewCompiler(routetree.DefaultConventions())
	}

	return &Builder{
		provider: provider,
		compiler: compiler,
		options:  options,
		tracer:   otel.Tracer(options.TracerName),
	}
}

// Build lists the route files and compiles them.
//
// Listing failures are returned as L001 errors. Compile failures are
// returned as the *routetree.ConfigurationErrors from the compiler.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	log := b.options.Logger

	ctx, span := b.tracer.Start(ctx, "fileroutes.build", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	b.progress("Listing route files...")
	files, err := b.list(ctx)
	if err != nil {
		b.options.Metrics.observe("listing_error", time.Since(start).Seconds())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("route listing failed", "error", err)
		return nil, errors.New("L001").Wrap(err)
	}
	b.options.Metrics.setFiles(len(files))

	b.progress("Compiling route tree...")
	tree, err := b.compile(ctx, files)
	duration := time.Since(start)
	if err != nil {
		b.options.Metrics.observe("error", duration.Seconds())
		var cfgErrs *routetree.ConfigurationErrors
		if stderrors.As(err, &cfgErrs) {
			b.options.Metrics.recordErrors(cfgErrs.Errors)
			span.SetAttributes(attribute.Int("fileroutes.errors", len(cfgErrs.Errors)))
		}
		span.SetStatus(codes.Error, "route configuration errors")
		log.Warn("route compilation failed", "files", len(files), "error", err)
		return nil, err
	}

	routes := routetree.Flatten(tree)
	b.options.Metrics.observe("ok", duration.Seconds())
	b.options.Metrics.setRoutes(len(routes))

	result := &Result{
		Duration: duration,
		Files:    files,
		Tree:     tree,
		Routes:   routes,
		Hash:     hashFiles(files),
	}

	span.SetAttributes(
		attribute.Int("fileroutes.files", len(files)),
		attribute.Int("fileroutes.routes", len(routes)),
		attribute.String("fileroutes.hash", result.Hash),
	)
	span.SetStatus(codes.Ok, "")
	log.Debug("route tree compiled",
		"files", len(files),
		"routes", len(routes),
		"duration", duration,
	)

	return result, nil
}

func (b *Builder) list(ctx context.Context) ([]string, error) {
	ctx, span := b.tracer.Start(ctx, "fileroutes.list")
	defer span.End()

	files, err := b.provider.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("fileroutes.files", len(files)))
	return files, nil
}

func (b *Builder) compile(ctx context.Context, files []string) (*routetree.Node, error) {
	_, span := b.tracer.Start(ctx, "fileroutes.compile")
	defer span.End()

	tree, err := b.compiler.Compile(files)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "route configuration errors")
		return nil, err
	}
	span.SetAttributes(attribute.Int("fileroutes.nodes", routetree.Count(tree)))
	return tree, nil
}

// progress reports build progress.
func (b *Builder) progress(step string) {
	if b.options.OnProgress != nil {
		b.options.OnProgress(step)
	}
}

// Manifest is the machine-readable build output.
type Manifest struct {
	Hash   string            `json:"hash"`
	Files  []string          `json:"files"`
	Routes []routetree.Route `json:"routes"`
	Tree   *routetree.Node   `json:"tree"`
}

// Manifest returns the manifest for r.
func (r *Result) Manifest() Manifest {
	return Manifest{
		Hash:   r.Hash,
		Files:  r.Files,
		Routes: r.Routes,
		Tree:   r.Tree,
	}
}

// MarshalManifest encodes the manifest as indented JSON.
func (r *Result) MarshalManifest() ([]byte, error) {
	data, err := json.MarshalIndent(r.Manifest(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteManifest writes the manifest to path.
func (r *Result) WriteManifest(path string) error {
	data, err := r.MarshalManifest()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// hashFiles returns the SHA256 hash of the ordered file list.
func hashFiles(files []string) string {
	h := sha256.New()
	for _, f := range files {
		h.Write([]byte(f))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
