package docgen

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Service coordinates template conversion, placeholder fill, and binary
// page generation.
type Service interface {
	// Convert assembles the markup artifact for a template and persists
	// it under the template's store key.
	Convert(ctx context.Context, tmpl Template) (ArtifactRef, error)
	// Fill loads a stored markup artifact and substitutes data values for
	// its placeholder tokens, returning new content. The stored artifact
	// is never mutated.
	Fill(ctx context.Context, templateName string, data DataMap) (string, error)
	// Generate produces the binary page document with data baked in at
	// draw time, plus its suggested download filename.
	Generate(ctx context.Context, tmpl Template, data DataMap) (GenerateResult, error)
}

// ServiceConfig supplies dependencies for Service.
type ServiceConfig struct {
	Store     TemplateStore
	Generator PageGenerator
	Transform Transform
	Fragments *FragmentRegistry
	Logger    Logger
	// FillRaw disables the default HTML escaping of data values during
	// fill. Opt in only when data is sanitized upstream.
	FillRaw bool
	// FilenamePattern overrides the download naming pattern
	// {{.Template}}_{{.Timestamp}}.
	FilenamePattern string
	Now             func() time.Time
}

type service struct {
	assembler *Assembler
	store     TemplateStore
	generator PageGenerator
	logger    Logger
	fillRaw   bool
	pattern   string
	now       func() time.Time
}

// NewService creates a Service with the provided configuration.
func NewService(cfg ServiceConfig) Service {
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	fragments := cfg.Fragments
	if fragments == nil {
		fragments = NewFragmentRegistry()
	}

	return &service{
		assembler: &Assembler{
			Store:     cfg.Store,
			Transform: cfg.Transform,
			Fragments: fragments,
			Logger:    cfg.Logger,
		},
		store:     cfg.Store,
		generator: cfg.Generator,
		logger:    cfg.Logger,
		fillRaw:   cfg.FillRaw,
		pattern:   cfg.FilenamePattern,
		now:       nowFn,
	}
}

func (s *service) Convert(ctx context.Context, tmpl Template) (ArtifactRef, error) {
	if s == nil {
		return ArtifactRef{}, AsGoError(NewError(KindInternal, "service is nil", nil))
	}

	resolved, err := ResolveTemplate(tmpl)
	if err != nil {
		return ArtifactRef{}, AsGoError(err)
	}

	ref, err := s.assembler.Persist(ctx, resolved)
	if err != nil {
		return ArtifactRef{}, AsGoError(err)
	}

	if s.logger != nil {
		s.logger.Infof("converted template %q to %s", resolved.Name, ref.Key)
	}
	return ref, nil
}

func (s *service) Fill(ctx context.Context, templateName string, data DataMap) (string, error) {
	if s == nil {
		return "", AsGoError(NewError(KindInternal, "service is nil", nil))
	}
	if templateName == "" {
		return "", AsGoError(NewError(KindValidation, "template name is required", nil))
	}
	if s.store == nil {
		return "", AsGoError(NewError(KindNotImpl, "template store not configured", nil))
	}

	reader, _, err := s.store.Open(ctx, TemplateKey(templateName))
	if err != nil {
		return "", AsGoError(err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return "", AsGoError(NewError(KindStore, fmt.Sprintf("read template %q", templateName), err))
	}

	if s.fillRaw {
		return FillRaw(string(content), data), nil
	}
	return Fill(string(content), data), nil
}

func (s *service) Generate(ctx context.Context, tmpl Template, data DataMap) (GenerateResult, error) {
	if s == nil {
		return GenerateResult{}, AsGoError(NewError(KindInternal, "service is nil", nil))
	}
	if s.generator == nil {
		return GenerateResult{}, AsGoError(NewError(KindNotImpl, "page generator not configured", nil))
	}

	resolved, err := ResolveTemplate(tmpl)
	if err != nil {
		return GenerateResult{}, AsGoError(err)
	}

	content, err := s.generator.Generate(ctx, resolved, data)
	if err != nil {
		return GenerateResult{}, AsGoError(NewError(KindRender, fmt.Sprintf("generate %q", resolved.Name), err))
	}

	filename, err := renderFilename(s.pattern, resolved.Name, "pdf", s.now())
	if err != nil {
		return GenerateResult{}, AsGoError(NewError(KindValidation, "invalid filename pattern", err))
	}

	if s.logger != nil {
		s.logger.Infof("generated %q (%d bytes)", filename, len(content))
	}
	return GenerateResult{
		Content:     content,
		Filename:    filename,
		ContentType: ContentTypePDF,
	}, nil
}
