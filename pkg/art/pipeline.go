package art

import (
	"context"
	"fmt"
	"image"
)

// Source finds and downloads images. *Client implements it.
type Source interface {
	RandomImage(ctx context.Context) (Descriptor, error)
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// ImageDecoder turns bytes into pixels. *Decoder implements it.
type ImageDecoder interface {
	Decode(data []byte) (image.Image, string, error)
}

// Renderer turns pixels into HTML. *ascii.Converter implements it.
type Renderer interface {
	Convert(img image.Image) (string, error)
}

// Result describes one rendered image.
type Result struct {
	Descriptor Descriptor
	Format     string
	Bytes      int
	Width      int
	Height     int
	HTML       string
}

// Pipeline runs search, download, decode and convert in sequence and stops
// at the first failure.
type Pipeline struct {
	Source   Source
	Decoder  ImageDecoder
	Renderer Renderer
}

// NewPipeline creates a pipeline.
func NewPipeline(source Source, decoder ImageDecoder, renderer Renderer) *Pipeline {
	return &Pipeline{Source: source, Decoder: decoder, Renderer: renderer}
}

// Render fetches a random image and renders it.
func (p *Pipeline) Render(ctx context.Context) (Result, error) {
	desc, err := p.Source.RandomImage(ctx)
	if err != nil {
		return Result{}, err
	}

	data, err := p.Source.FetchImage(ctx, desc.URL)
	if err != nil {
		return Result{Descriptor: desc}, err
	}

	result, err := p.RenderBytes(data)
	result.Descriptor = desc
	return result, err
}

// RenderBytes decodes and renders data.
func (p *Pipeline) RenderBytes(data []byte) (Result, error) {
	result := Result{Bytes: len(data)}

	img, format, err := p.Decoder.Decode(data)
	if err != nil {
		return result, err
	}
	result.Format = format
	result.Width = img.Bounds().Dx()
	result.Height = img.Bounds().Dy()

	html, err := p.Renderer.Convert(img)
	if err != nil {
		return result, fmt.Errorf("convert %s image: %w", format, err)
	}
	result.HTML = html

	return result, nil
}
