package staticassets

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"minerworld/internal/app/ports"
)

const (
	IndexFile       = "imagelist"
	DefaultCategory = "default"
)

var (
	ErrInvalidAssetPath = fmt.Errorf("asset filepath: %w", ports.ErrInvalidPath)
	ErrMalformedIndex   = errors.New("malformed image list")
)

// Provider serves frame handles read from an imagelist under Root. Each line
// is "<category> <file> [r g b a]"; the optional colour is the transparent key
// for that file. A handle is the file path relative to Root.
type Provider struct {
	Root string

	frames    map[string][]string
	colorKeys map[string]color.RGBA
}

func NewProvider(root string) (*Provider, error) {
	f, err := os.Open(filepath.Join(root, IndexFile))
	if err != nil {
		return nil, fmt.Errorf("open image list: %w", err)
	}
	defer f.Close()
	p := &Provider{Root: root}
	if err := p.parse(f); err != nil {
		return nil, err
	}
	return p, nil
}

// NewProviderFromIndex builds a provider from an in-memory imagelist.
func NewProviderFromIndex(root string, index io.Reader) (*Provider, error) {
	p := &Provider{Root: root}
	if err := p.parse(index); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Provider) parse(r io.Reader) error {
	p.frames = map[string][]string{}
	p.colorKeys = map[string]color.RGBA{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch len(fields) {
		case 2:
		case 6:
			key, err := parseColorKey(fields[2:])
			if err != nil {
				return fmt.Errorf("%w: line %d: %v", ErrMalformedIndex, lineNo, err)
			}
			p.colorKeys[fields[1]] = key
		default:
			return fmt.Errorf("%w: line %d: expected 2 or 6 fields, got %d", ErrMalformedIndex, lineNo, len(fields))
		}
		p.frames[fields[0]] = append(p.frames[fields[0]], fields[1])
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read image list: %w", err)
	}
	return nil
}

func parseColorKey(parts []string) (color.RGBA, error) {
	var c [4]uint8
	for i, s := range parts {
		v, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("colour component %q", s)
		}
		c[i] = uint8(v)
	}
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
}

// Frames returns the handles listed for category in file order, or the
// default category's when it has none.
func (p *Provider) Frames(category string) []string {
	if frames, ok := p.frames[category]; ok {
		return append([]string(nil), frames...)
	}
	return append([]string(nil), p.frames[DefaultCategory]...)
}

func (p *Provider) ColorKey(handle string) (color.RGBA, bool) {
	c, ok := p.colorKeys[handle]
	return c, ok
}

func (p *Provider) File(_ context.Context, path string) ([]byte, error) {
	safePath, err := secureJoin(p.Root, path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(safePath)
}

func secureJoin(root, rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return "", ErrInvalidAssetPath
	}
	if filepath.IsAbs(rel) {
		return "", ErrInvalidAssetPath
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(rootAbs, rel))
	prefix := rootAbs + string(filepath.Separator)
	if target != rootAbs && !strings.HasPrefix(target, prefix) {
		return "", ErrInvalidAssetPath
	}
	return target, nil
}
