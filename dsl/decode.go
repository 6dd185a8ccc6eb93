package dsl

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/render"
)

// Layout is a decoded layout file.
type Layout struct {
	Name    string
	Version string
	Config  *layout.Config
	Meta    Meta
	Page    Page
	// Style holds raw overrides from the style section; see ApplyStyle.
	Style map[string]any
}

// Meta carries document information for the output file.
type Meta struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Keywords []string
}

// Page is the paper declaration. Margin keeps the raw length tokens, e.g.
// ["30pt"] or ["18mm", "20mm"].
type Page struct {
	Size        string
	Orientation string
	Margin      []string
}

// LoadFile parses and decodes a layout file.
func LoadFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dsl: open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("dsl: parse %s: %w", path, err)
	}
	return Decode(doc)
}

// Decode converts a parsed document into a layout config plus page, meta
// and style settings.
func Decode(doc *Document) (*Layout, error) {
	if doc == nil {
		return nil, fmt.Errorf("dsl: document is nil")
	}
	out := &Layout{
		Name:    doc.Name,
		Version: doc.Version,
		Config:  &layout.Config{},
		Style:   map[string]any{},
	}
	for _, section := range doc.Sections {
		switch {
		case section.Meta != nil:
			out.Meta = decodeMeta(section.Meta.Block)
		case section.Style != nil:
			for _, st := range statements(section.Style.Block) {
				if st.Assignment == nil {
					continue
				}
				out.Style[st.Assignment.Key] = valueToAny(st.Assignment.Value)
			}
		case section.Page != nil:
			out.Page = decodePage(section.Page.Spec)
		case section.Elements != nil:
			for _, st := range statements(section.Elements.Block) {
				if st.Command == nil {
					return nil, fmt.Errorf("dsl: %s: elements may only contain element declarations", st.Assignment.Key)
				}
				el, err := decodeElement(st.Command, len(out.Config.Elements))
				if err != nil {
					return nil, err
				}
				out.Config.Elements = append(out.Config.Elements, el)
			}
		}
	}
	if err := out.Config.Validate(); err != nil {
		return nil, fmt.Errorf("dsl: %w", err)
	}
	return out, nil
}

// ApplyStyle overlays the style section onto base.
func (l *Layout) ApplyStyle(base render.Style) render.Style {
	if l == nil || len(l.Style) == 0 {
		return base
	}
	s := render.Settings(l.Style)
	floats := map[string]*float64{
		"fontSize":       &base.FontSize,
		"headingSize":    &base.HeadingSize,
		"itemGap":        &base.ItemGap,
		"jobGap":         &base.JobGap,
		"columnGap":      &base.ColumnGap,
		"sectionPadding": &base.SectionPadding,
	}
	for key, dst := range floats {
		if v, ok := s.Float(key); ok && v >= 0 {
			*dst = v
		}
	}
	if locale := s.String("locale", ""); locale != "" {
		base.CurrentMarker = render.CurrentMarkerFor(locale)
	}
	base.CurrentMarker = s.String("currentMarker", base.CurrentMarker)
	base.Color = s.String("color", base.Color)
	base.MutedColor = s.String("mutedColor", base.MutedColor)
	base.Bullet = s.String("bullet", base.Bullet)
	return base
}

func decodeElement(cmd *Command, index int) (layout.Element, error) {
	if len(cmd.Args) == 0 {
		return layout.Element{}, fmt.Errorf("dsl: %s: %s element needs an id", cmd.Pos, cmd.Name)
	}
	el := layout.Element{
		ID:    cmd.Args[0].Value,
		Kind:  layout.Kind(cmd.Name),
		Order: index,
	}

	var source strings.Builder
	for _, arg := range cmd.Args[1:] {
		switch {
		case arg.Type == "String":
			source.WriteString(arg.Value)
		case arg.Type == "Ident" && arg.Value == "wrap" && !strings.HasSuffix(source.String(), "."):
			el.Wrap = true
		default:
			source.WriteString(arg.Raw)
		}
	}
	el.Source = source.String()

	for _, st := range statements(cmd.Block) {
		if st.Assignment == nil {
			return layout.Element{}, fmt.Errorf("dsl: %s: element %q: nested command %q is not supported", st.Command.Pos, el.ID, st.Command.Name)
		}
		key := st.Assignment.Key
		val := valueToAny(st.Assignment.Value)
		switch key {
		case "order":
			n, ok := toFloat(val)
			if !ok {
				return layout.Element{}, fmt.Errorf("dsl: %s: element %q: order must be a number", cmd.Pos, el.ID)
			}
			el.Order = int(n)
		case "wrap":
			b, ok := val.(bool)
			if !ok {
				return layout.Element{}, fmt.Errorf("dsl: %s: element %q: wrap must be true or false", cmd.Pos, el.ID)
			}
			el.Wrap = b
		case "marginTop", "margin-top":
			n, ok := toFloat(val)
			if !ok {
				return layout.Element{}, fmt.Errorf("dsl: %s: element %q: invalid %s", cmd.Pos, el.ID, key)
			}
			el.MarginTop = n
		case "marginBottom", "margin-bottom":
			n, ok := toFloat(val)
			if !ok {
				return layout.Element{}, fmt.Errorf("dsl: %s: element %q: invalid %s", cmd.Pos, el.ID, key)
			}
			el.MarginBottom = n
		default:
			if el.Settings == nil {
				el.Settings = map[string]any{}
			}
			el.Settings[key] = val
		}
	}
	return el, nil
}

func decodeMeta(block *Block) Meta {
	meta := Meta{Creator: "folio"}
	for _, st := range statements(block) {
		if st.Assignment == nil {
			continue
		}
		val := valueToAny(st.Assignment.Value)
		switch strings.ToLower(st.Assignment.Key) {
		case "title":
			meta.Title = fmt.Sprint(val)
		case "author":
			meta.Author = fmt.Sprint(val)
		case "subject":
			meta.Subject = fmt.Sprint(val)
		case "creator":
			meta.Creator = fmt.Sprint(val)
		case "keywords":
			meta.Keywords = toStrings(val)
		}
	}
	return meta
}

func decodePage(spec PageSpec) Page {
	page := Page{Size: spec.Size}
	for i := 0; i < len(spec.Params); i++ {
		switch v := spec.Params[i].Value; v {
		case "portrait", "landscape":
			page.Orientation = v
		case "margin":
			for j := i + 1; j < len(spec.Params) && len(page.Margin) < 4; j++ {
				if spec.Params[j].Type != "Number" {
					break
				}
				page.Margin = append(page.Margin, spec.Params[j].Value)
				i = j
			}
		}
	}
	return page
}

func statements(block *Block) []*Statement {
	if block == nil {
		return nil
	}
	return block.Statements
}

// valueToAny converts an AST value into plain Go data: strings, float64,
// bool, []any and map[string]any. Numbers with a unit stay strings.
func valueToAny(val *Value) any {
	if val == nil {
		return nil
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		if f, err := strconv.ParseFloat(*val.Number, 64); err == nil {
			return f
		}
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Array != nil:
		out := make([]any, 0, len(val.Array.Values))
		for _, item := range val.Array.Values {
			out = append(out, valueToAny(item))
		}
		return out
	case val.Object != nil:
		out := make(map[string]any, len(val.Object.Entries))
		for _, entry := range val.Object.Entries {
			out[entry.Key] = valueToAny(entry.Value)
		}
		return out
	case val.Expr != nil:
		return exprToAny(val.Expr)
	default:
		return nil
	}
}

func exprToAny(expr *Expression) any {
	var b strings.Builder
	var prev *Lexeme
	for _, part := range expr.Parts {
		if prev != nil && wordLike(prev) && wordLike(part) {
			b.WriteByte(' ')
		}
		if part.Type == "String" {
			b.WriteString(part.Value)
		} else {
			b.WriteString(part.Raw)
		}
		prev = part
	}
	raw := b.String()
	switch raw {
	case "true":
		return true
	case "false":
		return false
	case "null", "nil":
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

func wordLike(l *Lexeme) bool {
	return l.Type == "Ident" || l.Type == "Number" || l.Type == "String"
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSuffix(t, "pt"), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toStrings(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return nil
	}
}
