package formspec

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the full rule set of an application: named patterns, forms and
// filterable tables.
type Catalog struct {
	Patterns map[string]string `yaml:"patterns"`
	Forms    []Form            `yaml:"forms"`
	Tables   []Table           `yaml:"tables"`
}

// Parse decodes YAML and compiles the result. Unknown keys are rejected.
func Parse(data []byte) (*Catalog, error) {
	return Load(bytes.NewReader(data))
}

// Load is Parse for a reader.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrDecode, err)
	}
	if err := c.Compile(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads and compiles a catalog file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the booking application's built-in catalog. Each call
// returns a fresh copy.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("formspec: embedded catalog is invalid: %v", err))
	}
	return c
}

// Form looks a form up by id.
func (c *Catalog) Form(id string) (Form, error) {
	for _, f := range c.Forms {
		if f.ID == id {
			return f, nil
		}
	}
	return Form{}, fmt.Errorf("%w: %s", ErrFormNotFound, id)
}

// Table looks a table up by id.
func (c *Catalog) Table(id string) (Table, error) {
	for _, t := range c.Tables {
		if t.ID == id {
			return t, nil
		}
	}
	return Table{}, fmt.Errorf("%w: %s", ErrTableNotFound, id)
}

// Compile validates the catalog and binds every pattern check to its compiled
// expression. All problems are reported together.
func (c *Catalog) Compile() error {
	var errs []error

	named := make(map[string]*regexp.Regexp, len(c.Patterns))
	for name, expr := range c.Patterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			errs = append(errs, fmt.Errorf("pattern %q: %w: %v", name, ErrInvalidPattern, err))
			continue
		}
		named[name] = re
	}

	forms := make(map[string]bool, len(c.Forms))
	for i := range c.Forms {
		f := &c.Forms[i]
		switch {
		case f.ID == "":
			errs = append(errs, fmt.Errorf("form #%d: %w", i, ErrEmptyID))
		case forms[f.ID]:
			errs = append(errs, fmt.Errorf("form %q: %w", f.ID, ErrDuplicateID))
		}
		forms[f.ID] = true
		if err := compileForm(f, named); err != nil {
			errs = append(errs, err)
		}
	}

	tables := make(map[string]bool, len(c.Tables))
	for i := range c.Tables {
		t := &c.Tables[i]
		switch {
		case t.ID == "":
			errs = append(errs, fmt.Errorf("table #%d: %w", i, ErrEmptyID))
		case tables[t.ID]:
			errs = append(errs, fmt.Errorf("table %q: %w", t.ID, ErrDuplicateID))
		}
		tables[t.ID] = true
		if err := checkTable(t); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// CompileForm validates a standalone form whose pattern checks use inline
// expressions only.
func CompileForm(f Form) (Form, error) {
	f.Fields = append([]Field(nil), f.Fields...)
	for i := range f.Fields {
		f.Fields[i].Checks = append([]Check(nil), f.Fields[i].Checks...)
	}
	if err := compileForm(&f, nil); err != nil {
		return Form{}, err
	}
	return f, nil
}

// CompileField compiles the checks of the field at index i. Checks already
// compiled (catalog output, Pattern/NotPattern constructors) are kept; a
// named pattern that was never bound is ErrUnknownPattern.
func (f Form) CompileField(i int) (Field, error) {
	fld := f.Fields[i]
	fld.Checks = append([]Check(nil), fld.Checks...)

	ids := make(map[string]bool, len(f.Fields))
	for _, other := range f.Fields {
		ids[other.ID] = true
	}
	var errs []error
	for j := range fld.Checks {
		if err := compileCheck(&fld.Checks[j], fld.ID, ids, nil); err != nil {
			errs = append(errs, fmt.Errorf("form %q field %q check #%d: %w", f.ID, fld.ID, j, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return Field{}, err
	}
	return fld, nil
}

func compileForm(f *Form, named map[string]*regexp.Regexp) error {
	var errs []error

	ids := make(map[string]bool, len(f.Fields))
	for _, fld := range f.Fields {
		ids[fld.ID] = true
	}

	seen := make(map[string]bool, len(f.Fields))
	for i := range f.Fields {
		fld := &f.Fields[i]
		where := fmt.Sprintf("form %q field %q", f.ID, fld.ID)
		switch {
		case fld.ID == "":
			errs = append(errs, fmt.Errorf("form %q field #%d: %w", f.ID, i, ErrEmptyID))
		case seen[fld.ID]:
			errs = append(errs, fmt.Errorf("%s: %w", where, ErrDuplicateID))
		}
		seen[fld.ID] = true

		switch fld.Event {
		case "", "input", "change":
		default:
			errs = append(errs, fmt.Errorf("%s: %w: %q", where, ErrInvalidEvent, fld.Event))
		}

		for j := range fld.Checks {
			if err := compileCheck(&fld.Checks[j], fld.ID, ids, named); err != nil {
				errs = append(errs, fmt.Errorf("%s check #%d: %w", where, j, err))
			}
		}

		if fld.Slot != nil {
			if fld.Slot.End == "" || fld.Slot.End == fld.ID || !ids[fld.Slot.End] {
				errs = append(errs, fmt.Errorf("%s slot: %w: %q", where, ErrUnknownField, fld.Slot.End))
			}
			if fld.Slot.Hours < 0 {
				errs = append(errs, fmt.Errorf("%s slot: %w", where, ErrInvalidLimit))
			}
		}
	}

	return errors.Join(errs...)
}

func compileCheck(c *Check, self string, fields map[string]bool, named map[string]*regexp.Regexp) error {
	if c.Message == "" {
		return ErrMissingMessage
	}

	switch c.Kind {
	case CheckRequired:
		return nil

	case CheckPattern, CheckNotPattern:
		if c.re != nil {
			return nil
		}
		if c.Pattern != "" {
			re, ok := named[c.Pattern]
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownPattern, c.Pattern)
			}
			c.re = re
			return nil
		}
		if c.Regex == "" {
			return fmt.Errorf("%w: no pattern or regex given", ErrUnknownPattern)
		}
		re, err := regexp.Compile(c.Regex)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		c.re = re
		return nil

	case CheckMinLength, CheckMaxLength:
		if c.Limit <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidLimit, c.Limit)
		}
		return nil

	case CheckMatches:
		if c.Field == "" || c.Field == self || !fields[c.Field] {
			return fmt.Errorf("%w: %q", ErrUnknownField, c.Field)
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownCheck, c.Kind)
	}
}

func checkTable(t *Table) error {
	var errs []error

	ids := make(map[string]bool, len(t.Controls))
	for _, c := range t.Controls {
		ids[c.ID] = true
	}

	seen := make(map[string]bool, len(t.Controls))
	for i, c := range t.Controls {
		where := fmt.Sprintf("table %q control %q", t.ID, c.ID)
		switch {
		case c.ID == "" || c.Attribute == "":
			errs = append(errs, fmt.Errorf("table %q control #%d: %w", t.ID, i, ErrEmptyID))
		case seen[c.ID]:
			errs = append(errs, fmt.Errorf("%s: %w", where, ErrDuplicateID))
		}
		seen[c.ID] = true

		switch c.Match {
		case "", MatchEquals, MatchContains:
		default:
			errs = append(errs, fmt.Errorf("%s: %w: %q", where, ErrInvalidMatch, c.Match))
		}

		if d := c.DependsOn; d != nil {
			if d.Control == "" || d.Control == c.ID || !ids[d.Control] {
				errs = append(errs, fmt.Errorf("%s: %w: %q", where, ErrUnknownControl, d.Control))
			}
		}
	}

	if t.Sort != nil && t.Sort.Attribute == "" {
		errs = append(errs, fmt.Errorf("table %q sort: %w", t.ID, ErrEmptyID))
	}

	return errors.Join(errs...)
}
