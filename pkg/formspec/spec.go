package formspec

import (
	"regexp"
	"time"
)

// CheckKind tags the variant of a Check.
type CheckKind string

const (
	CheckRequired   CheckKind = "required"
	CheckPattern    CheckKind = "pattern"
	CheckNotPattern CheckKind = "not_pattern"
	CheckMinLength  CheckKind = "min_length"
	CheckMaxLength  CheckKind = "max_length"
	CheckMatches    CheckKind = "matches"
)

// Check is one step of a field's validation. Which of Pattern/Regex, Limit
// and Field are meaningful depends on Kind.
type Check struct {
	Kind    CheckKind `yaml:"kind"`
	Message string    `yaml:"message"`
	// Pattern names an entry of Catalog.Patterns.
	Pattern string `yaml:"pattern,omitempty"`
	// Regex is an inline expression, used when Pattern is empty.
	Regex string `yaml:"regex,omitempty"`
	Limit int    `yaml:"limit,omitempty"`
	// Field is the other field of a matches check.
	Field string `yaml:"field,omitempty"`

	re *regexp.Regexp
}

// Regexp returns the compiled expression of a pattern check.
func (c Check) Regexp() *regexp.Regexp { return c.re }

func Required(message string) Check {
	return Check{Kind: CheckRequired, Message: message}
}

func Pattern(re *regexp.Regexp, message string) Check {
	return Check{Kind: CheckPattern, Message: message, Regex: re.String(), re: re}
}

func NotPattern(re *regexp.Regexp, message string) Check {
	return Check{Kind: CheckNotPattern, Message: message, Regex: re.String(), re: re}
}

func MinLength(n int, message string) Check {
	return Check{Kind: CheckMinLength, Message: message, Limit: n}
}

func MaxLength(n int, message string) Check {
	return Check{Kind: CheckMaxLength, Message: message, Limit: n}
}

func Matches(field, message string) Check {
	return Check{Kind: CheckMatches, Message: message, Field: field}
}

// Slot turns a datetime field into the start of a booking slot: its value is
// rounded down to the hour and End receives start plus Hours.
type Slot struct {
	End   string `yaml:"end"`
	Hours int    `yaml:"hours,omitempty"`
}

// Length is the slot duration, one hour unless Hours says otherwise.
func (s Slot) Length() time.Duration {
	if s.Hours <= 0 {
		return time.Hour
	}
	return time.Duration(s.Hours) * time.Hour
}

// Field binds a list of checks to one form control.
type Field struct {
	ID string `yaml:"id"`
	// Container is the id of the wrapping element. Defaults to div_id_<ID>
	// when Input is empty.
	Container string `yaml:"container,omitempty"`
	// Input is the id of the control itself.
	Input string `yaml:"input,omitempty"`
	// Event overrides the live event type (input or change).
	Event  string  `yaml:"event,omitempty"`
	Checks []Check `yaml:"checks"`
	Slot   *Slot   `yaml:"slot,omitempty"`
}

// ContainerID resolves the wrapper id, "" when the field is located by Input alone.
func (f Field) ContainerID() string {
	if f.Container != "" {
		return f.Container
	}
	if f.Input == "" {
		return "div_id_" + f.ID
	}
	return ""
}

// Form is the FormSpec of one HTML form.
type Form struct {
	ID            string  `yaml:"id"`
	InvalidClass  string  `yaml:"invalid_class,omitempty"`
	FeedbackClass string  `yaml:"feedback_class,omitempty"`
	Fields        []Field `yaml:"fields"`
}

// Default class names, as rendered by Bootstrap forms.
const (
	DefaultInvalidClass  = "is-invalid"
	DefaultFeedbackClass = "invalid-feedback"
)

func (f Form) InvalidClassName() string {
	if f.InvalidClass == "" {
		return DefaultInvalidClass
	}
	return f.InvalidClass
}

func (f Form) FeedbackClassName() string {
	if f.FeedbackClass == "" {
		return DefaultFeedbackClass
	}
	return f.FeedbackClass
}

// Field looks a field up by id.
func (f Form) Field(id string) (Field, bool) {
	for _, fld := range f.Fields {
		if fld.ID == id {
			return fld, true
		}
	}
	return Field{}, false
}

// MatchMode selects how a control value is compared with a row tag.
type MatchMode string

const (
	MatchEquals   MatchMode = "equals"
	MatchContains MatchMode = "contains"
)

// AllValue is the control value that disables a filter.
const AllValue = "all"

// Dependency disables options of a control depending on the value of another
// (governing) control. Disallow maps a governor value to option values.
type Dependency struct {
	Control  string              `yaml:"control"`
	Disallow map[string][]string `yaml:"disallow"`
}

// Control is one filter select bound to a row data attribute.
type Control struct {
	ID        string      `yaml:"id"`
	Attribute string      `yaml:"attribute"`
	Match     MatchMode   `yaml:"match,omitempty"`
	DependsOn *Dependency `yaml:"depends_on,omitempty"`
}

// Mode returns Match, defaulting to MatchEquals.
func (c Control) Mode() MatchMode {
	if c.Match == "" {
		return MatchEquals
	}
	return c.Match
}

// Sort orders rows once by a timestamp data attribute.
type Sort struct {
	Attribute string `yaml:"attribute"`
}

// Table is the FilterSpec of one filterable table.
type Table struct {
	ID       string    `yaml:"id"`
	Controls []Control `yaml:"controls"`
	Reset    string    `yaml:"reset,omitempty"`
	Sort     *Sort     `yaml:"sort,omitempty"`
}

// Control looks a control up by id.
func (t Table) Control(id string) (Control, bool) {
	for _, c := range t.Controls {
		if c.ID == id {
			return c, true
		}
	}
	return Control{}, false
}
