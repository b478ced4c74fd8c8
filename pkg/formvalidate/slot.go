package formvalidate

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/formkit/pkg/formspec"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// SlotLayout is the value format of datetime-local inputs.
const SlotLayout = "2006-01-02T15:04"

var slotLayouts = []string{SlotLayout, "2006-01-02T15:04:05"}

// ParseSlot parses a datetime-local value. Times carry no zone.
func ParseSlot(v string) (time.Time, bool) {
	for _, layout := range slotLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RoundSlot truncates t to the top of its hour and returns the slot bounds.
func RoundSlot(t time.Time, length time.Duration) (start, end time.Time) {
	start = t.Truncate(time.Hour)
	return start, start.Add(length)
}

func (f *Form) applySlot(start, end *field, slot formspec.Slot) {
	t, ok := ParseSlot(start.el.Value())
	if !ok {
		f.log.Debug("slot value not parsable, leaving untouched",
			logger.Field(start.rule.ID), slog.String("value", start.el.Value()))
		return
	}
	from, to := RoundSlot(t, slot.Length())
	start.el.SetValue(from.Format(SlotLayout))
	end.el.SetValue(to.Format(SlotLayout))
	f.ClearError(end.el)
}
